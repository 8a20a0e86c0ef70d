// Package cache fronts the category repository with a Valkey
// (Redis-compatible) list cache so admin table reloads stay off
// Postgres. valkey.go owns the client; categories.go owns the keys.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client timeouts. A slow cache must never be worse than no cache, so
// reads and writes give up quickly and the callers fall through to the
// repository.
const (
	dialTimeout = 5 * time.Second
	opTimeout   = 500 * time.Millisecond
)

// ConnectValkey creates the Valkey client for the category list cache
// and verifies the connection with a ping.
func ConnectValkey(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}
	return client, nil
}
