// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package table

import (
	"sort"

	"github.com/google/uuid"

	"arborcms/internal/models"
)

// TreeRow is one entry of the hierarchy view: a category plus the depth
// at which it is rendered (roots sit at depth 0). Depth exists purely
// for indentation.
type TreeRow struct {
	Category models.Category `json:"category"`
	Depth    int             `json:"depth"`
}

// BuildTree arranges the filtered (pre-pagination) collection as a
// depth-first parent/child sequence. The traversal is guarded against
// malformed parent links:
//
//   - a record whose ParentID is nil, self-referencing, or not present
//     in the input becomes a root, so orphans stay visible under filters;
//   - before descending into a child, the current ancestor path is
//     checked — a child already on the path is not descended into, which
//     breaks cycles of any length without erroring;
//   - records only reachable through a cycle (e.g. two nodes parenting
//     each other) are picked up by a final sweep so every input record
//     appears exactly once.
//
// Sibling groups keep the incoming order when sorting by name or order.
// Timestamp sorts say nothing useful about tree layout, so in that case
// siblings fall back to SortOrder ascending.
func BuildTree(cats []models.Category, s Sort) []TreeRow {
	if len(cats) == 0 {
		return nil
	}

	present := make(map[uuid.UUID]bool, len(cats))
	for _, c := range cats {
		present[c.ID] = true
	}

	childrenOf := make(map[uuid.UUID][]models.Category)
	var roots []models.Category
	for _, c := range cats {
		if c.ParentID == nil || *c.ParentID == c.ID || !present[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
	}

	byOrder := s.Field == SortByCreated || s.Field == SortByUpdated
	if byOrder {
		sortSiblings(roots)
		for _, group := range childrenOf {
			sortSiblings(group)
		}
	}

	rows := make([]TreeRow, 0, len(cats))
	emitted := make(map[uuid.UUID]bool, len(cats))

	var walk func(c models.Category, depth int, ancestors map[uuid.UUID]bool)
	walk = func(c models.Category, depth int, ancestors map[uuid.UUID]bool) {
		rows = append(rows, TreeRow{Category: c, Depth: depth})
		emitted[c.ID] = true
		ancestors[c.ID] = true
		for _, child := range childrenOf[c.ID] {
			if ancestors[child.ID] || emitted[child.ID] {
				continue // cycle guard: never revisit the current path
			}
			walk(child, depth+1, ancestors)
		}
		delete(ancestors, c.ID)
	}

	for _, r := range roots {
		walk(r, 0, make(map[uuid.UUID]bool))
	}

	// Records trapped in rootless cycles (mutual parents) are emitted
	// once here, rendered at the depth where they are first reached.
	for _, c := range cats {
		if !emitted[c.ID] {
			walk(c, 0, make(map[uuid.UUID]bool))
		}
	}

	return rows
}

// sortSiblings orders a sibling group by SortOrder ascending, stably.
func sortSiblings(group []models.Category) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].SortOrder < group[j].SortOrder
	})
}
