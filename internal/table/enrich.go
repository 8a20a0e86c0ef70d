// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package table implements the category admin table engine: enrichment
// of raw category records with derived display fields, the pure
// filter/sort/paginate derivation, the cycle-safe hierarchy builder,
// and the controller that composes them with the delete confirmation
// flow. All derived state is recomputed from scratch on every change;
// nothing here is incrementally patched.
package table

import (
	"github.com/google/uuid"

	"arborcms/internal/models"
)

// Enrich populates the virtual display fields on every category:
// ParentName (one lookup against the same collection), ChildCount
// (records whose ParentID points at this category) and, when not
// pinned to a single site, SiteName. A ParentID that resolves to no
// record simply leaves ParentName empty — orphaned references are
// expected input, not an error. Order is preserved.
func Enrich(cats []models.Category, sites []models.Site, singleSite bool) []models.Category {
	byID := make(map[uuid.UUID]string, len(cats))
	childCount := make(map[uuid.UUID]int)
	for _, c := range cats {
		byID[c.ID] = c.Name
		if c.ParentID != nil {
			childCount[*c.ParentID]++
		}
	}

	var siteNames map[uuid.UUID]string
	if !singleSite {
		siteNames = make(map[uuid.UUID]string, len(sites))
		for _, s := range sites {
			siteNames[s.ID] = s.Name
		}
	}

	out := make([]models.Category, len(cats))
	for i, c := range cats {
		c.ParentName = ""
		if c.ParentID != nil {
			c.ParentName = byID[*c.ParentID]
		}
		c.ChildCount = childCount[c.ID]
		c.SiteName = ""
		if !singleSite {
			c.SiteName = siteNames[c.SiteID]
		}
		out[i] = c
	}
	return out
}
