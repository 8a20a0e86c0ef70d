// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package table

import (
	"testing"

	"github.com/google/uuid"

	"arborcms/internal/models"
)

func TestEnrich(t *testing.T) {
	siteA := models.Site{ID: uuid.New(), Name: "Site A", Slug: "site-a"}
	siteB := models.Site{ID: uuid.New(), Name: "Site B", Slug: "site-b"}

	parent := newCat("parent", 1)
	parent.SiteID = siteA.ID
	childOne := newCat("child-one", 2)
	childOne.ParentID = &parent.ID
	childOne.SiteID = siteA.ID
	childTwo := newCat("child-two", 3)
	childTwo.ParentID = &parent.ID
	childTwo.SiteID = siteB.ID

	missing := uuid.New()
	orphan := newCat("orphan", 4)
	orphan.ParentID = &missing
	orphan.SiteID = siteB.ID

	got := Enrich(
		[]models.Category{parent, childOne, childTwo, orphan},
		[]models.Site{siteA, siteB},
		false,
	)

	equalNames(t, got, "parent", "child-one", "child-two", "orphan")

	if got[0].ChildCount != 2 {
		t.Errorf("parent child count = %d, want 2", got[0].ChildCount)
	}
	if got[0].ParentName != "" {
		t.Errorf("root should have no parent name, got %q", got[0].ParentName)
	}
	if got[1].ParentName != "parent" || got[2].ParentName != "parent" {
		t.Errorf("children parent names = %q/%q, want parent", got[1].ParentName, got[2].ParentName)
	}
	if got[1].ChildCount != 0 {
		t.Errorf("leaf child count = %d, want 0", got[1].ChildCount)
	}
	// Unresolvable references are not an error: parent name just stays empty.
	if got[3].ParentName != "" {
		t.Errorf("orphan parent name = %q, want empty", got[3].ParentName)
	}
	if got[0].SiteName != "Site A" || got[2].SiteName != "Site B" {
		t.Errorf("site names = %q/%q, want Site A / Site B", got[0].SiteName, got[2].SiteName)
	}
}

func TestEnrichSelfReferenceCountsAndNames(t *testing.T) {
	self := newCat("self", 1)
	self.ParentID = &self.ID

	got := Enrich([]models.Category{self}, nil, true)

	// A self-parented record resolves its own name and counts itself as
	// a child; the hierarchy builder is what neutralizes the cycle.
	if got[0].ParentName != "self" || got[0].ChildCount != 1 {
		t.Errorf("got parentName=%q childCount=%d, want self/1", got[0].ParentName, got[0].ChildCount)
	}
}

func TestEnrichSingleSiteSkipsSiteNames(t *testing.T) {
	c := newCat("only", 1)
	c.SiteID = uuid.New()

	got := Enrich([]models.Category{c}, []models.Site{{ID: c.SiteID, Name: "Pinned"}}, true)

	if got[0].SiteName != "" {
		t.Errorf("single-site mode must not populate site names, got %q", got[0].SiteName)
	}
}
