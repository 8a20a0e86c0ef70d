// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package table

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"arborcms/internal/models"
)

// fakeRepo is an in-memory Repository for controller tests.
type fakeRepo struct {
	cats  []models.Category
	sites []models.Site

	fetchErr  error
	deleteErr error

	deleteCalls int
}

func (f *fakeRepo) FetchCategories(_ context.Context, siteSlug string) ([]models.Category, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]models.Category, len(f.cats))
	copy(out, f.cats)
	return out, nil
}

func (f *fakeRepo) FetchSites(_ context.Context) ([]models.Site, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.sites, nil
}

func (f *fakeRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, c := range f.cats {
		if c.ID == id {
			f.cats = append(f.cats[:i], f.cats[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func seedCats(n int) []models.Category {
	var out []models.Category
	for i := 1; i <= n; i++ {
		out = append(out, newCat(fmt.Sprintf("cat-%02d", i), i))
	}
	return out
}

func loaded(t *testing.T, repo *fakeRepo, perPage int) *Controller {
	t.Helper()
	ctrl := New(repo, "", perPage)
	ctrl.Load(context.Background())
	if v := ctrl.View(); v.Status != StatusLoaded {
		t.Fatalf("load failed: status=%s err=%s", v.Status, v.LoadError)
	}
	return ctrl
}

func TestControllerLoadLifecycle(t *testing.T) {
	ctrl := New(&fakeRepo{cats: seedCats(3)}, "", 10)

	if v := ctrl.View(); v.Status != StatusIdle || v.Rows != nil {
		t.Fatalf("before load: status=%s rows=%v, want idle and none", v.Status, v.Rows)
	}

	ctrl.Load(context.Background())
	v := ctrl.View()
	if v.Status != StatusLoaded {
		t.Fatalf("status = %s, want loaded", v.Status)
	}
	if len(v.Rows) != 3 || v.Empty || v.NoMatches {
		t.Errorf("rows=%d empty=%v noMatches=%v, want 3/false/false", len(v.Rows), v.Empty, v.NoMatches)
	}
}

func TestControllerFetchErrorAndRetry(t *testing.T) {
	repo := &fakeRepo{cats: seedCats(2), fetchErr: errors.New("connection refused")}
	ctrl := New(repo, "", 10)

	ctrl.Load(context.Background())
	v := ctrl.View()
	if v.Status != StatusError || v.LoadError == "" {
		t.Fatalf("status=%s err=%q, want error with message", v.Status, v.LoadError)
	}

	// Filter/sort/delete operations are inert until loaded.
	ctrl.SetSearch("anything")
	if ctrl.View().Filters.Search != "" {
		t.Error("search must not apply in error state")
	}
	if ctrl.ConfirmDelete(uuid.New(), "x") {
		t.Error("delete confirmation must be rejected in error state")
	}

	// Only an explicit retry recovers.
	repo.fetchErr = nil
	ctrl.Retry(context.Background())
	if v := ctrl.View(); v.Status != StatusLoaded || len(v.Rows) != 2 {
		t.Fatalf("after retry: status=%s rows=%d, want loaded with 2", v.Status, len(v.Rows))
	}
}

func TestControllerEmptyVersusNoMatches(t *testing.T) {
	ctrl := loaded(t, &fakeRepo{}, 10)
	if v := ctrl.View(); !v.Empty || v.NoMatches {
		t.Errorf("zero records: empty=%v noMatches=%v, want true/false", v.Empty, v.NoMatches)
	}

	ctrl = loaded(t, &fakeRepo{cats: seedCats(3)}, 10)
	ctrl.SetSearch("no-such-category")
	if v := ctrl.View(); v.Empty || !v.NoMatches {
		t.Errorf("filtered to zero: empty=%v noMatches=%v, want false/true", v.Empty, v.NoMatches)
	}
}

func TestControllerFilterAndSortResetPage(t *testing.T) {
	ctrl := loaded(t, &fakeRepo{cats: seedCats(25)}, 10)

	ctrl.SetPage(3)
	if v := ctrl.View(); v.Page.Page != 3 {
		t.Fatalf("page = %d, want 3", v.Page.Page)
	}

	ctrl.SetSearch("cat")
	if v := ctrl.View(); v.Page.Page != 1 {
		t.Errorf("search should reset to page 1, got %d", v.Page.Page)
	}

	ctrl.SetPage(2)
	ctrl.ToggleSort(SortByName)
	if v := ctrl.View(); v.Page.Page != 1 {
		t.Errorf("sort should reset to page 1, got %d", v.Page.Page)
	}

	ctrl.SetPage(2)
	ctrl.SetPerPage(20)
	if v := ctrl.View(); v.Page.Page != 1 || v.Page.PerPage != 20 {
		t.Errorf("per-page change should reset to page 1, got page=%d per=%d", v.Page.Page, v.Page.PerPage)
	}
}

func TestControllerSetPageClamps(t *testing.T) {
	ctrl := loaded(t, &fakeRepo{cats: seedCats(25)}, 10)

	ctrl.SetPage(99)
	if v := ctrl.View(); v.Page.Page != 3 {
		t.Errorf("page = %d, want clamp to 3", v.Page.Page)
	}
	ctrl.SetPage(-1)
	if v := ctrl.View(); v.Page.Page != 1 {
		t.Errorf("page = %d, want clamp to 1", v.Page.Page)
	}
}

func TestControllerDeleteHappyPath(t *testing.T) {
	repo := &fakeRepo{cats: seedCats(3)}
	ctrl := loaded(t, repo, 10)
	target := repo.cats[1]

	if !ctrl.ConfirmDelete(target.ID, target.Name) {
		t.Fatal("confirm rejected")
	}
	v := ctrl.View()
	if !v.Deletion.Confirming || v.Deletion.Target == nil || v.Deletion.Target.Name != target.Name {
		t.Fatalf("confirmation not reflected in view: %+v", v.Deletion)
	}
	if repo.deleteCalls != 0 {
		t.Fatal("confirm must not call the repository")
	}

	if err := ctrl.CommitDelete(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	v = ctrl.View()
	if len(v.Rows) != 2 || v.Deletion.Confirming || v.Deletion.Committing {
		t.Errorf("after commit: rows=%d deletion=%+v, want 2 rows and idle", len(v.Rows), v.Deletion)
	}
	if repo.deleteCalls != 1 {
		t.Errorf("delete calls = %d, want 1", repo.deleteCalls)
	}
}

func TestControllerCancelDelete(t *testing.T) {
	repo := &fakeRepo{cats: seedCats(2)}
	ctrl := loaded(t, repo, 10)

	ctrl.ConfirmDelete(repo.cats[0].ID, repo.cats[0].Name)
	ctrl.CancelDelete()

	if v := ctrl.View(); v.Deletion.Confirming || v.Deletion.Target != nil {
		t.Errorf("cancel left deletion state: %+v", v.Deletion)
	}
	if err := ctrl.CommitDelete(context.Background()); err == nil {
		t.Error("commit after cancel must fail")
	}
	if repo.deleteCalls != 0 {
		t.Errorf("repository touched %d times, want 0", repo.deleteCalls)
	}
}

func TestControllerCommitWithoutConfirmRejected(t *testing.T) {
	repo := &fakeRepo{cats: seedCats(2)}
	ctrl := loaded(t, repo, 10)

	if err := ctrl.CommitDelete(context.Background()); err == nil {
		t.Error("commit with no pending confirmation must fail")
	}
}

func TestControllerDeleteFailureSurfacesErrorAndKeepsCollection(t *testing.T) {
	repo := &fakeRepo{cats: seedCats(3), deleteErr: errors.New("constraint violation")}
	ctrl := loaded(t, repo, 10)
	target := repo.cats[0]

	ctrl.ConfirmDelete(target.ID, target.Name)
	if err := ctrl.CommitDelete(context.Background()); err == nil {
		t.Fatal("expected commit error")
	}

	v := ctrl.View()
	if v.DeleteError == "" {
		t.Error("delete error message missing from view")
	}
	if len(v.Rows) != 3 {
		t.Errorf("rows = %d, want untouched 3 (no optimistic removal before success)", len(v.Rows))
	}
	// The confirmation closes even on failure; a new delete can start.
	if v.Deletion.Confirming || v.Deletion.Committing {
		t.Errorf("deletion should be idle after failure, got %+v", v.Deletion)
	}
	if !ctrl.ConfirmDelete(target.ID, target.Name) {
		t.Error("a new confirmation must be accepted after a failed commit")
	}
}

// Deleting the only record on the last page reduces totalPages by one
// and clamps the current page: with 11 records at page size 10, deleting
// the 11th while viewing page 2 must land back on page 1.
func TestControllerDeleteLastRecordOnLastPageClampsPage(t *testing.T) {
	repo := &fakeRepo{cats: seedCats(11)}
	ctrl := loaded(t, repo, 10)

	ctrl.SetPage(2)
	v := ctrl.View()
	if v.Page.Page != 2 || len(v.Rows) != 1 {
		t.Fatalf("page 2 should show the 11th record, got page=%d rows=%d", v.Page.Page, len(v.Rows))
	}

	eleventh := v.Rows[0]
	ctrl.ConfirmDelete(eleventh.ID, eleventh.Name)
	if err := ctrl.CommitDelete(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	v = ctrl.View()
	if v.Page.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1", v.Page.TotalPages)
	}
	if v.Page.Page != 1 {
		t.Errorf("page = %d, want clamp to 1", v.Page.Page)
	}
	if len(v.Rows) != 10 {
		t.Errorf("rows = %d, want the full first page of 10", len(v.Rows))
	}
}

// Deleting a parent re-derives enrichment: its children lose their
// parent name and become roots in the tree view.
func TestControllerDeleteReenriches(t *testing.T) {
	parent := newCat("parent", 1)
	child := newCat("child", 2)
	child.ParentID = &parent.ID
	repo := &fakeRepo{cats: []models.Category{parent, child}}
	ctrl := loaded(t, repo, 10)

	ctrl.SetTreeMode(true)
	ctrl.ConfirmDelete(parent.ID, parent.Name)
	if err := ctrl.CommitDelete(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	v := ctrl.View()
	if len(v.Rows) != 1 || v.Rows[0].ParentName != "" {
		t.Errorf("child should be an orphan with no parent name, got %+v", v.Rows)
	}
	if len(v.Tree) != 1 || v.Tree[0].Depth != 0 {
		t.Errorf("orphaned child should render as a depth-0 root, got %+v", v.Tree)
	}
}

func TestControllerTreeModeUsesFullFilteredSet(t *testing.T) {
	repo := &fakeRepo{cats: seedCats(25)}
	ctrl := loaded(t, repo, 10)

	ctrl.SetTreeMode(true)
	v := ctrl.View()
	if len(v.Tree) != 25 {
		t.Errorf("tree rows = %d, want all 25 filtered records, not one page", len(v.Tree))
	}
	if len(v.Rows) != 10 {
		t.Errorf("flat page rows = %d, want 10", len(v.Rows))
	}
}

func TestControllerSingleSiteMode(t *testing.T) {
	siteID := uuid.New()
	c := newCat("pinned", 1)
	c.SiteID = siteID
	repo := &fakeRepo{
		cats:  []models.Category{c},
		sites: []models.Site{{ID: siteID, Name: "Pinned", Slug: "pinned"}},
	}

	ctrl := New(repo, "pinned", 10)
	ctrl.Load(context.Background())

	v := ctrl.View()
	if v.Status != StatusLoaded {
		t.Fatalf("status = %s, want loaded", v.Status)
	}
	if len(v.Sites) != 0 {
		t.Error("single-site mode must not fetch sites")
	}
	if v.Rows[0].SiteName != "" {
		t.Error("single-site mode must not enrich site names")
	}

	// The site filter is inert.
	other := uuid.New()
	ctrl.SetSiteFilter(&other)
	if v := ctrl.View(); len(v.Rows) != 1 {
		t.Errorf("site filter applied in single-site mode: rows=%d", len(v.Rows))
	}
}
