package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

func TestCourseRepoPartition(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseRepo(db, testutil.Logger(t))

	c1 := testutil.SeedCourse(t, ctx, tx, "Alpha")
	c2 := testutil.SeedCourse(t, ctx, tx, "Bravo")
	c3 := testutil.SeedCourse(t, ctx, tx, "Charlie")
	c4 := testutil.SeedCourse(t, ctx, tx, "Delta")
	testutil.SeedSuggestion(t, ctx, tx, c4.ID, 2)
	testutil.SeedSuggestion(t, ctx, tx, c2.ID, 1)

	regular, err := repo.ListRegular(dbc, 0, 9)
	if err != nil {
		t.Fatalf("ListRegular: %v", err)
	}
	if len(regular) != 2 || regular[0].ID != c1.ID || regular[1].ID != c3.ID {
		t.Fatalf("ListRegular: unexpected rows %+v", regular)
	}
	if n, err := repo.CountRegular(dbc); err != nil || n != 2 {
		t.Fatalf("CountRegular: n=%d err=%v", n, err)
	}

	suggested, err := repo.ListSuggested(dbc)
	if err != nil {
		t.Fatalf("ListSuggested: %v", err)
	}
	if len(suggested) != 2 || suggested[0].ID != c2.ID || suggested[1].ID != c4.ID {
		t.Fatalf("ListSuggested: expected suggestion order, got %+v", suggested)
	}
	for _, c := range suggested {
		if c.Suggestion == nil {
			t.Fatalf("ListSuggested: suggestion not preloaded for %s", c.Title)
		}
	}

	// Every course lands in exactly one listing.
	seen := map[uuid.UUID]int{}
	for _, c := range append(regular, suggested...) {
		seen[c.ID]++
	}
	for _, c := range []uuid.UUID{c1.ID, c2.ID, c3.ID, c4.ID} {
		if seen[c] != 1 {
			t.Fatalf("course %s seen %d times", c, seen[c])
		}
	}

	avail, err := repo.ListWithoutSuggestion(dbc)
	if err != nil || len(avail) != 2 || avail[0].Title != "Alpha" || avail[1].Title != "Charlie" {
		t.Fatalf("ListWithoutSuggestion: err=%v rows=%+v", err, avail)
	}
}

func TestCourseRepoPagingAndLookup(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewCourseRepo(db, testutil.Logger(t))

	var ids []uuid.UUID
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		ids = append(ids, testutil.SeedCourse(t, ctx, db, title).ID)
	}

	page, err := repo.ListRegular(dbc, 2, 2)
	if err != nil || len(page) != 2 || page[0].ID != ids[2] || page[1].ID != ids[3] {
		t.Fatalf("ListRegular offset: err=%v rows=%+v", err, page)
	}

	got, err := repo.GetBySlug(dbc, "three")
	if err != nil || got == nil || got.ID != ids[2] {
		t.Fatalf("GetBySlug: got=%+v err=%v", got, err)
	}
	if got.Detail != nil || got.Suggestion != nil {
		t.Fatalf("GetBySlug: expected no optional references")
	}
	if missing, err := repo.GetBySlug(dbc, "nope"); err != nil || missing != nil {
		t.Fatalf("GetBySlug missing: got=%+v err=%v", missing, err)
	}
	if got, err := repo.GetByID(dbc, ids[0]); err != nil || got == nil || got.Title != "One" {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
	if ok, err := repo.SlugExists(dbc, "five"); err != nil || !ok {
		t.Fatalf("SlugExists: ok=%v err=%v", ok, err)
	}
}

func TestCourseRepoCategoryQueries(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseRepo(db, testutil.Logger(t))

	design := testutil.SeedCategory(t, ctx, tx, "Design")
	other := testutil.SeedCategory(t, ctx, tx, "Other")

	var linked []uuid.UUID
	for _, title := range []string{"Zeta", "Eta", "Theta"} {
		c := testutil.SeedCourse(t, ctx, tx, title)
		d := testutil.SeedCourseDetail(t, ctx, tx, c.ID)
		testutil.SeedCategoryLink(t, ctx, tx, design.ID, d.ID)
		linked = append(linked, c.ID)
	}
	free := testutil.SeedCourse(t, ctx, tx, "Iota")
	freeDetail := testutil.SeedCourseDetail(t, ctx, tx, free.ID)
	testutil.SeedCategoryLink(t, ctx, tx, other.ID, freeDetail.ID)
	testutil.SeedCourse(t, ctx, tx, "Bare") // no detail

	rows, err := repo.ListByCategory(dbc, design.ID, 0, 9)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ListByCategory: want 3 got %d", len(rows))
	}
	for i, c := range rows {
		if c.ID != linked[i] {
			t.Fatalf("ListByCategory: order mismatch at %d", i)
		}
		if c.Detail == nil {
			t.Fatalf("ListByCategory: detail not preloaded")
		}
	}
	if n, err := repo.CountByCategory(dbc, design.ID); err != nil || n != 3 {
		t.Fatalf("CountByCategory: n=%d err=%v", n, err)
	}

	notIn, err := repo.ListNotInCategory(dbc, design.ID)
	if err != nil {
		t.Fatalf("ListNotInCategory: %v", err)
	}
	if len(notIn) != 1 || notIn[0].ID != free.ID {
		t.Fatalf("ListNotInCategory: expected only the detailed unlinked course, got %+v", notIn)
	}

	in, err := repo.ListInCategory(dbc, design.ID)
	if err != nil || len(in) != 3 || in[0].Title != "Eta" {
		t.Fatalf("ListInCategory: err=%v rows=%+v", err, in)
	}
}
