package catalog

import (
	"context"
	"testing"

	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

func TestSuggestionRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewSuggestionRepo(db, testutil.Logger(t))

	c := testutil.SeedCourse(t, ctx, db, "Featured")
	s := &types.Suggestion{CourseID: c.ID, Order: 3}
	if err := repo.Create(dbc, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(dbc, &types.Suggestion{CourseID: c.ID}); err == nil {
		t.Fatalf("second suggestion for the same course must violate the unique index")
	}
	got, err := repo.GetByCourseID(dbc, c.ID)
	if err != nil || got == nil || got.ID != s.ID || got.Order != 3 {
		t.Fatalf("GetByCourseID: got=%+v err=%v", got, err)
	}
	if n, err := repo.Delete(dbc, s.ID); err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if got, err := repo.GetByID(dbc, s.ID); err != nil || got != nil {
		t.Fatalf("GetByID after delete: got=%+v err=%v", got, err)
	}
}
