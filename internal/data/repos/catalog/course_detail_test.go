package catalog

import (
	"context"
	"reflect"
	"testing"

	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

func TestCourseDetailRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseDetailRepo(db, testutil.Logger(t))

	c := testutil.SeedCourse(t, ctx, tx, "Go Basics")

	first := &types.CourseDetail{
		CourseID:   c.ID,
		Instructor: "Rob",
		Outcomes:   []string{" Write Go ", "", "Test Go"},
	}
	if err := repo.Upsert(dbc, first); err != nil {
		t.Fatalf("Upsert create: %v", err)
	}
	got, err := repo.GetByCourseID(dbc, c.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByCourseID: got=%v err=%v", got, err)
	}
	if got.Language != "English" {
		t.Fatalf("language default: got %q", got.Language)
	}
	if !reflect.DeepEqual([]string(got.Outcomes), []string{"Write Go", "Test Go"}) {
		t.Fatalf("outcomes not normalised: %v", got.Outcomes)
	}

	second := &types.CourseDetail{
		CourseID:   c.ID,
		Instructor: "Ken",
		Language:   "Spanish",
		Skills:     []string{"Concurrency"},
	}
	if err := repo.Upsert(dbc, second); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if second.ID != got.ID {
		t.Fatalf("upsert must keep the one-to-one row: first=%s second=%s", got.ID, second.ID)
	}
	again, err := repo.GetByID(dbc, got.ID)
	if err != nil || again == nil || again.Instructor != "Ken" || again.Language != "Spanish" {
		t.Fatalf("GetByID after update: got=%+v err=%v", again, err)
	}
	if len(again.Outcomes) != 0 || len(again.Skills) != 1 {
		t.Fatalf("line lists should be replaced: %+v", again)
	}
}
