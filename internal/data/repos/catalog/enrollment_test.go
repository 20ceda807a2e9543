package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

func TestEnrollmentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewEnrollmentRepo(db, testutil.Logger(t))

	user := uuid.New()
	c1 := testutil.SeedCourse(t, ctx, tx, "Course A")
	c2 := testutil.SeedCourse(t, ctx, tx, "Course B")

	if ok, err := repo.InsertIfAbsent(dbc, user, c1.ID); err != nil || !ok {
		t.Fatalf("InsertIfAbsent: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.InsertIfAbsent(dbc, user, c1.ID); err != nil || ok {
		t.Fatalf("InsertIfAbsent duplicate: ok=%v err=%v", ok, err)
	}
	if n, err := repo.CountByUserAndCourse(dbc, user, c1.ID); err != nil || n != 1 {
		t.Fatalf("CountByUserAndCourse: n=%d err=%v", n, err)
	}

	row, err := repo.GetByUserAndCourse(dbc, user, c1.ID)
	if err != nil || row == nil || !row.IsActive || row.EnrolledAt.IsZero() {
		t.Fatalf("GetByUserAndCourse: row=%+v err=%v", row, err)
	}
	if ok, err := repo.IsActive(dbc, user, c1.ID); err != nil || !ok {
		t.Fatalf("IsActive: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.IsActive(dbc, user, c2.ID); err != nil || ok {
		t.Fatalf("IsActive without row: ok=%v err=%v", ok, err)
	}

	if _, err := repo.InsertIfAbsent(dbc, user, c2.ID); err != nil {
		t.Fatalf("InsertIfAbsent c2: %v", err)
	}
	if err := tx.Table("enrollment").
		Where("user_id = ? AND course_id = ?", user, c2.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := repo.ListActiveByUser(dbc, user)
	if err != nil || len(active) != 1 || active[0].CourseID != c1.ID {
		t.Fatalf("ListActiveByUser: err=%v rows=%+v", err, active)
	}
	if active[0].Course == nil || active[0].Course.Title != "Course A" {
		t.Fatalf("ListActiveByUser: course not preloaded")
	}
	if rows, err := repo.ListActiveByUser(dbc, uuid.New()); err != nil || len(rows) != 0 {
		t.Fatalf("ListActiveByUser other user: err=%v rows=%d", err, len(rows))
	}
}
