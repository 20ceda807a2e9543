package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

func TestWishlistRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewWishlistRepo(db, testutil.Logger(t))

	user := uuid.New()
	older := testutil.SeedCourse(t, ctx, tx, "Older")
	newer := testutil.SeedCourse(t, ctx, tx, "Newer")

	if ok, err := repo.InsertIfAbsent(dbc, user, older.ID); err != nil || !ok {
		t.Fatalf("InsertIfAbsent: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.InsertIfAbsent(dbc, user, older.ID); err != nil || ok {
		t.Fatalf("InsertIfAbsent duplicate: ok=%v err=%v", ok, err)
	}
	if _, err := repo.InsertIfAbsent(dbc, user, newer.ID); err != nil {
		t.Fatalf("InsertIfAbsent newer: %v", err)
	}
	// Pin created_at so ordering does not depend on clock resolution.
	if err := tx.Table("wishlist_entry").Where("course_id = ?", older.ID).
		Update("created_at", time.Now().UTC().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("pin created_at: %v", err)
	}

	rows, err := repo.ListByUser(dbc, user)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByUser: err=%v len=%d", err, len(rows))
	}
	if rows[0].CourseID != newer.ID || rows[1].CourseID != older.ID {
		t.Fatalf("ListByUser: expected newest first")
	}
	if rows[0].Course == nil {
		t.Fatalf("ListByUser: course not preloaded")
	}

	if ok, err := repo.Exists(dbc, user, older.ID); err != nil || !ok {
		t.Fatalf("Exists: ok=%v err=%v", ok, err)
	}
	if n, err := repo.Delete(dbc, user, older.ID); err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if n, err := repo.Delete(dbc, user, older.ID); err != nil || n != 0 {
		t.Fatalf("Delete absent: n=%d err=%v", n, err)
	}
	if got, err := repo.Get(dbc, user, older.ID); err != nil || got != nil {
		t.Fatalf("Get after delete: got=%+v err=%v", got, err)
	}
}
