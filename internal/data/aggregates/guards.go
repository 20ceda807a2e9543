package aggregates

import (
	"strings"

	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

// CASGuard provides compare-and-set helpers for aggregate writes. Every
// helper issues a single UPDATE so concurrent writers serialize on the row.
type CASGuard struct {
	db *gorm.DB
}

func NewCASGuard(db *gorm.DB) CASGuard {
	return CASGuard{db: db}
}

func (g CASGuard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx != nil {
		return dbc.DB(dbc.Tx), nil
	}
	if g.db != nil {
		return dbc.DB(g.db), nil
	}
	return nil, ValidationError("missing db transaction context")
}

// UpdateByFlag updates the rows matching key only while column still equals expected.
// It reports whether any row moved.
func (g CASGuard) UpdateByFlag(dbc dbctx.Context, table string, key map[string]any, column string, expected bool, updates map[string]any) (bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	column = strings.TrimSpace(column)
	if table == "" || column == "" || len(key) == 0 {
		return false, ValidationError("table, column and key are required for UpdateByFlag")
	}
	if len(updates) == 0 {
		return false, ValidationError("updates must not be empty")
	}
	res := db.Table(table).
		Where(key).
		Where(column+" = ?", expected).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateByKey applies updates to the rows matching key unconditionally and
// returns the affected count. Expressions such as gorm.Expr("NOT is_active")
// are evaluated by the database, which keeps read-modify-write atomic.
func (g CASGuard) UpdateByKey(dbc dbctx.Context, table string, key map[string]any, updates map[string]any) (int64, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return 0, err
	}
	table = strings.TrimSpace(table)
	if table == "" || len(key) == 0 {
		return 0, ValidationError("table and key are required for UpdateByKey")
	}
	if len(updates) == 0 {
		return 0, ValidationError("updates must not be empty")
	}
	res := db.Table(table).Where(key).Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// RequireCASSuccess converts a failed compare-and-set into a typed conflict error.
func RequireCASSuccess(ok bool, message string) error {
	if ok {
		return nil
	}
	return ConflictError(strings.TrimSpace(message))
}
