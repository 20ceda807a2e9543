package db

import (
	"fmt"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return err
	}
	return EnsureCatalogIndexes(db)
}

// EnsureCatalogIndexes creates the listing indexes gorm tags cannot express.
// The statements are valid on both Postgres and SQLite.
func EnsureCatalogIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_course_created_id", `CREATE INDEX IF NOT EXISTS idx_course_created_id ON course (created_at, id);`},
		{"idx_suggestion_order", `CREATE INDEX IF NOT EXISTS idx_suggestion_order ON suggestion (sort_order, created_at);`},
		// Active enrollments per user, newest first.
		{"idx_enrollment_user_active", `
			CREATE INDEX IF NOT EXISTS idx_enrollment_user_active
			ON enrollment (user_id, enrolled_at DESC)
			WHERE is_active;
		`},
		{"idx_wishlist_user_created", `CREATE INDEX IF NOT EXISTS idx_wishlist_user_created ON wishlist_entry (user_id, created_at DESC);`},
		{"idx_question_quiz_position", `CREATE INDEX IF NOT EXISTS idx_question_quiz_position ON question (quiz_id, position);`},
	}
	for _, st := range stmts {
		if err := db.Exec(st.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", st.name, err)
		}
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating catalog tables...", "driver", s.driver)
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
