package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type ModuleRepo interface {
	Create(dbc dbctx.Context, m *types.Module) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Module, error)
	// ListByCourseID returns modules in creation order with their quizzes.
	ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Module, error)
	GetByCourseAndTitle(dbc dbctx.Context, courseID uuid.UUID, title string) (*types.Module, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return &moduleRepo{db: db, log: baseLog.With("repo", "ModuleRepo")}
}

func (r *moduleRepo) Create(dbc dbctx.Context, m *types.Module) error {
	if m == nil {
		return nil
	}
	return dbc.DB(r.db).Create(m).Error
}

func (r *moduleRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Module, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Module
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *moduleRepo) ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Module, error) {
	var out []*types.Module
	if courseID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Preload("Quizzes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("course_id = ?", courseID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *moduleRepo) GetByCourseAndTitle(dbc dbctx.Context, courseID uuid.UUID, title string) (*types.Module, error) {
	if courseID == uuid.Nil || title == "" {
		return nil, nil
	}
	var out types.Module
	if err := dbc.DB(r.db).
		Where("course_id = ? AND title = ?", courseID, title).
		Order("created_at ASC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}
