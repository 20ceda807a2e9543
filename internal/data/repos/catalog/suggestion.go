package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type SuggestionRepo interface {
	Create(dbc dbctx.Context, s *types.Suggestion) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Suggestion, error)
	GetByCourseID(dbc dbctx.Context, courseID uuid.UUID) (*types.Suggestion, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type suggestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSuggestionRepo(db *gorm.DB, baseLog *logger.Logger) SuggestionRepo {
	return &suggestionRepo{db: db, log: baseLog.With("repo", "SuggestionRepo")}
}

func (r *suggestionRepo) Create(dbc dbctx.Context, s *types.Suggestion) error {
	if s == nil {
		return nil
	}
	return dbc.DB(r.db).Create(s).Error
}

func (r *suggestionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Suggestion, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Suggestion
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *suggestionRepo) GetByCourseID(dbc dbctx.Context, courseID uuid.UUID) (*types.Suggestion, error) {
	if courseID == uuid.Nil {
		return nil, nil
	}
	var out types.Suggestion
	if err := dbc.DB(r.db).Where("course_id = ?", courseID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *suggestionRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Suggestion{})
	return res.RowsAffected, res.Error
}
