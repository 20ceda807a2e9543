package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

const (
	hasSuggestionSQL = "EXISTS (SELECT 1 FROM suggestion s WHERE s.course_id = course.id)"
	noSuggestionSQL  = "NOT " + hasSuggestionSQL
	courseOrderSQL   = "course.created_at ASC, course.id ASC"
)

type CourseRepo interface {
	Create(dbc dbctx.Context, c *types.Course) error

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.Course, error)
	SlugExists(dbc dbctx.Context, slug string) (bool, error)

	// Partition queries. A course is matched by exactly one of ListRegular and ListSuggested.
	ListRegular(dbc dbctx.Context, offset, limit int) ([]*types.Course, error)
	CountRegular(dbc dbctx.Context) (int64, error)
	ListSuggested(dbc dbctx.Context) ([]*types.Course, error)
	ListWithoutSuggestion(dbc dbctx.Context) ([]*types.Course, error)

	// Category queries. Only courses with a detail can be linked to a category.
	ListByCategory(dbc dbctx.Context, categoryID uuid.UUID, offset, limit int) ([]*types.Course, error)
	CountByCategory(dbc dbctx.Context, categoryID uuid.UUID) (int64, error)
	ListInCategory(dbc dbctx.Context, categoryID uuid.UUID) ([]*types.Course, error)
	ListNotInCategory(dbc dbctx.Context, categoryID uuid.UUID) ([]*types.Course, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) base(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *courseRepo) Create(dbc dbctx.Context, c *types.Course) error {
	if c == nil {
		return nil
	}
	return r.base(dbc).Create(c).Error
}

func (r *courseRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Course
	if err := r.base(dbc).
		Preload("Detail").
		Preload("Suggestion").
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *courseRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Course, error) {
	if slug == "" {
		return nil, nil
	}
	var out types.Course
	if err := r.base(dbc).
		Preload("Detail").
		Preload("Suggestion").
		Where("slug = ?", slug).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *courseRepo) SlugExists(dbc dbctx.Context, slug string) (bool, error) {
	var n int64
	if err := r.base(dbc).Model(&types.Course{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *courseRepo) ListRegular(dbc dbctx.Context, offset, limit int) ([]*types.Course, error) {
	var out []*types.Course
	if err := r.base(dbc).
		Preload("Detail").
		Where(noSuggestionSQL).
		Order(courseOrderSQL).
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) CountRegular(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := r.base(dbc).Model(&types.Course{}).Where(noSuggestionSQL).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *courseRepo) ListSuggested(dbc dbctx.Context) ([]*types.Course, error) {
	var out []*types.Course
	if err := r.base(dbc).
		Preload("Detail").
		Preload("Suggestion").
		Joins("JOIN suggestion s ON s.course_id = course.id").
		Order("s.sort_order ASC, s.created_at ASC, course.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) ListWithoutSuggestion(dbc dbctx.Context) ([]*types.Course, error) {
	var out []*types.Course
	if err := r.base(dbc).
		Where(noSuggestionSQL).
		Order("course.title ASC, course.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) inCategory(dbc dbctx.Context, categoryID uuid.UUID) *gorm.DB {
	return r.base(dbc).
		Model(&types.Course{}).
		Joins("JOIN course_detail cd ON cd.course_id = course.id").
		Joins("JOIN course_detail_category cdc ON cdc.course_detail_id = cd.id").
		Where("cdc.category_id = ?", categoryID)
}

func (r *courseRepo) ListByCategory(dbc dbctx.Context, categoryID uuid.UUID, offset, limit int) ([]*types.Course, error) {
	var out []*types.Course
	if categoryID == uuid.Nil {
		return out, nil
	}
	if err := r.inCategory(dbc, categoryID).
		Preload("Detail").
		Preload("Suggestion").
		Order(courseOrderSQL).
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) CountByCategory(dbc dbctx.Context, categoryID uuid.UUID) (int64, error) {
	if categoryID == uuid.Nil {
		return 0, nil
	}
	var n int64
	if err := r.inCategory(dbc, categoryID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *courseRepo) ListInCategory(dbc dbctx.Context, categoryID uuid.UUID) ([]*types.Course, error) {
	var out []*types.Course
	if categoryID == uuid.Nil {
		return out, nil
	}
	if err := r.inCategory(dbc, categoryID).
		Preload("Detail").
		Order("course.title ASC, course.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) ListNotInCategory(dbc dbctx.Context, categoryID uuid.UUID) ([]*types.Course, error) {
	var out []*types.Course
	if err := r.base(dbc).
		Preload("Detail").
		Joins("JOIN course_detail cd ON cd.course_id = course.id").
		Where(`NOT EXISTS (
			SELECT 1 FROM course_detail_category cdc
			WHERE cdc.course_detail_id = cd.id AND cdc.category_id = ?
		)`, categoryID).
		Order("course.title ASC, course.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
