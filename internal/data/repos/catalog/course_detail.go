package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type CourseDetailRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.CourseDetail, error)
	GetByCourseID(dbc dbctx.Context, courseID uuid.UUID) (*types.CourseDetail, error)
	// Upsert creates or replaces the one detail row of row.CourseID.
	Upsert(dbc dbctx.Context, row *types.CourseDetail) error
}

type courseDetailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseDetailRepo(db *gorm.DB, baseLog *logger.Logger) CourseDetailRepo {
	return &courseDetailRepo{db: db, log: baseLog.With("repo", "CourseDetailRepo")}
}

func (r *courseDetailRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.CourseDetail, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out types.CourseDetail
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *courseDetailRepo) GetByCourseID(dbc dbctx.Context, courseID uuid.UUID) (*types.CourseDetail, error) {
	if courseID == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out types.CourseDetail
	if err := t.WithContext(dbc.Ctx).Where("course_id = ?", courseID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *courseDetailRepo) Upsert(dbc dbctx.Context, row *types.CourseDetail) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.CourseID == uuid.Nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"instructor",
				"instructor_bio",
				"short_description",
				"overview",
				"outcomes",
				"skills",
				"tools",
				"requirements",
				"language",
				"certificate",
				"languages_available",
				"last_updated",
				"exercises_count",
				"updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return err
	}
	// On conflict the generated id was not stored; reload the persisted row.
	stored, err := r.GetByCourseID(dbc, row.CourseID)
	if err != nil {
		return err
	}
	if stored != nil {
		*row = *stored
	}
	return nil
}
