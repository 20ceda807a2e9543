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

type EnrollmentRepo interface {
	// InsertIfAbsent creates an active row for the pair; false means the pair already existed.
	InsertIfAbsent(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error)
	GetByUserAndCourse(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.Enrollment, error)
	IsActive(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error)
	// ListActiveByUser returns active rows, newest enrollment first, with Course preloaded.
	ListActiveByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Enrollment, error)
	CountByUserAndCourse(dbc dbctx.Context, userID, courseID uuid.UUID) (int64, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) InsertIfAbsent(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || courseID == uuid.Nil {
		return false, nil
	}
	now := time.Now().UTC()
	row := &types.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		IsActive:   true,
		EnrolledAt: now,
		UpdatedAt:  now,
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *enrollmentRepo) GetByUserAndCourse(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || courseID == uuid.Nil {
		return nil, nil
	}
	var out types.Enrollment
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *enrollmentRepo) IsActive(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || courseID == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_active = ?", userID, courseID, true).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *enrollmentRepo) ListActiveByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Enrollment
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Preload("Course").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("enrolled_at DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *enrollmentRepo) CountByUserAndCourse(dbc dbctx.Context, userID, courseID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
