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

type WishlistRepo interface {
	// InsertIfAbsent reports whether a new entry was created.
	InsertIfAbsent(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error)
	Get(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.WishlistEntry, error)
	Delete(dbc dbctx.Context, userID, courseID uuid.UUID) (int64, error)
	Exists(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error)
	// ListByUser returns entries newest first with Course preloaded.
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.WishlistEntry, error)
}

type wishlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWishlistRepo(db *gorm.DB, baseLog *logger.Logger) WishlistRepo {
	return &wishlistRepo{db: db, log: baseLog.With("repo", "WishlistRepo")}
}

func (r *wishlistRepo) InsertIfAbsent(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || courseID == uuid.Nil {
		return false, nil
	}
	row := &types.WishlistEntry{UserID: userID, CourseID: courseID, CreatedAt: time.Now().UTC()}
	res := dbc.DB(r.db).
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

func (r *wishlistRepo) Get(dbc dbctx.Context, userID, courseID uuid.UUID) (*types.WishlistEntry, error) {
	if userID == uuid.Nil || courseID == uuid.Nil {
		return nil, nil
	}
	var out types.WishlistEntry
	if err := dbc.DB(r.db).
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

func (r *wishlistRepo) Delete(dbc dbctx.Context, userID, courseID uuid.UUID) (int64, error) {
	if userID == uuid.Nil || courseID == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&types.WishlistEntry{})
	return res.RowsAffected, res.Error
}

func (r *wishlistRepo) Exists(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || courseID == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.WishlistEntry{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *wishlistRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.WishlistEntry, error) {
	var out []*types.WishlistEntry
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
