package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type CategoryRepo interface {
	Create(dbc dbctx.Context, c *types.Category) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Category, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.Category, error)
	GetByName(dbc dbctx.Context, name string) (*types.Category, error)
	List(dbc dbctx.Context) ([]*types.Category, error)
	UpdateName(dbc dbctx.Context, id uuid.UUID, name string) error
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)

	// Link inserts the (detail, category) pair; it reports false when the pair already existed.
	Link(dbc dbctx.Context, categoryID, courseDetailID uuid.UUID) (bool, error)
	Unlink(dbc dbctx.Context, categoryID, courseDetailID uuid.UUID) (int64, error)
	UnlinkAll(dbc dbctx.Context, categoryID uuid.UUID) (int64, error)
	ListByCourseDetailID(dbc dbctx.Context, courseDetailID uuid.UUID) ([]*types.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) Create(dbc dbctx.Context, c *types.Category) error {
	if c == nil {
		return nil
	}
	return dbc.DB(r.db).Create(c).Error
}

func (r *categoryRepo) first(dbc dbctx.Context, query string, arg any) (*types.Category, error) {
	var out types.Category
	if err := dbc.DB(r.db).Where(query, arg).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *categoryRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Category, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, "id = ?", id)
}

func (r *categoryRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Category, error) {
	if slug == "" {
		return nil, nil
	}
	return r.first(dbc, "slug = ?", slug)
}

func (r *categoryRepo) GetByName(dbc dbctx.Context, name string) (*types.Category, error) {
	if name == "" {
		return nil, nil
	}
	return r.first(dbc, "name = ?", name)
}

func (r *categoryRepo) List(dbc dbctx.Context) ([]*types.Category, error) {
	var out []*types.Category
	if err := dbc.DB(r.db).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) UpdateName(dbc dbctx.Context, id uuid.UUID, name string) error {
	if id == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).
		Model(&types.Category{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *categoryRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Category{})
	return res.RowsAffected, res.Error
}

func (r *categoryRepo) Link(dbc dbctx.Context, categoryID, courseDetailID uuid.UUID) (bool, error) {
	if categoryID == uuid.Nil || courseDetailID == uuid.Nil {
		return false, nil
	}
	row := &types.CourseDetailCategory{CourseDetailID: courseDetailID, CategoryID: categoryID}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_detail_id"}, {Name: "category_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *categoryRepo) Unlink(dbc dbctx.Context, categoryID, courseDetailID uuid.UUID) (int64, error) {
	if categoryID == uuid.Nil || courseDetailID == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Where("category_id = ? AND course_detail_id = ?", categoryID, courseDetailID).
		Delete(&types.CourseDetailCategory{})
	return res.RowsAffected, res.Error
}

func (r *categoryRepo) UnlinkAll(dbc dbctx.Context, categoryID uuid.UUID) (int64, error) {
	if categoryID == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("category_id = ?", categoryID).Delete(&types.CourseDetailCategory{})
	return res.RowsAffected, res.Error
}

func (r *categoryRepo) ListByCourseDetailID(dbc dbctx.Context, courseDetailID uuid.UUID) ([]*types.Category, error) {
	var out []*types.Category
	if courseDetailID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Joins("JOIN course_detail_category cdc ON cdc.category_id = category.id").
		Where("cdc.course_detail_id = ?", courseDetailID).
		Order("category.name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
