package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/coursecatalog-backend/internal/data/aggregates"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	domaincatalog "github.com/yungbote/coursecatalog-backend/internal/domain/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/slug"
	"github.com/yungbote/coursecatalog-backend/internal/platform/validate"
)

type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"omitempty,slug"`
}

// AttachCategory links the course's detail to the category. Courses without a
// detail cannot be categorised.
func (u Usecases) AttachCategory(ctx context.Context, categoryID, courseID uuid.UUID) (bool, error) {
	const op = "Catalog.Category.Attach"
	var attached bool
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		if _, err := u.categoryByID(dbc, op, categoryID); err != nil {
			return err
		}
		course, err := u.courseByID(dbc, op, courseID)
		if err != nil {
			return err
		}
		if !domaincatalog.HasDetail(course) {
			return domainagg.InvalidOperation(op, "course has no detail")
		}
		attached, err = u.deps.Categories.Link(dbc, categoryID, course.Detail.ID)
		return err
	})
	if err != nil {
		return false, err
	}
	if attached {
		u.invalidate(ctx)
	}
	return attached, nil
}

// DetachCategory removes a link if present and returns how many were removed.
func (u Usecases) DetachCategory(ctx context.Context, categoryID, courseDetailID uuid.UUID) (int64, error) {
	const op = "Catalog.Category.Detach"
	var removed int64
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		if _, err := u.categoryByID(dbc, op, categoryID); err != nil {
			return err
		}
		detail, err := u.deps.Details.GetByID(dbc, courseDetailID)
		if err != nil {
			return err
		}
		if detail == nil {
			return domainagg.NotFound(op, "course detail not found")
		}
		removed, err = u.deps.Categories.Unlink(dbc, categoryID, courseDetailID)
		return err
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		u.invalidate(ctx)
	}
	return removed, nil
}

// CoursesInCategory returns the linked courses, each with its detail, ordered by title.
func (u Usecases) CoursesInCategory(ctx context.Context, categoryID uuid.UUID) ([]*types.Course, error) {
	const op = "Catalog.Category.CoursesIn"
	dbc := u.read(ctx)
	if _, err := u.categoryByID(dbc, op, categoryID); err != nil {
		return nil, err
	}
	rows, err := u.deps.Courses.ListInCategory(dbc, categoryID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return rows, nil
}

// CoursesNotInCategory returns the courses that could be attached: they have a
// detail that is not yet linked to the category.
func (u Usecases) CoursesNotInCategory(ctx context.Context, categoryID uuid.UUID) ([]*types.Course, error) {
	const op = "Catalog.Category.CoursesNotIn"
	dbc := u.read(ctx)
	if _, err := u.categoryByID(dbc, op, categoryID); err != nil {
		return nil, err
	}
	rows, err := u.deps.Courses.ListNotInCategory(dbc, categoryID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return rows, nil
}

func (u Usecases) GetCategory(ctx context.Context, categoryID uuid.UUID) (*types.Category, error) {
	return u.categoryByID(u.read(ctx), "Catalog.Category.Get", categoryID)
}

func (u Usecases) CreateCategory(ctx context.Context, in CreateCategoryInput) (*types.Category, error) {
	const op = "Catalog.Category.Create"
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if err := validate.Struct(in); err != nil {
		return nil, domainagg.NewError(domainagg.CodeInvalidInput, op, err.Error(), err)
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	if in.Slug == "" {
		return nil, domainagg.InvalidInput(op, "name must contain letters or digits")
	}

	row := &types.Category{Name: in.Name, Slug: in.Slug}
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		byName, err := u.deps.Categories.GetByName(dbc, in.Name)
		if err != nil {
			return err
		}
		if byName != nil {
			return domainagg.Conflict(op, "category name already exists")
		}
		bySlug, err := u.deps.Categories.GetBySlug(dbc, in.Slug)
		if err != nil {
			return err
		}
		if bySlug != nil {
			return domainagg.Conflict(op, "category slug already exists")
		}
		return u.deps.Categories.Create(dbc, row)
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return row, nil
}

// UpdateCategory renames a category. The slug stays what it was at creation.
func (u Usecases) UpdateCategory(ctx context.Context, categoryID uuid.UUID, name string) (*types.Category, error) {
	const op = "Catalog.Category.Update"
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainagg.InvalidInput(op, "name is required")
	}
	var out *types.Category
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		cat, err := u.categoryByID(dbc, op, categoryID)
		if err != nil {
			return err
		}
		other, err := u.deps.Categories.GetByName(dbc, name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != cat.ID {
			return domainagg.Conflict(op, "category name already exists")
		}
		if err := u.deps.Categories.UpdateName(dbc, cat.ID, name); err != nil {
			return err
		}
		cat.Name = name
		out = cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return out, nil
}

// DeleteCategory removes the category together with its course links.
func (u Usecases) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	const op = "Catalog.Category.Delete"
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		if _, err := u.deps.Categories.UnlinkAll(dbc, categoryID); err != nil {
			return err
		}
		n, err := u.deps.Categories.Delete(dbc, categoryID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domainagg.NotFound(op, "category not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	u.invalidate(ctx)
	return nil
}
