package catalog

import (
	"context"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/coursecatalog-backend/internal/data/aggregates"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

// CreateSuggestion moves a course into the suggested listing. A course can be
// suggested once; a second attempt is a conflict and leaves the first intact.
func (u Usecases) CreateSuggestion(ctx context.Context, courseID uuid.UUID, order int) (*types.Suggestion, error) {
	const op = "Catalog.Suggestion.Create"
	row := &types.Suggestion{CourseID: courseID, Order: order}
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		if _, err := u.courseByID(dbc, op, courseID); err != nil {
			return err
		}
		existing, err := u.deps.Suggestions.GetByCourseID(dbc, courseID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domainagg.Conflict(op, "course is already suggested")
		}
		return u.deps.Suggestions.Create(dbc, row)
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return row, nil
}

func (u Usecases) RemoveSuggestion(ctx context.Context, suggestionID uuid.UUID) error {
	const op = "Catalog.Suggestion.Remove"
	n, err := u.deps.Suggestions.Delete(u.read(ctx), suggestionID)
	if err != nil {
		return dataagg.MapError(op, err)
	}
	if n == 0 {
		return domainagg.NotFound(op, "suggestion not found")
	}
	u.invalidate(ctx)
	return nil
}

// ListAvailableForSuggestion returns the courses that are not suggested yet, by title.
func (u Usecases) ListAvailableForSuggestion(ctx context.Context) ([]*types.Course, error) {
	rows, err := u.deps.Courses.ListWithoutSuggestion(u.read(ctx))
	if err != nil {
		return nil, dataagg.MapError("Catalog.Suggestion.ListAvailable", err)
	}
	return rows, nil
}
