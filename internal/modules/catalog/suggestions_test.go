package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
)

func TestCreateSuggestion_SecondIsConflictAndFirstSurvives(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, db, "Suggest Me")

	first, err := uc.CreateSuggestion(ctx, c.ID, 3)
	require.NoError(t, err)

	_, err = uc.CreateSuggestion(ctx, c.ID, 7)
	requireCode(t, err, domainagg.CodeConflict)

	got, err := uc.deps.Suggestions.GetByCourseID(uc.read(ctx), c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, 3, got.Order)
}

func TestCreateSuggestion_UnknownCourse(t *testing.T) {
	uc, _ := newTestUsecases(t)
	_, err := uc.CreateSuggestion(context.Background(), uuid.New(), 0)
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestRemoveSuggestion_ReturnsCourseToRegular(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, db, "Back To Regular")
	s, err := uc.CreateSuggestion(ctx, c.ID, 0)
	require.NoError(t, err)

	avail, err := uc.ListAvailableForSuggestion(ctx)
	require.NoError(t, err)
	require.Empty(t, avail)

	require.NoError(t, uc.RemoveSuggestion(ctx, s.ID))
	requireCode(t, uc.RemoveSuggestion(ctx, s.ID), domainagg.CodeNotFound)

	page, err := uc.ListRegularCourses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, c.ID, page.Items[0].ID)

	avail, err = uc.ListAvailableForSuggestion(ctx)
	require.NoError(t, err)
	require.Len(t, avail, 1)
}
