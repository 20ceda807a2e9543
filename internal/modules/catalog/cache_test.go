package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursecatalog-backend/internal/data/repos"
	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

// courseRepoAfterRead runs after once, right after the first regular page is read.
type courseRepoAfterRead struct {
	repos.CourseRepo
	once  sync.Once
	after func()
}

func (r *courseRepoAfterRead) ListRegular(dbc dbctx.Context, offset, limit int) ([]*types.Course, error) {
	rows, err := r.CourseRepo.ListRegular(dbc, offset, limit)
	r.once.Do(r.after)
	return rows, err
}

func TestListing_WriteDuringReadDoesNotLeaveStalePage(t *testing.T) {
	uc, db, cache := newCachedUsecases(t)
	ctx := context.Background()
	a := testutil.SeedCourse(t, ctx, db, "Racing A")
	testutil.SeedCourse(t, ctx, db, "Racing B")

	var suggestErr error
	uc.deps.Courses = &courseRepoAfterRead{
		CourseRepo: uc.deps.Courses,
		after: func() {
			_, suggestErr = uc.CreateSuggestion(ctx, a.ID, 1)
		},
	}

	during, err := uc.ListRegularCourses(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, suggestErr)
	require.Len(t, during.Items, 2)
	require.Equal(t, 1, cache.bumps)

	regular, err := uc.ListRegularCourses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, regular.Items, 1)
	require.NotEqual(t, a.ID, regular.Items[0].ID)

	suggested, err := uc.ListSuggestedCourses(ctx)
	require.NoError(t, err)
	require.Len(t, suggested, 1)
	require.Equal(t, a.ID, suggested[0].Course.ID)
}

func TestListing_OutOfRangePagesShareTheLastPageEntry(t *testing.T) {
	uc, db, cache := newCachedUsecases(t)
	ctx := context.Background()
	testutil.SeedCourse(t, ctx, db, "Only A")
	testutil.SeedCourse(t, ctx, db, "Only B")

	for _, page := range []int{1000000, 1000001, 0, -3} {
		got, err := uc.ListRegularCourses(ctx, page)
		require.NoError(t, err)
		require.Equal(t, 1, got.Meta.Page, "page %d", page)
	}
	require.Equal(t, 1, cache.entries())

	_, err := uc.ListRegularCourses(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, cache.hits)
}
