package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
)

func countEnrollments(t *testing.T, uc Usecases, user, course uuid.UUID) int64 {
	t.Helper()
	n, err := uc.deps.Enrollments.CountByUserAndCourse(uc.read(context.Background()), user, course)
	require.NoError(t, err)
	return n
}

func TestEnroll_TwiceLeavesOneActiveRow(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, db, "Enroll Twice")
	user := uuid.New()

	first, err := uc.Enroll(ctx, user, c.Slug)
	require.NoError(t, err)
	require.Equal(t, types.TransitionCreated, first.Transition)

	second, err := uc.Enroll(ctx, user, c.Slug)
	require.NoError(t, err)
	require.Equal(t, types.TransitionUnchanged, second.Transition)
	require.True(t, second.Enrollment.IsActive)
	require.Equal(t, first.Enrollment.ID, second.Enrollment.ID)
	require.EqualValues(t, 1, countEnrollments(t, uc, user, c.ID))
}

func TestToggle_IsAnInvolution(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, db, "Toggle Twice")
	user := uuid.New()
	start, err := uc.Enroll(ctx, user, c.Slug)
	require.NoError(t, err)

	once, err := uc.ToggleEnrollment(ctx, user, c.Slug)
	require.NoError(t, err)
	require.Equal(t, types.TransitionDeactivated, once.Transition)
	require.False(t, once.Enrollment.IsActive)

	twice, err := uc.ToggleEnrollment(ctx, user, c.Slug)
	require.NoError(t, err)
	require.Equal(t, types.TransitionActivated, twice.Transition)
	require.Equal(t, start.Enrollment.IsActive, twice.Enrollment.IsActive)
	require.Equal(t, start.Enrollment.ID, twice.Enrollment.ID)
	require.Equal(t, start.Enrollment.UserID, twice.Enrollment.UserID)
	require.Equal(t, start.Enrollment.CourseID, twice.Enrollment.CourseID)
	require.True(t, start.Enrollment.EnrolledAt.Equal(twice.Enrollment.EnrolledAt))
}

func TestToggle_WithoutEnrollmentIsNotFound(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, db, "Toggle Missing")
	_, err := uc.ToggleEnrollment(ctx, uuid.New(), c.Slug)
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestUnenroll_KeepsRowAndEnrollReactivatesIt(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, db, "Come Back")
	user := uuid.New()

	created, err := uc.Enroll(ctx, user, c.Slug)
	require.NoError(t, err)

	left, err := uc.Unenroll(ctx, user, c.Slug)
	require.NoError(t, err)
	require.Equal(t, types.TransitionDeactivated, left.Transition)
	require.False(t, left.Enrollment.IsActive)
	require.EqualValues(t, 1, countEnrollments(t, uc, user, c.ID))

	again, err := uc.Unenroll(ctx, user, c.Slug)
	require.NoError(t, err)
	require.Equal(t, types.TransitionUnchanged, again.Transition)

	back, err := uc.Enroll(ctx, user, c.Slug)
	require.NoError(t, err)
	require.Equal(t, types.TransitionReactivated, back.Transition)
	require.Equal(t, created.Enrollment.ID, back.Enrollment.ID)
	require.True(t, created.Enrollment.EnrolledAt.Equal(back.Enrollment.EnrolledAt))
	require.EqualValues(t, 1, countEnrollments(t, uc, user, c.ID))
}

func TestUnenroll_WithoutEnrollmentIsNotFound(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, db, "Never Joined")
	_, err := uc.Unenroll(ctx, uuid.New(), c.Slug)
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestEnrollment_UnknownCourseIsNotFound(t *testing.T) {
	uc, _ := newTestUsecases(t)
	ctx := context.Background()
	user := uuid.New()
	_, err := uc.Enroll(ctx, user, "ghost")
	requireCode(t, err, domainagg.CodeNotFound)
	_, err = uc.ToggleEnrollment(ctx, user, "ghost")
	requireCode(t, err, domainagg.CodeNotFound)
	_, err = uc.Unenroll(ctx, user, "ghost")
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestListActiveEnrollments_NewestFirstAndActiveOnly(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	user := uuid.New()
	a := testutil.SeedCourse(t, ctx, db, "Active A")
	b := testutil.SeedCourse(t, ctx, db, "Active B")
	dropped := testutil.SeedCourse(t, ctx, db, "Dropped")
	for _, c := range []*types.Course{a, b, dropped} {
		_, err := uc.Enroll(ctx, user, c.Slug)
		require.NoError(t, err)
	}
	_, err := uc.Unenroll(ctx, user, dropped.Slug)
	require.NoError(t, err)

	rows, err := uc.ListActiveEnrollments(ctx, user)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		require.True(t, r.IsActive)
		require.NotNil(t, r.Course)
		require.NotEqual(t, dropped.ID, r.CourseID)
	}
}
