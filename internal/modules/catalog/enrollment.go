package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	dataagg "github.com/yungbote/coursecatalog-backend/internal/data/aggregates"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/observability"
)

type EnrollmentResult = domainagg.EnrollmentResult

type enrollmentOp func(ctx context.Context, key domainagg.EnrollmentKey) (domainagg.EnrollmentResult, error)

// Enroll activates the caller's enrollment in the course, creating it on first use.
func (u Usecases) Enroll(ctx context.Context, userID uuid.UUID, courseSlug string) (EnrollmentResult, error) {
	return u.transition(ctx, "enroll", userID, courseSlug, u.deps.EnrollmentAgg.Enroll)
}

// ToggleEnrollment flips an existing enrollment. It never creates one.
func (u Usecases) ToggleEnrollment(ctx context.Context, userID uuid.UUID, courseSlug string) (EnrollmentResult, error) {
	return u.transition(ctx, "toggle", userID, courseSlug, u.deps.EnrollmentAgg.Toggle)
}

// Unenroll deactivates an existing enrollment. The row is kept.
func (u Usecases) Unenroll(ctx context.Context, userID uuid.UUID, courseSlug string) (EnrollmentResult, error) {
	return u.transition(ctx, "unenroll", userID, courseSlug, u.deps.EnrollmentAgg.Unenroll)
}

func (u Usecases) transition(ctx context.Context, name string, userID uuid.UUID, courseSlug string, fn enrollmentOp) (EnrollmentResult, error) {
	op := "Catalog.Enrollment." + name
	ctx, span := observability.Tracer().Start(ctx, "catalog.enrollment."+name)
	defer span.End()
	span.SetAttributes(attribute.String("course.slug", courseSlug))

	course, err := u.courseBySlug(u.read(ctx), op, courseSlug)
	if err != nil {
		span.SetStatus(codes.Error, "course lookup failed")
		return EnrollmentResult{}, err
	}
	res, err := fn(ctx, domainagg.EnrollmentKey{UserID: userID, CourseID: course.ID})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(domainagg.CodeOf(err)))
		return EnrollmentResult{}, err
	}
	span.SetAttributes(attribute.String("enrollment.transition", string(res.Transition)))
	u.deps.Metrics.IncEnrollmentTransition(name, string(res.Transition))
	u.deps.Log.Debug("enrollment transition",
		"op", name,
		"user_id", userID,
		"course_id", course.ID,
		"transition", res.Transition,
	)
	return res, nil
}

// ListActiveEnrollments returns the caller's active enrollments, newest first.
func (u Usecases) ListActiveEnrollments(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	rows, err := u.deps.Enrollments.ListActiveByUser(u.read(ctx), userID)
	if err != nil {
		return nil, dataagg.MapError("Catalog.Enrollment.ListActive", err)
	}
	return rows, nil
}
