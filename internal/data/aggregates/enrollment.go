package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/coursecatalog-backend/internal/data/repos"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/domain/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"gorm.io/gorm"
)

const enrollmentTable = "enrollment"

type EnrollmentAggregateDeps struct {
	Base BaseDeps

	Enrollments repos.EnrollmentRepo
}

type enrollmentAggregate struct {
	deps EnrollmentAggregateDeps
}

func NewEnrollmentAggregate(deps EnrollmentAggregateDeps) domainagg.EnrollmentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &enrollmentAggregate{deps: deps}
}

func (a *enrollmentAggregate) Contract() domainagg.Contract {
	return domainagg.EnrollmentAggregateContract
}

func pairKey(in domainagg.EnrollmentKey) map[string]any {
	return map[string]any{"user_id": in.UserID, "course_id": in.CourseID}
}

func validateKey(in domainagg.EnrollmentKey) error {
	if in.UserID == uuid.Nil || in.CourseID == uuid.Nil {
		return ValidationError("user_id and course_id are required")
	}
	return nil
}

func (a *enrollmentAggregate) Enroll(ctx context.Context, in domainagg.EnrollmentKey) (domainagg.EnrollmentResult, error) {
	const op = "Catalog.Enrollment.Enroll"
	var out domainagg.EnrollmentResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := validateKey(in); err != nil {
			return err
		}
		reactivated, err := a.deps.Base.CASGuard.UpdateByFlag(dbc, enrollmentTable, pairKey(in), "is_active", false, map[string]any{
			"is_active":  true,
			"updated_at": time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		switch {
		case reactivated:
			out.Transition = catalog.TransitionReactivated
		default:
			created, err := a.deps.Enrollments.InsertIfAbsent(dbc, in.UserID, in.CourseID)
			if err != nil {
				return err
			}
			out.Transition = catalog.TransitionUnchanged
			if created {
				out.Transition = catalog.TransitionCreated
			}
		}
		return a.reload(dbc, in, &out)
	})
	return out, err
}

func (a *enrollmentAggregate) Toggle(ctx context.Context, in domainagg.EnrollmentKey) (domainagg.EnrollmentResult, error) {
	const op = "Catalog.Enrollment.Toggle"
	var out domainagg.EnrollmentResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := validateKey(in); err != nil {
			return err
		}
		n, err := a.deps.Base.CASGuard.UpdateByKey(dbc, enrollmentTable, pairKey(in), map[string]any{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_at": time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return domainagg.NotFound(op, "enrollment not found")
		}
		if err := a.reload(dbc, in, &out); err != nil {
			return err
		}
		out.Transition = catalog.TransitionDeactivated
		if out.Enrollment.IsActive {
			out.Transition = catalog.TransitionActivated
		}
		return nil
	})
	return out, err
}

func (a *enrollmentAggregate) Unenroll(ctx context.Context, in domainagg.EnrollmentKey) (domainagg.EnrollmentResult, error) {
	const op = "Catalog.Enrollment.Unenroll"
	var out domainagg.EnrollmentResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := validateKey(in); err != nil {
			return err
		}
		deactivated, err := a.deps.Base.CASGuard.UpdateByFlag(dbc, enrollmentTable, pairKey(in), "is_active", true, map[string]any{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := a.reload(dbc, in, &out); err != nil {
			return err
		}
		out.Transition = catalog.TransitionUnchanged
		if deactivated {
			out.Transition = catalog.TransitionDeactivated
		}
		return nil
	})
	return out, err
}

func (a *enrollmentAggregate) reload(dbc dbctx.Context, in domainagg.EnrollmentKey, out *domainagg.EnrollmentResult) error {
	row, err := a.deps.Enrollments.GetByUserAndCourse(dbc, in.UserID, in.CourseID)
	if err != nil {
		return err
	}
	if row == nil {
		return domainagg.NotFound("Catalog.Enrollment", "enrollment not found")
	}
	out.Enrollment = *row
	return nil
}
