package aggregates

import (
	"context"

	"github.com/google/uuid"
	"github.com/yungbote/coursecatalog-backend/internal/domain/catalog"
)

var EnrollmentAggregateContract = Contract{
	Name:        "Catalog.EnrollmentAggregate",
	TxOwnership: TxOwnedByAggregate,
	Invariants: []string{
		"at most one enrollment row per (user, course)",
		"rows are deactivated, never deleted",
		"enrolled_at is set once, on creation",
	},
}

// EnrollmentAggregate owns enrollment state transitions.
//
// Write method failures return *aggregates.Error with codes:
// CodeInvalidInput, CodeNotFound, CodeConflict, CodeRetryable, CodeInternal.
type EnrollmentAggregate interface {
	Aggregate

	// Enroll activates the record, creating it on first enrollment.
	Enroll(ctx context.Context, in EnrollmentKey) (EnrollmentResult, error)

	// Toggle flips IsActive on an existing record.
	Toggle(ctx context.Context, in EnrollmentKey) (EnrollmentResult, error)

	// Unenroll clears IsActive on an existing record.
	Unenroll(ctx context.Context, in EnrollmentKey) (EnrollmentResult, error)
}

type EnrollmentKey struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
}

type EnrollmentResult struct {
	Enrollment catalog.Enrollment
	Transition catalog.Transition
}
