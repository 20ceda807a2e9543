package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment is the per-(user, course) state record. Rows are never deleted;
// unenrolling only clears IsActive.
type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;column:user_id;not null;uniqueIndex:idx_enrollment_user_course,priority:1" json:"user_id"`
	CourseID   uuid.UUID `gorm:"type:uuid;column:course_id;not null;uniqueIndex:idx_enrollment_user_course,priority:2;index" json:"course_id"`
	Course     *Course   `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
	IsActive   bool      `gorm:"column:is_active;not null" json:"is_active"`
	EnrolledAt time.Time `gorm:"column:enrolled_at;not null;autoCreateTime" json:"enrolled_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Transition names what an enroll call did to the (user, course) record.
type Transition string

const (
	TransitionCreated     Transition = "created"
	TransitionReactivated Transition = "reactivated"
	TransitionUnchanged   Transition = "unchanged"
	TransitionActivated   Transition = "activated"
	TransitionDeactivated Transition = "deactivated"
)
