package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suggestion marks a course as staff-suggested. At most one exists per course.
type Suggestion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;column:course_id;not null;uniqueIndex" json:"course_id"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Suggestion) TableName() string { return "suggestion" }

func (s *Suggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SuggestedCourse pairs a suggested course with its suggestion metadata.
type SuggestedCourse struct {
	Course     Course     `json:"course"`
	Suggestion Suggestion `json:"suggestion"`
}
