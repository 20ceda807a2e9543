package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Module struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;column:course_id;not null;index" json:"course_id"`
	Title       string    `gorm:"column:title;not null;size:200" json:"title"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	Quizzes     []Quiz    `gorm:"foreignKey:ModuleID;references:ID;constraint:OnDelete:CASCADE" json:"quizzes,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Module) TableName() string { return "module" }

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
