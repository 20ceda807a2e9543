package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/coursecatalog-backend/internal/platform/slug"
	"gorm.io/gorm"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null;size:100;uniqueIndex" json:"name"`
	// Slug is fixed at creation; renaming a category keeps its slug.
	Slug      string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Category) TableName() string { return "category" }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}

// CourseDetailCategory links a course detail to a category.
type CourseDetailCategory struct {
	CourseDetailID uuid.UUID `gorm:"type:uuid;column:course_detail_id;primaryKey" json:"course_detail_id"`
	CategoryID     uuid.UUID `gorm:"type:uuid;column:category_id;primaryKey;index" json:"category_id"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (CourseDetailCategory) TableName() string { return "course_detail_category" }
