package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yungbote/coursecatalog-backend/internal/platform/slug"
	"gorm.io/gorm"
)

type Course struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string          `gorm:"column:title;not null;size:200" json:"title"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Duration    string          `gorm:"column:duration;size:100" json:"duration,omitempty"`
	ImageURL    string          `gorm:"column:image_url" json:"image_url,omitempty"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	StartDate   *time.Time      `gorm:"column:start_date" json:"start_date,omitempty"`

	// Optional one-to-one references. Presence is tested with != nil.
	Detail     *CourseDetail `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE" json:"detail,omitempty"`
	Suggestion *Suggestion   `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE" json:"suggestion,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Slug == "" {
		c.Slug = CourseSlug(c.Title, c.ID)
	}
	return nil
}

// CourseSlug derives the storage slug for a course title. Titles that slugify
// to nothing fall back to a stable id-based slug.
func CourseSlug(title string, id uuid.UUID) string {
	if s := slug.Make(title); s != "" {
		return s
	}
	return "course-" + id.String()[:8]
}
