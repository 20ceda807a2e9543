package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultLanguage = "English"

type CourseDetail struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;column:course_id;not null;uniqueIndex" json:"course_id"`

	Instructor       string `gorm:"column:instructor;size:200" json:"instructor"`
	InstructorBio    string `gorm:"column:instructor_bio;type:text" json:"instructor_bio,omitempty"`
	ShortDescription string `gorm:"column:short_description;type:text" json:"short_description,omitempty"`

	// Line lists are stored in order, one trimmed non-empty item per entry.
	Overview     datatypes.JSONSlice[string] `gorm:"column:overview" json:"overview"`
	Outcomes     datatypes.JSONSlice[string] `gorm:"column:outcomes" json:"outcomes"`
	Skills       datatypes.JSONSlice[string] `gorm:"column:skills" json:"skills"`
	Tools        datatypes.JSONSlice[string] `gorm:"column:tools" json:"tools"`
	Requirements datatypes.JSONSlice[string] `gorm:"column:requirements" json:"requirements"`

	Language           string     `gorm:"column:language;not null;size:50" json:"language"`
	Certificate        string     `gorm:"column:certificate;size:200" json:"certificate,omitempty"`
	LanguagesAvailable string     `gorm:"column:languages_available;size:200" json:"languages_available,omitempty"`
	LastUpdated        *time.Time `gorm:"column:last_updated" json:"last_updated,omitempty"`
	ExercisesCount     int        `gorm:"column:exercises_count;not null" json:"exercises_count"`

	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CourseDetail) TableName() string { return "course_detail" }

func (d *CourseDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Language == "" {
		d.Language = DefaultLanguage
	}
	d.Normalize()
	return nil
}

func (d *CourseDetail) BeforeSave(tx *gorm.DB) error {
	d.Normalize()
	return nil
}

// Normalize trims every line list down to its non-empty entries.
func (d *CourseDetail) Normalize() {
	d.Overview = NormalizeLines(d.Overview)
	d.Outcomes = NormalizeLines(d.Outcomes)
	d.Skills = NormalizeLines(d.Skills)
	d.Tools = NormalizeLines(d.Tools)
	d.Requirements = NormalizeLines(d.Requirements)
}
