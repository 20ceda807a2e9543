package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID  uuid.UUID  `gorm:"type:uuid;column:module_id;not null;index" json:"module_id"`
	Title     string     `gorm:"column:title;not null;size:200" json:"title"`
	Questions []Question `gorm:"foreignKey:QuizID;references:ID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (Quiz) TableName() string { return "quiz" }

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type Question struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID   uuid.UUID `gorm:"type:uuid;column:quiz_id;not null;index" json:"quiz_id"`
	Text     string    `gorm:"column:text;type:text;not null" json:"text"`
	Position int       `gorm:"column:position;not null;default:0" json:"position"`
	Options  []Option  `gorm:"foreignKey:QuestionID;references:ID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (Question) TableName() string { return "question" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Option is an answer choice. IsCorrect never leaves the service in end-user payloads.
type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;column:question_id;not null;index" json:"question_id"`
	Text       string    `gorm:"column:text;not null;size:200" json:"text"`
	IsCorrect  bool      `gorm:"column:is_correct;not null;default:false" json:"-"`
	Position   int       `gorm:"column:position;not null;default:0" json:"position"`
}

func (Option) TableName() string { return "quiz_option" }

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// QuestionOutcome is the per-question breakdown of a graded submission.
type QuestionOutcome struct {
	QuestionID       uuid.UUID  `json:"question_id"`
	SelectedOptionID *uuid.UUID `json:"selected_option_id"`
	IsCorrect        bool       `json:"is_correct"`
}

// QuizResult is the outcome of grading one submission. It is never persisted.
type QuizResult struct {
	QuizID  uuid.UUID                `json:"quiz_id"`
	Total   int                      `json:"total"`
	Correct int                      `json:"correct"`
	Score   int                      `json:"score"`
	Answers map[uuid.UUID]*uuid.UUID `json:"answers"`
	Details []QuestionOutcome        `json:"details"`
}
