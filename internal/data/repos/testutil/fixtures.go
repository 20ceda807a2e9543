package testutil

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"gorm.io/gorm"
)

var seedClock atomic.Int64

// nextCreatedAt hands out strictly increasing timestamps so listing order
// in tests never depends on clock resolution.
func nextCreatedAt() time.Time {
	n := seedClock.Add(1)
	return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute)
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:          uuid.New(),
		Title:       title,
		Description: title + " description",
		Price:       decimal.RequireFromString("49.99"),
		Duration:    "6 weeks",
		CreatedAt:   nextCreatedAt(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedCourseDetail(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID) *types.CourseDetail {
	tb.Helper()
	d := &types.CourseDetail{
		ID:         uuid.New(),
		CourseID:   courseID,
		Instructor: "Ada Lovelace",
		Overview:   []string{"Overview line"},
		Outcomes:   []string{"Outcome one", "Outcome two"},
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed course detail: %v", err)
	}
	return d
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Category {
	tb.Helper()
	c := &types.Category{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedCategoryLink(tb testing.TB, ctx context.Context, tx *gorm.DB, categoryID, detailID uuid.UUID) {
	tb.Helper()
	link := &types.CourseDetailCategory{CourseDetailID: detailID, CategoryID: categoryID}
	if err := tx.WithContext(ctx).Create(link).Error; err != nil {
		tb.Fatalf("seed category link: %v", err)
	}
}

func SeedSuggestion(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int) *types.Suggestion {
	tb.Helper()
	s := &types.Suggestion{ID: uuid.New(), CourseID: courseID, Order: order, CreatedAt: nextCreatedAt()}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed suggestion: %v", err)
	}
	return s
}

func SeedModule(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, title string) *types.Module {
	tb.Helper()
	m := &types.Module{ID: uuid.New(), CourseID: courseID, Title: title, CreatedAt: nextCreatedAt()}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	return m
}

func SeedQuiz(tb testing.TB, ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, title string) *types.Quiz {
	tb.Helper()
	q := &types.Quiz{ID: uuid.New(), ModuleID: moduleID, Title: title, CreatedAt: nextCreatedAt()}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return q
}

// SeedQuestion creates a question whose options are flagged correct per the
// correct slice; len(correct) is the option count.
func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, quizID uuid.UUID, position int, correct ...bool) *types.Question {
	tb.Helper()
	q := &types.Question{ID: uuid.New(), QuizID: quizID, Text: "Question", Position: position}
	for i, ok := range correct {
		q.Options = append(q.Options, types.Option{
			ID:        uuid.New(),
			Text:      "Option",
			IsCorrect: ok,
			Position:  i,
		})
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}
