package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
)

const seedYAML = `
categories:
  - Programming
courses:
  - title: Go Fundamentals
    description: Learn Go.
    price: "49.99"
    duration: 6 weeks
    start_date: "2024-03-01"
    categories: [Programming, Backend]
    detail:
      instructor: Rob
      overview: |
        Types and values

        Concurrency
      skills: |
        Go
    modules:
      - title: Basics
        quizzes:
          - title: Basics Check
            questions:
              - text: What is a goroutine?
                options:
                  - text: A lightweight thread
                    correct: true
                  - text: A package
  - title: Staff Pick
    price: "0"
    suggested:
      order: 2
`

func TestImportSeed_IsIdempotent(t *testing.T) {
	uc, _ := newTestUsecases(t)
	ctx := context.Background()

	f, err := ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, f.Courses, 2)

	rep, err := uc.ImportSeed(ctx, f)
	require.NoError(t, err)
	require.Equal(t, SeedReport{
		CategoriesCreated: 2,
		CoursesCreated:    2,
		ModulesCreated:    1,
		QuizzesCreated:    1,
		QuestionsCreated:  1,
		LinksCreated:      2,
	}, rep)

	again, err := uc.ImportSeed(ctx, f)
	require.NoError(t, err)
	require.Equal(t, SeedReport{CoursesReused: 2}, again)

	course, err := uc.GetCourseBySlug(ctx, "go-fundamentals")
	require.NoError(t, err)
	require.NotNil(t, course.Detail)
	require.Equal(t, []string{"Types and values", "Concurrency"}, []string(course.Detail.Overview))
	require.NotNil(t, course.StartDate)
	require.Equal(t, "2024-03-01", course.StartDate.Format("2006-01-02"))

	page, err := uc.ListCoursesByCategory(ctx, "backend", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	suggested, err := uc.ListSuggestedCourses(ctx)
	require.NoError(t, err)
	require.Len(t, suggested, 1)
	require.Equal(t, "staff-pick", suggested[0].Course.Slug)
	require.Equal(t, 2, suggested[0].Suggestion.Order)
}

func TestParseSeed_RejectsUnknownFields(t *testing.T) {
	_, err := ParseSeed(strings.NewReader("courses:\n  - title: X\n    colour: red\n"))
	requireCode(t, err, domainagg.CodeInvalidInput)
}

func TestImportSeed_BadPrice(t *testing.T) {
	uc, _ := newTestUsecases(t)
	_, err := uc.ImportSeed(context.Background(), SeedFile{Courses: []SeedCourse{{Title: "Pricey", Price: "lots"}}})
	requireCode(t, err, domainagg.CodeInvalidInput)
}
