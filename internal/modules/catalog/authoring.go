package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	domaincatalog "github.com/yungbote/coursecatalog-backend/internal/domain/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/validate"
)

type CreateCourseInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Duration    string          `json:"duration" validate:"max=100"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	Slug        string          `json:"slug" validate:"omitempty,slug"`
	StartDate   *time.Time      `json:"start_date"`
}

type CourseDetailInput struct {
	Instructor         string     `json:"instructor" validate:"max=200"`
	InstructorBio      string     `json:"instructor_bio"`
	ShortDescription   string     `json:"short_description"`
	Overview           []string   `json:"overview"`
	Outcomes           []string   `json:"outcomes"`
	Skills             []string   `json:"skills"`
	Tools              []string   `json:"tools"`
	Requirements       []string   `json:"requirements"`
	Language           string     `json:"language" validate:"max=50"`
	Certificate        string     `json:"certificate" validate:"max=200"`
	LanguagesAvailable string     `json:"languages_available" validate:"max=200"`
	LastUpdated        *time.Time `json:"last_updated"`
	ExercisesCount     int        `json:"exercises_count" validate:"gte=0"`
}

type CreateModuleInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
}

type OptionInput struct {
	Text      string `json:"text" validate:"required,max=200"`
	IsCorrect bool   `json:"is_correct"`
}

// CreateQuestionInput needs at least one option. How many options are flagged
// correct is up to the author.
type CreateQuestionInput struct {
	Text    string        `json:"text" validate:"required"`
	Options []OptionInput `json:"options" validate:"required,min=1,dive"`
}

func invalidInput(op string, err error) error {
	return domainagg.NewError(domainagg.CodeInvalidInput, op, err.Error(), err)
}

func (u Usecases) CreateCourse(ctx context.Context, in CreateCourseInput) (*types.Course, error) {
	const op = "Catalog.Authoring.CreateCourse"
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if err := validate.Struct(in); err != nil {
		return nil, invalidInput(op, err)
	}
	row := &types.Course{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Duration:    strings.TrimSpace(in.Duration),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Slug:        in.Slug,
		StartDate:   in.StartDate,
	}
	if row.Slug == "" {
		row.Slug = domaincatalog.CourseSlug(row.Title, row.ID)
	}
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		taken, err := u.deps.Courses.SlugExists(dbc, row.Slug)
		if err != nil {
			return err
		}
		if taken {
			return domainagg.Conflict(op, "course slug already exists")
		}
		return u.deps.Courses.Create(dbc, row)
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return row, nil
}

// UpsertCourseDetail creates the course's detail or replaces its fields.
func (u Usecases) UpsertCourseDetail(ctx context.Context, courseID uuid.UUID, in CourseDetailInput) (*types.CourseDetail, error) {
	const op = "Catalog.Authoring.UpsertCourseDetail"
	if err := validate.Struct(in); err != nil {
		return nil, invalidInput(op, err)
	}
	row := &types.CourseDetail{
		CourseID:           courseID,
		Instructor:         strings.TrimSpace(in.Instructor),
		InstructorBio:      in.InstructorBio,
		ShortDescription:   in.ShortDescription,
		Overview:           domaincatalog.NormalizeLines(in.Overview),
		Outcomes:           domaincatalog.NormalizeLines(in.Outcomes),
		Skills:             domaincatalog.NormalizeLines(in.Skills),
		Tools:              domaincatalog.NormalizeLines(in.Tools),
		Requirements:       domaincatalog.NormalizeLines(in.Requirements),
		Language:           strings.TrimSpace(in.Language),
		Certificate:        strings.TrimSpace(in.Certificate),
		LanguagesAvailable: strings.TrimSpace(in.LanguagesAvailable),
		LastUpdated:        in.LastUpdated,
		ExercisesCount:     in.ExercisesCount,
	}
	if row.Language == "" {
		row.Language = domaincatalog.DefaultLanguage
	}
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		if _, err := u.courseByID(dbc, op, courseID); err != nil {
			return err
		}
		return u.deps.Details.Upsert(dbc, row)
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return row, nil
}

func (u Usecases) CreateModule(ctx context.Context, courseID uuid.UUID, in CreateModuleInput) (*types.Module, error) {
	const op = "Catalog.Authoring.CreateModule"
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, invalidInput(op, err)
	}
	row := &types.Module{CourseID: courseID, Title: in.Title, Description: in.Description}
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		if _, err := u.courseByID(dbc, op, courseID); err != nil {
			return err
		}
		return u.deps.Modules.Create(dbc, row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (u Usecases) CreateQuiz(ctx context.Context, moduleID uuid.UUID, title string) (*types.Quiz, error) {
	const op = "Catalog.Authoring.CreateQuiz"
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domainagg.InvalidInput(op, "title is required")
	}
	row := &types.Quiz{ModuleID: moduleID, Title: title}
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		m, err := u.deps.Modules.GetByID(dbc, moduleID)
		if err != nil {
			return err
		}
		if m == nil {
			return domainagg.NotFound(op, "module not found")
		}
		return u.deps.Quizzes.Create(dbc, row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// CreateQuestion appends a question to the quiz. Options keep their input order.
func (u Usecases) CreateQuestion(ctx context.Context, quizID uuid.UUID, in CreateQuestionInput) (*types.Question, error) {
	const op = "Catalog.Authoring.CreateQuestion"
	in.Text = strings.TrimSpace(in.Text)
	for i := range in.Options {
		in.Options[i].Text = strings.TrimSpace(in.Options[i].Text)
	}
	if len(in.Options) == 0 {
		return nil, domainagg.InvalidInput(op, "a question needs at least one option")
	}
	if err := validate.Struct(in); err != nil {
		return nil, invalidInput(op, err)
	}
	row := &types.Question{QuizID: quizID, Text: in.Text}
	for i, o := range in.Options {
		row.Options = append(row.Options, types.Option{Text: o.Text, IsCorrect: o.IsCorrect, Position: i})
	}
	err := u.inTx(ctx, op, func(dbc dbctx.Context) error {
		q, err := u.deps.Quizzes.GetByID(dbc, quizID)
		if err != nil {
			return err
		}
		if q == nil {
			return domainagg.NotFound(op, "quiz not found")
		}
		if row.Position, err = u.deps.Quizzes.NextQuestionPosition(dbc, quizID); err != nil {
			return err
		}
		return u.deps.Quizzes.CreateQuestion(dbc, row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}
