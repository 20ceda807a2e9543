package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	domaincatalog "github.com/yungbote/coursecatalog-backend/internal/domain/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/slug"
)

const seedOp = "Catalog.Seed"

// SeedFile is the YAML fixture format read by cmd/seed. Detail text blocks hold
// one item per line.
type SeedFile struct {
	Categories []string     `yaml:"categories"`
	Courses    []SeedCourse `yaml:"courses"`
}

type SeedCourse struct {
	Title       string          `yaml:"title"`
	Slug        string          `yaml:"slug"`
	Description string          `yaml:"description"`
	Price       string          `yaml:"price"`
	Duration    string          `yaml:"duration"`
	ImageURL    string          `yaml:"image_url"`
	StartDate   string          `yaml:"start_date"`
	Categories  []string        `yaml:"categories"`
	Suggested   *SeedSuggestion `yaml:"suggested"`
	Detail      *SeedDetail     `yaml:"detail"`
	Modules     []SeedModule    `yaml:"modules"`
}

type SeedSuggestion struct {
	Order int `yaml:"order"`
}

type SeedDetail struct {
	Instructor         string `yaml:"instructor"`
	InstructorBio      string `yaml:"instructor_bio"`
	ShortDescription   string `yaml:"short_description"`
	Overview           string `yaml:"overview"`
	Outcomes           string `yaml:"outcomes"`
	Skills             string `yaml:"skills"`
	Tools              string `yaml:"tools"`
	Requirements       string `yaml:"requirements"`
	Language           string `yaml:"language"`
	Certificate        string `yaml:"certificate"`
	LanguagesAvailable string `yaml:"languages_available"`
	LastUpdated        string `yaml:"last_updated"`
	ExercisesCount     int    `yaml:"exercises_count"`
}

type SeedModule struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Quizzes     []SeedQuiz `yaml:"quizzes"`
}

type SeedQuiz struct {
	Title     string         `yaml:"title"`
	Questions []SeedQuestion `yaml:"questions"`
}

type SeedQuestion struct {
	Text    string       `yaml:"text"`
	Options []SeedOption `yaml:"options"`
}

type SeedOption struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// SeedReport counts what an import created and what it found already present.
type SeedReport struct {
	CategoriesCreated int `json:"categories_created"`
	CoursesCreated    int `json:"courses_created"`
	CoursesReused     int `json:"courses_reused"`
	ModulesCreated    int `json:"modules_created"`
	QuizzesCreated    int `json:"quizzes_created"`
	QuestionsCreated  int `json:"questions_created"`
	LinksCreated      int `json:"links_created"`
}

func ParseSeed(r io.Reader) (SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return SeedFile{}, nil
		}
		return SeedFile{}, domainagg.NewError(domainagg.CodeInvalidInput, seedOp, "invalid seed file", err)
	}
	return f, nil
}

// ImportSeed loads the fixture through the authoring operations. Categories are
// matched by name and courses by slug, so running it twice creates nothing new.
// Questions are only added to quizzes the import itself created.
func (u Usecases) ImportSeed(ctx context.Context, f SeedFile) (SeedReport, error) {
	var rep SeedReport
	categories := map[string]*types.Category{}

	names := append([]string{}, f.Categories...)
	for _, c := range f.Courses {
		names = append(names, c.Categories...)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || categories[name] != nil {
			continue
		}
		cat, created, err := u.ensureCategory(ctx, name)
		if err != nil {
			return rep, fmt.Errorf("category %q: %w", name, err)
		}
		if created {
			rep.CategoriesCreated++
		}
		categories[name] = cat
	}

	for _, sc := range f.Courses {
		if err := u.importCourse(ctx, sc, categories, &rep); err != nil {
			return rep, fmt.Errorf("course %q: %w", sc.Title, err)
		}
	}
	u.deps.Log.Info("catalog seed imported",
		"categories_created", rep.CategoriesCreated,
		"courses_created", rep.CoursesCreated,
		"courses_reused", rep.CoursesReused,
		"questions_created", rep.QuestionsCreated,
	)
	return rep, nil
}

func (u Usecases) ensureCategory(ctx context.Context, name string) (*types.Category, bool, error) {
	dbc := u.read(ctx)
	existing, err := u.deps.Categories.GetByName(dbc, name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		if s := slug.Make(name); s != "" {
			if existing, err = u.deps.Categories.GetBySlug(dbc, s); err != nil {
				return nil, false, err
			}
		}
	}
	if existing != nil {
		return existing, false, nil
	}
	cat, err := u.CreateCategory(ctx, CreateCategoryInput{Name: name})
	if err != nil {
		return nil, false, err
	}
	return cat, true, nil
}

func (u Usecases) importCourse(ctx context.Context, sc SeedCourse, categories map[string]*types.Category, rep *SeedReport) error {
	courseSlug := strings.TrimSpace(sc.Slug)
	if courseSlug == "" {
		courseSlug = slug.Make(sc.Title)
	}
	if courseSlug == "" {
		return domainagg.InvalidInput(seedOp, "course needs a slug")
	}

	course, err := u.deps.Courses.GetBySlug(u.read(ctx), courseSlug)
	if err != nil {
		return err
	}
	if course != nil {
		rep.CoursesReused++
	} else {
		in, err := sc.courseInput(courseSlug)
		if err != nil {
			return err
		}
		if course, err = u.CreateCourse(ctx, in); err != nil {
			return err
		}
		rep.CoursesCreated++
	}

	if sc.Detail != nil {
		in, err := sc.Detail.detailInput()
		if err != nil {
			return err
		}
		if _, err := u.UpsertCourseDetail(ctx, course.ID, in); err != nil {
			return err
		}
	}
	for _, name := range sc.Categories {
		cat := categories[strings.TrimSpace(name)]
		if cat == nil {
			continue
		}
		attached, err := u.AttachCategory(ctx, cat.ID, course.ID)
		if err != nil {
			return err
		}
		if attached {
			rep.LinksCreated++
		}
	}
	if sc.Suggested != nil {
		existing, err := u.deps.Suggestions.GetByCourseID(u.read(ctx), course.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			if _, err := u.CreateSuggestion(ctx, course.ID, sc.Suggested.Order); err != nil {
				return err
			}
		}
	}
	for _, sm := range sc.Modules {
		if err := u.importModule(ctx, course.ID, sm, rep); err != nil {
			return fmt.Errorf("module %q: %w", sm.Title, err)
		}
	}
	return nil
}

func (u Usecases) importModule(ctx context.Context, courseID uuid.UUID, sm SeedModule, rep *SeedReport) error {
	title := strings.TrimSpace(sm.Title)
	module, err := u.deps.Modules.GetByCourseAndTitle(u.read(ctx), courseID, title)
	if err != nil {
		return err
	}
	if module == nil {
		in := CreateModuleInput{Title: title}
		if d := strings.TrimSpace(sm.Description); d != "" {
			in.Description = &d
		}
		if module, err = u.CreateModule(ctx, courseID, in); err != nil {
			return err
		}
		rep.ModulesCreated++
	}
	for _, sq := range sm.Quizzes {
		quizTitle := strings.TrimSpace(sq.Title)
		quiz, err := u.deps.Quizzes.GetByModuleAndTitle(u.read(ctx), module.ID, quizTitle)
		if err != nil {
			return err
		}
		if quiz != nil {
			continue
		}
		if quiz, err = u.CreateQuiz(ctx, module.ID, quizTitle); err != nil {
			return err
		}
		rep.QuizzesCreated++
		for _, q := range sq.Questions {
			in := CreateQuestionInput{Text: q.Text}
			for _, o := range q.Options {
				in.Options = append(in.Options, OptionInput{Text: o.Text, IsCorrect: o.Correct})
			}
			if _, err := u.CreateQuestion(ctx, quiz.ID, in); err != nil {
				return err
			}
			rep.QuestionsCreated++
		}
	}
	return nil
}

func (sc SeedCourse) courseInput(courseSlug string) (CreateCourseInput, error) {
	in := CreateCourseInput{
		Title:       sc.Title,
		Description: strings.TrimSpace(sc.Description),
		Duration:    sc.Duration,
		ImageURL:    sc.ImageURL,
		Slug:        courseSlug,
	}
	if raw := strings.TrimSpace(sc.Price); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return in, domainagg.NewError(domainagg.CodeInvalidInput, seedOp, "price is not a decimal", err)
		}
		in.Price = price
	}
	start, err := parseSeedDate(sc.StartDate)
	if err != nil {
		return in, err
	}
	in.StartDate = start
	return in, nil
}

func (d SeedDetail) detailInput() (CourseDetailInput, error) {
	lastUpdated, err := parseSeedDate(d.LastUpdated)
	if err != nil {
		return CourseDetailInput{}, err
	}
	return CourseDetailInput{
		Instructor:         d.Instructor,
		InstructorBio:      strings.TrimSpace(d.InstructorBio),
		ShortDescription:   strings.TrimSpace(d.ShortDescription),
		Overview:           domaincatalog.ParseLines(d.Overview),
		Outcomes:           domaincatalog.ParseLines(d.Outcomes),
		Skills:             domaincatalog.ParseLines(d.Skills),
		Tools:              domaincatalog.ParseLines(d.Tools),
		Requirements:       domaincatalog.ParseLines(d.Requirements),
		Language:           d.Language,
		Certificate:        d.Certificate,
		LanguagesAvailable: d.LanguagesAvailable,
		LastUpdated:        lastUpdated,
		ExercisesCount:     d.ExercisesCount,
	}, nil
}

func parseSeedDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domainagg.InvalidInput(seedOp, "unrecognised date "+raw)
}
