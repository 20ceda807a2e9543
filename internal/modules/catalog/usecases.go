package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dataagg "github.com/yungbote/coursecatalog-backend/internal/data/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/data/repos"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/observability"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
	"github.com/yungbote/coursecatalog-backend/internal/platform/pagination"
)

const defaultCacheTTL = 60 * time.Second

// ListingCache stores rendered listing pages under a version. Readers resolve
// the version once with Version and use it for both Get and Set, so a page read
// before a Bump can only ever land under the version it was read at.
// Implementations treat every failure as a miss.
type ListingCache interface {
	Version(ctx context.Context) (int64, bool)
	Get(ctx context.Context, version int64, key string) ([]byte, bool)
	Set(ctx context.Context, version int64, key string, val []byte, ttl time.Duration)
	Bump(ctx context.Context)
}

type noopCache struct{}

func (noopCache) Version(context.Context) (int64, bool)                     { return 0, false }
func (noopCache) Get(context.Context, int64, string) ([]byte, bool)         { return nil, false }
func (noopCache) Set(context.Context, int64, string, []byte, time.Duration) {}
func (noopCache) Bump(context.Context)                                      {}

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	// Tx defaults to a gorm transaction runner over DB.
	Tx dataagg.TxRunner

	Courses     repos.CourseRepo
	Details     repos.CourseDetailRepo
	Categories  repos.CategoryRepo
	Suggestions repos.SuggestionRepo
	Modules     repos.ModuleRepo
	Quizzes     repos.QuizRepo
	Enrollments repos.EnrollmentRepo
	Wishlist    repos.WishlistRepo

	EnrollmentAgg domainagg.EnrollmentAggregate

	// Optional.
	Cache   ListingCache
	Metrics *observability.Metrics

	PageSize int
	CacheTTL time.Duration
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	deps.Log = deps.Log.With("module", "CatalogUsecases")
	if deps.Tx == nil {
		deps.Tx = dataagg.NewGormTxRunner(deps.DB)
	}
	if deps.Cache == nil {
		deps.Cache = noopCache{}
	}
	if deps.PageSize <= 0 {
		deps.PageSize = pagination.DefaultPageSize
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = defaultCacheTTL
	}
	return Usecases{deps: deps}
}

// Options are the optional parts of the default wiring.
type Options struct {
	Cache    ListingCache
	Metrics  *observability.Metrics
	PageSize int
	CacheTTL time.Duration
}

// NewFromRepos builds the usecases and their enrollment aggregate over an
// existing repo set.
func NewFromRepos(db *gorm.DB, log *logger.Logger, set repos.Set, opts Options) Usecases {
	if log == nil {
		log = logger.Nop()
	}
	return New(UsecasesDeps{
		DB:          db,
		Log:         log,
		Courses:     set.Course,
		Details:     set.CourseDetail,
		Categories:  set.Category,
		Suggestions: set.Suggestion,
		Modules:     set.Module,
		Quizzes:     set.Quiz,
		Enrollments: set.Enrollment,
		Wishlist:    set.Wishlist,
		EnrollmentAgg: dataagg.NewEnrollmentAggregate(dataagg.EnrollmentAggregateDeps{
			Base: dataagg.BaseDeps{
				DB:    db,
				Log:   log,
				Hooks: dataagg.NewObservabilityHooks(opts.Metrics),
			},
			Enrollments: set.Enrollment,
		}),
		Cache:    opts.Cache,
		Metrics:  opts.Metrics,
		PageSize: opts.PageSize,
		CacheTTL: opts.CacheTTL,
	})
}

// NewFromDB is NewFromRepos over a fresh repo set.
func NewFromDB(db *gorm.DB, log *logger.Logger, opts Options) Usecases {
	if log == nil {
		log = logger.Nop()
	}
	return NewFromRepos(db, log, repos.NewSet(db, log), opts)
}

func (u Usecases) PageSize() int { return u.deps.PageSize }

func (u Usecases) read(ctx context.Context) dbctx.Context {
	return dbctx.Context{Ctx: ctx}
}

// inTx runs fn in one transaction and maps whatever it returns into a coded error.
func (u Usecases) inTx(ctx context.Context, op string, fn func(dbc dbctx.Context) error) error {
	return dataagg.MapError(op, u.deps.Tx.InTx(ctx, fn))
}

func (u Usecases) courseBySlug(dbc dbctx.Context, op, courseSlug string) (*types.Course, error) {
	courseSlug = strings.TrimSpace(courseSlug)
	if courseSlug == "" {
		return nil, domainagg.NotFound(op, "course not found")
	}
	c, err := u.deps.Courses.GetBySlug(dbc, courseSlug)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if c == nil {
		return nil, domainagg.NotFound(op, "course not found")
	}
	return c, nil
}

func (u Usecases) courseByID(dbc dbctx.Context, op string, id uuid.UUID) (*types.Course, error) {
	if id == uuid.Nil {
		return nil, domainagg.NotFound(op, "course not found")
	}
	c, err := u.deps.Courses.GetByID(dbc, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if c == nil {
		return nil, domainagg.NotFound(op, "course not found")
	}
	return c, nil
}

func (u Usecases) categoryByID(dbc dbctx.Context, op string, id uuid.UUID) (*types.Category, error) {
	if id == uuid.Nil {
		return nil, domainagg.NotFound(op, "category not found")
	}
	c, err := u.deps.Categories.GetByID(dbc, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if c == nil {
		return nil, domainagg.NotFound(op, "category not found")
	}
	return c, nil
}

// invalidate drops every cached listing after a staff write has committed.
func (u Usecases) invalidate(ctx context.Context) {
	u.deps.Cache.Bump(ctx)
}
