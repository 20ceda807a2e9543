package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	dataagg "github.com/yungbote/coursecatalog-backend/internal/data/aggregates"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	domaincatalog "github.com/yungbote/coursecatalog-backend/internal/domain/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/pagination"
)

// CourseListItem is a course as shown in a listing.
type CourseListItem struct {
	*types.Course
	Suggested bool `json:"suggested"`
}

type CoursePage struct {
	Items []CourseListItem `json:"items"`
	Meta  pagination.Meta  `json:"meta"`
}

type CategoryCoursePage struct {
	Category types.Category   `json:"category"`
	Items    []CourseListItem `json:"items"`
	Meta     pagination.Meta  `json:"meta"`
}

// CourseOverview is the course page: the course, its modules and the caller's relation to it.
type CourseOverview struct {
	Course     *types.Course     `json:"course"`
	Modules    []*types.Module   `json:"modules"`
	Categories []*types.Category `json:"categories"`
	Suggested  bool              `json:"suggested"`
	Enrolled   bool              `json:"enrolled"`
	Wishlisted bool              `json:"wishlisted"`
}

type pageQuery struct {
	count func(dbc dbctx.Context) (int64, error)
	list  func(dbc dbctx.Context, offset, limit int) ([]*types.Course, error)
}

// ListRegularCourses returns one page of courses without a suggestion, oldest first.
func (u Usecases) ListRegularCourses(ctx context.Context, page int) (CoursePage, error) {
	const op = "Catalog.ListRegularCourses"
	key := func(p int) string {
		return fmt.Sprintf("courses:regular:size=%d:page=%d", u.deps.PageSize, p)
	}
	view := u.viewCache(ctx)
	var out CoursePage
	if u.cached(ctx, view, key(page), &out) {
		return out, nil
	}
	items, meta, err := u.paginate(ctx, page, pageQuery{
		count: u.deps.Courses.CountRegular,
		list:  u.deps.Courses.ListRegular,
	})
	if err != nil {
		return CoursePage{}, dataagg.MapError(op, err)
	}
	out = CoursePage{Items: items, Meta: meta}
	u.store(ctx, view, key(meta.Page), out)
	return out, nil
}

// ListCoursesByCategory pages the courses whose detail is linked to the category.
func (u Usecases) ListCoursesByCategory(ctx context.Context, categorySlug string, page int) (CategoryCoursePage, error) {
	const op = "Catalog.ListCoursesByCategory"
	categorySlug = strings.TrimSpace(categorySlug)
	cat, err := u.deps.Categories.GetBySlug(u.read(ctx), categorySlug)
	if err != nil {
		return CategoryCoursePage{}, dataagg.MapError(op, err)
	}
	if cat == nil {
		return CategoryCoursePage{}, domainagg.NotFound(op, "category not found")
	}

	key := func(p int) string {
		return fmt.Sprintf("courses:category=%s:size=%d:page=%d", cat.ID, u.deps.PageSize, p)
	}
	view := u.viewCache(ctx)
	var out CategoryCoursePage
	if u.cached(ctx, view, key(page), &out) {
		return out, nil
	}
	items, meta, err := u.paginate(ctx, page, pageQuery{
		count: func(dbc dbctx.Context) (int64, error) {
			return u.deps.Courses.CountByCategory(dbc, cat.ID)
		},
		list: func(dbc dbctx.Context, offset, limit int) ([]*types.Course, error) {
			return u.deps.Courses.ListByCategory(dbc, cat.ID, offset, limit)
		},
	})
	if err != nil {
		return CategoryCoursePage{}, dataagg.MapError(op, err)
	}
	out = CategoryCoursePage{Category: *cat, Items: items, Meta: meta}
	u.store(ctx, view, key(meta.Page), out)
	return out, nil
}

// paginate runs the count and the requested page concurrently. A page past
// the end is re-read as the last page once the count is known.
func (u Usecases) paginate(ctx context.Context, page int, q pageQuery) ([]CourseListItem, pagination.Meta, error) {
	size := u.deps.PageSize
	if page < 1 {
		page = 1
	}
	var (
		total int64
		rows  []*types.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := q.count(u.read(gctx))
		total = n
		return err
	})
	g.Go(func() error {
		list, err := q.list(u.read(gctx), pagination.Offset(page, size), size)
		rows = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, pagination.Meta{}, err
	}

	resolved := pagination.Clamp(page, total, size)
	if resolved != page {
		list, err := q.list(u.read(ctx), pagination.Offset(resolved, size), size)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
		rows = list
	}
	return listItems(rows), pagination.NewMeta(resolved, size, total), nil
}

func listItems(rows []*types.Course) []CourseListItem {
	out := make([]CourseListItem, 0, len(rows))
	for _, c := range rows {
		if c == nil {
			continue
		}
		out = append(out, CourseListItem{Course: c, Suggested: domaincatalog.IsSuggested(c)})
	}
	return out
}

// ListSuggestedCourses returns every suggested course with its suggestion, in suggestion order.
func (u Usecases) ListSuggestedCourses(ctx context.Context) ([]types.SuggestedCourse, error) {
	const op = "Catalog.ListSuggestedCourses"
	const key = "courses:suggested"
	view := u.viewCache(ctx)
	var out []types.SuggestedCourse
	if u.cached(ctx, view, key, &out) {
		return out, nil
	}
	rows, err := u.deps.Courses.ListSuggested(u.read(ctx))
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	out = make([]types.SuggestedCourse, 0, len(rows))
	for _, c := range rows {
		if !domaincatalog.IsSuggested(c) {
			continue
		}
		s := *c.Suggestion
		course := *c
		course.Suggestion = nil
		out = append(out, types.SuggestedCourse{Course: course, Suggestion: s})
	}
	u.store(ctx, view, key, out)
	return out, nil
}

func (u Usecases) GetCourseBySlug(ctx context.Context, courseSlug string) (*types.Course, error) {
	return u.courseBySlug(u.read(ctx), "Catalog.GetCourseBySlug", courseSlug)
}

// GetCourseOverview loads the course page. userID may be uuid.Nil for anonymous callers.
func (u Usecases) GetCourseOverview(ctx context.Context, userID uuid.UUID, courseSlug string) (CourseOverview, error) {
	const op = "Catalog.GetCourseOverview"
	dbc := u.read(ctx)
	course, err := u.courseBySlug(dbc, op, courseSlug)
	if err != nil {
		return CourseOverview{}, err
	}
	modules, err := u.deps.Modules.ListByCourseID(dbc, course.ID)
	if err != nil {
		return CourseOverview{}, dataagg.MapError(op, err)
	}
	out := CourseOverview{
		Course:     course,
		Modules:    modules,
		Categories: []*types.Category{},
		Suggested:  domaincatalog.IsSuggested(course),
	}
	if domaincatalog.HasDetail(course) {
		cats, err := u.deps.Categories.ListByCourseDetailID(dbc, course.Detail.ID)
		if err != nil {
			return CourseOverview{}, dataagg.MapError(op, err)
		}
		out.Categories = cats
	}
	if userID == uuid.Nil {
		return out, nil
	}
	if out.Enrolled, err = u.deps.Enrollments.IsActive(dbc, userID, course.ID); err != nil {
		return CourseOverview{}, dataagg.MapError(op, err)
	}
	if out.Wishlisted, err = u.deps.Wishlist.Exists(dbc, userID, course.ID); err != nil {
		return CourseOverview{}, dataagg.MapError(op, err)
	}
	return out, nil
}

// ListModules returns the modules of a course with their quizzes.
func (u Usecases) ListModules(ctx context.Context, courseSlug string) ([]*types.Module, error) {
	const op = "Catalog.ListModules"
	dbc := u.read(ctx)
	course, err := u.courseBySlug(dbc, op, courseSlug)
	if err != nil {
		return nil, err
	}
	modules, err := u.deps.Modules.ListByCourseID(dbc, course.ID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return modules, nil
}

func (u Usecases) ListCategories(ctx context.Context) ([]*types.Category, error) {
	rows, err := u.deps.Categories.List(u.read(ctx))
	if err != nil {
		return nil, dataagg.MapError("Catalog.ListCategories", err)
	}
	return rows, nil
}

// cacheView pins the cache version for one read. The page is stored under the
// version it was read at, so a Bump landing mid-read can't resurrect it.
type cacheView struct {
	version int64
	ok      bool
}

func (u Usecases) viewCache(ctx context.Context) cacheView {
	v, ok := u.deps.Cache.Version(ctx)
	return cacheView{version: v, ok: ok}
}

func (u Usecases) cached(ctx context.Context, view cacheView, key string, dst any) bool {
	if !view.ok {
		return false
	}
	raw, ok := u.deps.Cache.Get(ctx, view.version, key)
	if ok {
		if err := json.Unmarshal(raw, dst); err != nil {
			u.deps.Log.Warn("listing cache payload unreadable", "key", key, "error", err)
			ok = false
		}
	}
	u.deps.Metrics.IncCacheLookup(ok)
	return ok
}

func (u Usecases) store(ctx context.Context, view cacheView, key string, val any) {
	if !view.ok {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		u.deps.Log.Warn("listing cache encode failed", "key", key, "error", err)
		return
	}
	u.deps.Cache.Set(ctx, view.version, key, raw, u.deps.CacheTTL)
}
