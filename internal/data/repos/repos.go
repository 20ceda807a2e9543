package repos

import (
	"github.com/yungbote/coursecatalog-backend/internal/data/repos/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type CourseRepo = catalog.CourseRepo
type CourseDetailRepo = catalog.CourseDetailRepo
type CategoryRepo = catalog.CategoryRepo
type SuggestionRepo = catalog.SuggestionRepo
type ModuleRepo = catalog.ModuleRepo
type QuizRepo = catalog.QuizRepo
type EnrollmentRepo = catalog.EnrollmentRepo
type WishlistRepo = catalog.WishlistRepo

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return catalog.NewCourseRepo(db, baseLog)
}
func NewCourseDetailRepo(db *gorm.DB, baseLog *logger.Logger) CourseDetailRepo {
	return catalog.NewCourseDetailRepo(db, baseLog)
}
func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return catalog.NewCategoryRepo(db, baseLog)
}
func NewSuggestionRepo(db *gorm.DB, baseLog *logger.Logger) SuggestionRepo {
	return catalog.NewSuggestionRepo(db, baseLog)
}
func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return catalog.NewModuleRepo(db, baseLog)
}
func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return catalog.NewQuizRepo(db, baseLog)
}
func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return catalog.NewEnrollmentRepo(db, baseLog)
}
func NewWishlistRepo(db *gorm.DB, baseLog *logger.Logger) WishlistRepo {
	return catalog.NewWishlistRepo(db, baseLog)
}

// Set is every catalog table repo over one database handle.
type Set struct {
	Course       CourseRepo
	CourseDetail CourseDetailRepo
	Category     CategoryRepo
	Suggestion   SuggestionRepo
	Module       ModuleRepo
	Quiz         QuizRepo
	Enrollment   EnrollmentRepo
	Wishlist     WishlistRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Course:       NewCourseRepo(db, baseLog),
		CourseDetail: NewCourseDetailRepo(db, baseLog),
		Category:     NewCategoryRepo(db, baseLog),
		Suggestion:   NewSuggestionRepo(db, baseLog),
		Module:       NewModuleRepo(db, baseLog),
		Quiz:         NewQuizRepo(db, baseLog),
		Enrollment:   NewEnrollmentRepo(db, baseLog),
		Wishlist:     NewWishlistRepo(db, baseLog),
	}
}
