package domain

import "github.com/yungbote/coursecatalog-backend/internal/domain/catalog"

type (
	Course               = catalog.Course
	CourseDetail         = catalog.CourseDetail
	Category             = catalog.Category
	CourseDetailCategory = catalog.CourseDetailCategory
	Suggestion           = catalog.Suggestion
	SuggestedCourse      = catalog.SuggestedCourse
	Module               = catalog.Module
	Quiz                 = catalog.Quiz
	Question             = catalog.Question
	Option               = catalog.Option
	QuestionOutcome      = catalog.QuestionOutcome
	QuizResult           = catalog.QuizResult
	Enrollment           = catalog.Enrollment
	Transition           = catalog.Transition
	WishlistEntry        = catalog.WishlistEntry
)

const (
	TransitionCreated     = catalog.TransitionCreated
	TransitionReactivated = catalog.TransitionReactivated
	TransitionUnchanged   = catalog.TransitionUnchanged
	TransitionActivated   = catalog.TransitionActivated
	TransitionDeactivated = catalog.TransitionDeactivated
)

// Models lists every persisted catalog model in migration order.
func Models() []any {
	return []any{
		&catalog.Course{},
		&catalog.CourseDetail{},
		&catalog.Category{},
		&catalog.CourseDetailCategory{},
		&catalog.Suggestion{},
		&catalog.Module{},
		&catalog.Quiz{},
		&catalog.Question{},
		&catalog.Option{},
		&catalog.Enrollment{},
		&catalog.WishlistEntry{},
	}
}
