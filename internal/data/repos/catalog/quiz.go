package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type QuizRepo interface {
	Create(dbc dbctx.Context, q *types.Quiz) error
	// GetByID loads the quiz with questions and options in position order.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Quiz, error)
	GetByModuleAndTitle(dbc dbctx.Context, moduleID uuid.UUID, title string) (*types.Quiz, error)

	// CreateQuestion inserts the question together with its options.
	CreateQuestion(dbc dbctx.Context, q *types.Question) error
	NextQuestionPosition(dbc dbctx.Context, quizID uuid.UUID) (int, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func (r *quizRepo) Create(dbc dbctx.Context, q *types.Quiz) error {
	if q == nil {
		return nil
	}
	return dbc.DB(r.db).Create(q).Error
}

func (r *quizRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Quiz, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Quiz
	if err := dbc.DB(r.db).
		Preload("Questions", byPosition).
		Preload("Questions.Options", byPosition).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *quizRepo) GetByModuleAndTitle(dbc dbctx.Context, moduleID uuid.UUID, title string) (*types.Quiz, error) {
	if moduleID == uuid.Nil || title == "" {
		return nil, nil
	}
	var out types.Quiz
	if err := dbc.DB(r.db).
		Where("module_id = ? AND title = ?", moduleID, title).
		Order("created_at ASC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *quizRepo) CreateQuestion(dbc dbctx.Context, q *types.Question) error {
	if q == nil {
		return nil
	}
	return dbc.DB(r.db).Create(q).Error
}

func (r *quizRepo) NextQuestionPosition(dbc dbctx.Context, quizID uuid.UUID) (int, error) {
	var maxPos int
	if err := dbc.DB(r.db).
		Model(&types.Question{}).
		Where("quiz_id = ?", quizID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPos).Error; err != nil {
		return 0, err
	}
	return maxPos + 1, nil
}
