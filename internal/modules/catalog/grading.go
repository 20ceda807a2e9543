package catalog

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	dataagg "github.com/yungbote/coursecatalog-backend/internal/data/aggregates"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/observability"
)

const gradeOp = "Catalog.Quiz.Grade"

// Grade scores one submission against a loaded quiz.
//
// answers maps question id to the selected option id; a missing key or a nil
// value means the question was left blank. A selection is correct when that
// option is flagged correct, so a question with no correct option can never be
// answered correctly and any of several correct options counts.
func Grade(quiz *types.Quiz, answers map[uuid.UUID]*uuid.UUID) (types.QuizResult, error) {
	if quiz == nil {
		return types.QuizResult{}, domainagg.NotFound(gradeOp, "quiz not found")
	}
	questions := make([]*types.Question, 0, len(quiz.Questions))
	byID := make(map[uuid.UUID]*types.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		questions = append(questions, q)
		byID[q.ID] = q
	}
	for qid := range answers {
		if _, ok := byID[qid]; !ok {
			return types.QuizResult{}, domainagg.InvalidOperation(gradeOp, "answer references a question outside this quiz")
		}
	}
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Position != questions[j].Position {
			return questions[i].Position < questions[j].Position
		}
		return questions[i].ID.String() < questions[j].ID.String()
	})

	res := types.QuizResult{
		QuizID:  quiz.ID,
		Total:   len(questions),
		Answers: make(map[uuid.UUID]*uuid.UUID, len(questions)),
		Details: make([]types.QuestionOutcome, 0, len(questions)),
	}
	for _, q := range questions {
		selected := answers[q.ID]
		outcome := types.QuestionOutcome{QuestionID: q.ID}
		if selected != nil && *selected != uuid.Nil {
			opt := findOption(q, *selected)
			if opt == nil {
				return types.QuizResult{}, domainagg.InvalidInput(gradeOp, "selected option does not belong to question "+q.ID.String())
			}
			sel := opt.ID
			outcome.SelectedOptionID = &sel
			outcome.IsCorrect = opt.IsCorrect
		}
		if outcome.IsCorrect {
			res.Correct++
		}
		res.Answers[q.ID] = outcome.SelectedOptionID
		res.Details = append(res.Details, outcome)
	}
	res.Score = score(res.Correct, res.Total)
	return res, nil
}

func findOption(q *types.Question, id uuid.UUID) *types.Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// score is the rounded percentage of correct answers; an empty quiz scores 0.
func score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// GetQuiz loads a quiz with its questions and options in display order.
func (u Usecases) GetQuiz(ctx context.Context, quizID uuid.UUID) (*types.Quiz, error) {
	const op = "Catalog.Quiz.Get"
	if quizID == uuid.Nil {
		return nil, domainagg.NotFound(op, "quiz not found")
	}
	q, err := u.deps.Quizzes.GetByID(u.read(ctx), quizID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if q == nil {
		return nil, domainagg.NotFound(op, "quiz not found")
	}
	return q, nil
}

// GradeQuiz grades a submission. Nothing about the attempt is stored.
func (u Usecases) GradeQuiz(ctx context.Context, quizID uuid.UUID, answers map[uuid.UUID]*uuid.UUID) (types.QuizResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "catalog.quiz.grade")
	defer span.End()
	span.SetAttributes(attribute.String("quiz.id", quizID.String()), attribute.Int("quiz.answers", len(answers)))

	quiz, err := u.GetQuiz(ctx, quizID)
	if err != nil {
		span.SetStatus(codes.Error, string(domainagg.CodeOf(err)))
		return types.QuizResult{}, err
	}
	res, err := Grade(quiz, answers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(domainagg.CodeOf(err)))
		return types.QuizResult{}, err
	}
	span.SetAttributes(attribute.Int("quiz.score", res.Score))
	u.deps.Metrics.ObserveQuizGrade(res.Score)
	return res, nil
}
