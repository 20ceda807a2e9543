package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
)

// buildQuiz makes an in-memory quiz; each entry lists the correct flags of one question's options.
func buildQuiz(questions ...[]bool) *types.Quiz {
	q := &types.Quiz{ID: uuid.New(), Title: "Quiz"}
	for pos, flags := range questions {
		question := types.Question{ID: uuid.New(), QuizID: q.ID, Position: pos}
		for i, ok := range flags {
			question.Options = append(question.Options, types.Option{
				ID:         uuid.New(),
				QuestionID: question.ID,
				IsCorrect:  ok,
				Position:   i,
			})
		}
		q.Questions = append(q.Questions, question)
	}
	return q
}

func pick(q *types.Quiz, question, option int) *uuid.UUID {
	id := q.Questions[question].Options[option].ID
	return &id
}

func TestGrade_EmptyQuizScoresZero(t *testing.T) {
	res, err := Grade(buildQuiz(), nil)
	require.NoError(t, err)
	require.Equal(t, 0, res.Total)
	require.Equal(t, 0, res.Correct)
	require.Equal(t, 0, res.Score)
	require.Empty(t, res.Details)
}

func TestGrade_ThreeOfFiveWithTwoBlank(t *testing.T) {
	q := buildQuiz(
		[]bool{true, false},
		[]bool{false, true},
		[]bool{true, false},
		[]bool{true, false},
		[]bool{false, true},
	)
	answers := map[uuid.UUID]*uuid.UUID{
		q.Questions[0].ID: pick(q, 0, 0),
		q.Questions[1].ID: pick(q, 1, 1),
		q.Questions[2].ID: pick(q, 2, 0),
		q.Questions[3].ID: nil,
	}
	res, err := Grade(q, answers)
	require.NoError(t, err)
	require.Equal(t, 5, res.Total)
	require.Equal(t, 3, res.Correct)
	require.Equal(t, 60, res.Score)
	require.Len(t, res.Answers, 5)
	require.Nil(t, res.Answers[q.Questions[3].ID])
	require.Nil(t, res.Answers[q.Questions[4].ID])
	require.Equal(t, *pick(q, 1, 1), *res.Answers[q.Questions[1].ID])
	require.Len(t, res.Details, 5)
	require.Equal(t, q.Questions[0].ID, res.Details[0].QuestionID)
}

func TestGrade_RoundsToNearestPercent(t *testing.T) {
	q := buildQuiz([]bool{true}, []bool{true}, []bool{true})
	res, err := Grade(q, map[uuid.UUID]*uuid.UUID{
		q.Questions[0].ID: pick(q, 0, 0),
		q.Questions[1].ID: pick(q, 1, 0),
	})
	require.NoError(t, err)
	require.Equal(t, 67, res.Score)

	res, err = Grade(q, map[uuid.UUID]*uuid.UUID{q.Questions[0].ID: pick(q, 0, 0)})
	require.NoError(t, err)
	require.Equal(t, 33, res.Score)
}

func TestGrade_QuestionWithoutCorrectOptionNeverScores(t *testing.T) {
	q := buildQuiz([]bool{false, false})
	res, err := Grade(q, map[uuid.UUID]*uuid.UUID{q.Questions[0].ID: pick(q, 0, 1)})
	require.NoError(t, err)
	require.Equal(t, 0, res.Correct)
	require.False(t, res.Details[0].IsCorrect)
	require.NotNil(t, res.Details[0].SelectedOptionID)
}

func TestGrade_AnyOfSeveralCorrectOptionsCounts(t *testing.T) {
	q := buildQuiz([]bool{true, false, true})
	for _, opt := range []int{0, 2} {
		res, err := Grade(q, map[uuid.UUID]*uuid.UUID{q.Questions[0].ID: pick(q, 0, opt)})
		require.NoError(t, err)
		require.Equal(t, 1, res.Correct, "option %d", opt)
	}
	res, err := Grade(q, map[uuid.UUID]*uuid.UUID{q.Questions[0].ID: pick(q, 0, 1)})
	require.NoError(t, err)
	require.Equal(t, 0, res.Correct)
}

func TestGrade_ForeignOptionIsInvalidInput(t *testing.T) {
	q := buildQuiz([]bool{true}, []bool{true})
	_, err := Grade(q, map[uuid.UUID]*uuid.UUID{q.Questions[0].ID: pick(q, 1, 0)})
	requireCode(t, err, domainagg.CodeInvalidInput)

	unknown := uuid.New()
	_, err = Grade(q, map[uuid.UUID]*uuid.UUID{q.Questions[0].ID: &unknown})
	requireCode(t, err, domainagg.CodeInvalidInput)
}

func TestGrade_UnknownQuestionIsInvalidOperation(t *testing.T) {
	q := buildQuiz([]bool{true})
	_, err := Grade(q, map[uuid.UUID]*uuid.UUID{uuid.New(): nil})
	requireCode(t, err, domainagg.CodeInvalidOperation)
}

func TestGrade_OrdersByPosition(t *testing.T) {
	q := buildQuiz([]bool{true}, []bool{true})
	q.Questions[0].Position, q.Questions[1].Position = 5, 1
	res, err := Grade(q, nil)
	require.NoError(t, err)
	require.Equal(t, q.Questions[1].ID, res.Details[0].QuestionID)
}

func TestGradeQuiz_LoadsFromStore(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	c := testutil.SeedCourse(t, ctx, db, "Graded")
	m := testutil.SeedModule(t, ctx, db, c.ID, "Graded Module")
	quiz := testutil.SeedQuiz(t, ctx, db, m.ID, "Graded Quiz")
	q0 := testutil.SeedQuestion(t, ctx, db, quiz.ID, 0, false, true)
	q1 := testutil.SeedQuestion(t, ctx, db, quiz.ID, 1, true, false)

	right := q0.Options[1].ID
	wrong := q1.Options[1].ID
	res, err := uc.GradeQuiz(ctx, quiz.ID, map[uuid.UUID]*uuid.UUID{q0.ID: &right, q1.ID: &wrong})
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	require.Equal(t, 1, res.Correct)
	require.Equal(t, 50, res.Score)

	_, err = uc.GradeQuiz(ctx, uuid.New(), nil)
	requireCode(t, err, domainagg.CodeNotFound)
}
