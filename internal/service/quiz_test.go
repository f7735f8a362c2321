package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-quiz-bot/internal/repository"
	"github.com/aliskhannn/arabic-quiz-bot/internal/textnorm"
)

const testUserID int64 = 7

func newTestQuizService(t *testing.T) (*QuizService, *fakeQuizRepo) {
	t.Helper()

	bank, err := repository.NewQuestionRepositoryFrom([]*entities.Question{
		{ID: "q1", Topic: "seerah", Type: entities.QuestionTypeFillBlank, Prompt: "ولد النبي في ____", CorrectAnswer: "مكة", AcceptedAnswers: []string{"مكة المكرمة"}},
		{ID: "q2", Topic: "seerah", Type: entities.QuestionTypeMultipleChoice, Prompt: "أين هاجر النبي؟", Options: []string{"المدينة", "الطائف", "مكة"}, CorrectAnswer: "المدينة"},
		{ID: "q3", Topic: "fiqh", Type: entities.QuestionTypeFillBlank, Prompt: "زيارة البيت في غير أشهر الحج", CorrectAnswer: "العمرة"},
	})
	require.NoError(t, err)

	quizRepo := newFakeQuizRepo()
	svc := NewQuizService(
		orderedQuestions{bank},
		quizRepo,
		fakeTransactor{},
		NewAnswerValidator(textnorm.New(), 0.6),
		5,
		zap.NewNop(),
	)

	return svc, quizRepo
}

func TestQuizServiceFullSession(t *testing.T) {
	svc, quizRepo := newTestQuizService(t)
	ctx := context.Background()

	state, err := svc.StartQuiz(ctx, testUserID, "")
	require.NoError(t, err)
	require.Equal(t, "q1", state.Question.ID)
	assert.Equal(t, 3, state.Session.TotalQuestions)
	sessionID := state.Session.ID

	_, err = svc.SubmitOption(ctx, testUserID, sessionID, 1, 0)
	assert.ErrorIs(t, err, ErrWrongQuestionType)

	res, err := svc.SubmitAnswer(ctx, testUserID, "مكه")
	require.NoError(t, err)
	assert.True(t, res.Verdict.IsCorrect)
	assert.Equal(t, "q1", res.Question.ID)
	require.NotNil(t, res.Next)
	assert.Equal(t, "q2", res.Next.ID)
	assert.Equal(t, 2, res.Session.CurrentQuestionNum)

	_, err = svc.SubmitAnswer(ctx, testUserID, "المدينة")
	assert.ErrorIs(t, err, ErrWrongQuestionType)

	_, err = svc.SubmitOption(ctx, testUserID, sessionID, 1, 0)
	assert.ErrorIs(t, err, ErrStaleAnswer)

	_, err = svc.SubmitOption(ctx, testUserID, sessionID, 2, 5)
	assert.ErrorIs(t, err, ErrInvalidOption)

	res, err = svc.SubmitOption(ctx, testUserID, sessionID, 2, 1)
	require.NoError(t, err)
	assert.False(t, res.Verdict.IsCorrect)
	assert.Equal(t, "المدينة", res.Verdict.ClosestMatch)
	require.NotNil(t, res.Next)
	assert.Equal(t, "q3", res.Next.ID)

	res, err = svc.SubmitAnswer(ctx, testUserID, "العمره!")
	require.NoError(t, err)
	assert.True(t, res.Verdict.IsCorrect)
	assert.Nil(t, res.Next)
	assert.False(t, res.Session.IsActive())
	assert.Equal(t, 2, res.Session.CorrectAnswers)

	_, err = svc.CurrentQuestion(ctx, testUserID)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = svc.SubmitAnswer(ctx, testUserID, "مكة")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	require.Len(t, quizRepo.answers, 3)
	assert.Equal(t, "الطائف", quizRepo.answers[1].UserAnswer)
	assert.Equal(t, 2, quizRepo.answers[1].QuestionOrder)

	stats, err := svc.Stats(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entities.UserStats{Answered: 3, Correct: 2, CompletedSessions: 1}, *stats)
}

func TestQuizServiceStartByTopic(t *testing.T) {
	svc, _ := newTestQuizService(t)
	ctx := context.Background()

	state, err := svc.StartQuiz(ctx, testUserID, "fiqh")
	require.NoError(t, err)
	assert.Equal(t, "q3", state.Question.ID)
	assert.Equal(t, 1, state.Session.TotalQuestions)
	assert.Equal(t, "fiqh", state.Session.Topic)

	_, err = svc.StartQuiz(ctx, testUserID, "history")
	assert.ErrorIs(t, err, ErrNoQuestionsAvailable)

	topics, err := svc.Topics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fiqh", "seerah"}, topics)
}

func TestQuizServiceRestartAbandonsPrevious(t *testing.T) {
	svc, quizRepo := newTestQuizService(t)
	ctx := context.Background()

	first, err := svc.StartQuiz(ctx, testUserID, "")
	require.NoError(t, err)

	second, err := svc.StartQuiz(ctx, testUserID, "fiqh")
	require.NoError(t, err)
	assert.NotEqual(t, first.Session.ID, second.Session.ID)
	assert.Equal(t, entities.SessionAbandoned, quizRepo.sessions[first.Session.ID].SessionStatus)

	state, err := svc.CurrentQuestion(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, second.Session.ID, state.Session.ID)
	assert.Equal(t, "q3", state.Question.ID)

	_, err = svc.SubmitOption(ctx, testUserID, first.Session.ID, 1, 0)
	assert.ErrorIs(t, err, ErrStaleAnswer)
}

func TestQuizServiceStop(t *testing.T) {
	svc, _ := newTestQuizService(t)
	ctx := context.Background()

	stopped, err := svc.StopQuiz(ctx, testUserID)
	require.NoError(t, err)
	assert.False(t, stopped)

	_, err = svc.StartQuiz(ctx, testUserID, "")
	require.NoError(t, err)

	stopped, err = svc.StopQuiz(ctx, testUserID)
	require.NoError(t, err)
	assert.True(t, stopped)

	_, err = svc.CurrentQuestion(ctx, testUserID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}
