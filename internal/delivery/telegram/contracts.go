package telegram

import (
	"context"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-quiz-bot/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username string) error
}

type QuizService interface {
	StartQuiz(ctx context.Context, userID int64, topic string) (*service.QuizState, error)
	CurrentQuestion(ctx context.Context, userID int64) (*service.QuizState, error)
	SubmitAnswer(ctx context.Context, userID int64, text string) (*service.AnswerResult, error)
	SubmitOption(ctx context.Context, userID, sessionID int64, order, index int) (*service.AnswerResult, error)
	StopQuiz(ctx context.Context, userID int64) (bool, error)
	Stats(ctx context.Context, userID int64) (*entities.UserStats, error)
	Topics(ctx context.Context) ([]string, error)
}

// AnswerInspector explains how the answer checker sees a text.
type AnswerInspector interface {
	Inspect(text string) service.Inspection
}
