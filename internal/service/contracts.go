package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user *entities.User) error
}

type QuestionRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Question, error)
	Random(ctx context.Context, topic string, n int) ([]*entities.Question, error)
	Topics(ctx context.Context) ([]string, error)
}

type QuizRepository interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, session *entities.QuizSession) (int64, error)
	CreateQuestionWithTx(ctx context.Context, tx pgx.Tx, sessionID int64, order int, questionID string) error
	GetSessionForUpdateWithTx(ctx context.Context, tx pgx.Tx, sessionID, userID int64) (*entities.QuizSession, error)
	GetActiveSessionByUserID(ctx context.Context, userID int64) (*entities.QuizSession, error)
	GetQuestionIDByOrder(ctx context.Context, sessionID int64, order int) (string, error)
	SaveAnswerWithTx(ctx context.Context, tx pgx.Tx, answer *entities.QuizAnswer) error
	UpdateSessionWithTx(ctx context.Context, tx pgx.Tx, session *entities.QuizSession) error
	AbandonActiveWithTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error)
	GetStats(ctx context.Context, userID int64) (*entities.UserStats, error)
}

type StaleSessionRepository interface {
	AbandonStale(ctx context.Context, startedBefore time.Time) (int64, error)
}

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
