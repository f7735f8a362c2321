package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
)

var (
	ErrSessionNotFound  = errors.New("quiz session not found")
	ErrOptimisticLock   = errors.New("quiz session was modified by another process")
	ErrSessionNotActive = errors.New("quiz session is not active")
)

// QuizRepository provides access to quiz session and answer data in the database.
type QuizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository with the provided database pool.
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db}
}

// CreateWithTx creates a new quiz session within a transaction.
func (r *QuizRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, session *entities.QuizSession) (int64, error) {
	query := `
		INSERT INTO quiz_sessions (
			user_id, current_question_num, correct_answers, total_questions,
			topic, session_status, started_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := tx.QueryRow(
		ctx,
		query,
		session.UserID,
		session.CurrentQuestionNum,
		session.CorrectAnswers,
		session.TotalQuestions,
		session.Topic,
		session.SessionStatus,
		session.StartedAt,
		session.Version,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create quiz session: %w", err)
	}

	return id, nil
}

// CreateQuestionWithTx links a bank question to a position of the session.
func (r *QuizRepository) CreateQuestionWithTx(ctx context.Context, tx pgx.Tx, sessionID int64, order int, questionID string) error {
	query := `
		INSERT INTO quiz_questions (session_id, question_order, question_id)
		VALUES ($1, $2, $3)
	`

	if _, err := tx.Exec(ctx, query, sessionID, order, questionID); err != nil {
		return fmt.Errorf("create quiz question: %w", err)
	}

	return nil
}

// GetSessionForUpdateWithTx retrieves an active session with row-level lock for update.
func (r *QuizRepository) GetSessionForUpdateWithTx(ctx context.Context, tx pgx.Tx, sessionID, userID int64) (*entities.QuizSession, error) {
	query := `
		SELECT id, user_id, current_question_num, correct_answers, total_questions,
		       topic, session_status, started_at, completed_at, version
		FROM quiz_sessions
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`

	session, err := scanSession(tx.QueryRow(ctx, query, sessionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session for update: %w", err)
	}

	if !session.IsActive() {
		return nil, ErrSessionNotActive
	}

	return session, nil
}

// GetActiveSessionByUserID retrieves the active session for a user.
func (r *QuizRepository) GetActiveSessionByUserID(ctx context.Context, userID int64) (*entities.QuizSession, error) {
	query := `
		SELECT id, user_id, current_question_num, correct_answers, total_questions,
		       topic, session_status, started_at, completed_at, version
		FROM quiz_sessions
		WHERE user_id = $1 AND session_status = 'active'
		ORDER BY started_at DESC
		LIMIT 1
	`

	session, err := scanSession(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get quiz session: %w", err)
	}

	return session, nil
}

// GetQuestionIDByOrder returns the bank ID of the question at the given position.
func (r *QuizRepository) GetQuestionIDByOrder(ctx context.Context, sessionID int64, order int) (string, error) {
	query := `
		SELECT question_id
		FROM quiz_questions
		WHERE session_id = $1 AND question_order = $2
	`

	var id string
	if err := r.db.QueryRow(ctx, query, sessionID, order).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrQuestionNotFound
		}
		return "", fmt.Errorf("get question by order: %w", err)
	}

	return id, nil
}

// SaveAnswerWithTx saves a quiz answer within a transaction.
func (r *QuizRepository) SaveAnswerWithTx(ctx context.Context, tx pgx.Tx, answer *entities.QuizAnswer) error {
	query := `
		INSERT INTO quiz_answers (
			user_id, session_id, question_id, question_order,
			user_answer, matched_answer, score, is_correct, answered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(
		ctx,
		query,
		answer.UserID,
		answer.SessionID,
		answer.QuestionID,
		answer.QuestionOrder,
		answer.UserAnswer,
		answer.MatchedAnswer,
		answer.Score,
		answer.IsCorrect,
		answer.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("save answer: %w", err)
	}

	return nil
}

// UpdateSessionWithTx updates a quiz session using optimistic locking.
func (r *QuizRepository) UpdateSessionWithTx(ctx context.Context, tx pgx.Tx, session *entities.QuizSession) error {
	query := `
		UPDATE quiz_sessions
		SET current_question_num = $1,
		    correct_answers = $2,
		    session_status = $3,
		    completed_at = $4,
		    version = version + 1
		WHERE id = $5 AND version = $6
	`

	result, err := tx.Exec(
		ctx,
		query,
		session.CurrentQuestionNum,
		session.CorrectAnswers,
		session.SessionStatus,
		session.CompletedAt,
		session.ID,
		session.Version,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOptimisticLock
	}

	session.Version++

	return nil
}

// AbandonActiveWithTx marks all active sessions of a user as abandoned.
func (r *QuizRepository) AbandonActiveWithTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	query := `
		UPDATE quiz_sessions
		SET session_status = 'abandoned'
		WHERE user_id = $1 AND session_status = 'active'
	`

	result, err := tx.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("abandon active sessions: %w", err)
	}

	return result.RowsAffected(), nil
}

// AbandonStale marks active sessions started before the given time as abandoned.
func (r *QuizRepository) AbandonStale(ctx context.Context, startedBefore time.Time) (int64, error) {
	query := `
		UPDATE quiz_sessions
		SET session_status = 'abandoned', version = version + 1
		WHERE session_status = 'active' AND started_at < $1
	`

	result, err := r.db.Exec(ctx, query, startedBefore)
	if err != nil {
		return 0, fmt.Errorf("abandon stale sessions: %w", err)
	}

	return result.RowsAffected(), nil
}

// GetStats aggregates the answer history of a user.
func (r *QuizRepository) GetStats(ctx context.Context, userID int64) (*entities.UserStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM quiz_answers WHERE user_id = $1),
			(SELECT COUNT(*) FROM quiz_answers WHERE user_id = $1 AND is_correct),
			(SELECT COUNT(*) FROM quiz_sessions WHERE user_id = $1 AND session_status = 'completed')
	`

	var stats entities.UserStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.Answered,
		&stats.Correct,
		&stats.CompletedSessions,
	)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	return &stats, nil
}

func scanSession(row pgx.Row) (*entities.QuizSession, error) {
	var session entities.QuizSession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.CurrentQuestionNum,
		&session.CorrectAnswers,
		&session.TotalQuestions,
		&session.Topic,
		&session.SessionStatus,
		&session.StartedAt,
		&session.CompletedAt,
		&session.Version,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
