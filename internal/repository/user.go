package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
)

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// SaveUser inserts a new user or refreshes chat and username of an existing one.
// It sets IsActive and CreatedAt fields from the database.
func (r *UserRepository) SaveUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, chat_id, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET chat_id = EXCLUDED.chat_id, username = EXCLUDED.username
		RETURNING is_active, created_at
	`
	err := r.db.QueryRow(ctx, query, user.ID, user.ChatID, user.Username).Scan(&user.IsActive, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}
