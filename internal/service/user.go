package service

import (
	"context"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser registers the user on first contact and keeps chat and username
// current on later ones.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, username string) error {
	return s.repository.SaveUser(ctx, entities.NewUser(userID, chatID, username))
}
