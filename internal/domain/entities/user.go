package entities

import "time"

// User represents a quiz participant identified by Telegram user ID.
type User struct {
	ID        int64 // Telegram user ID
	ChatID    int64 // private chat used to deliver questions
	Username  string
	IsActive  bool
	CreatedAt time.Time
}

func NewUser(id, chatID int64, username string) *User {
	return &User{
		ID:       id,
		ChatID:   chatID,
		Username: username,
	}
}
