package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-quiz-bot/internal/repository"
)

type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

// fakeQuizRepo keeps sessions in memory and copies them on every read,
// the way rows are re-read from the database.
type fakeQuizRepo struct {
	mu        sync.Mutex
	nextID    int64
	sessions  map[int64]*entities.QuizSession
	questions map[int64]map[int]string
	answers   []*entities.QuizAnswer
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{
		sessions:  make(map[int64]*entities.QuizSession),
		questions: make(map[int64]map[int]string),
	}
}

func (r *fakeQuizRepo) CreateWithTx(_ context.Context, _ pgx.Tx, session *entities.QuizSession) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *session
	stored.ID = r.nextID
	r.sessions[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeQuizRepo) CreateQuestionWithTx(_ context.Context, _ pgx.Tx, sessionID int64, order int, questionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.questions[sessionID] == nil {
		r.questions[sessionID] = make(map[int]string)
	}
	r.questions[sessionID][order] = questionID
	return nil
}

func (r *fakeQuizRepo) GetSessionForUpdateWithTx(_ context.Context, _ pgx.Tx, sessionID, userID int64) (*entities.QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, repository.ErrSessionNotFound
	}
	if !s.IsActive() {
		return nil, repository.ErrSessionNotActive
	}
	cp := *s
	return &cp, nil
}

func (r *fakeQuizRepo) GetActiveSessionByUserID(_ context.Context, userID int64) (*entities.QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsActive() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (r *fakeQuizRepo) GetQuestionIDByOrder(_ context.Context, sessionID int64, order int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.questions[sessionID][order]
	if !ok {
		return "", repository.ErrQuestionNotFound
	}
	return id, nil
}

func (r *fakeQuizRepo) SaveAnswerWithTx(_ context.Context, _ pgx.Tx, answer *entities.QuizAnswer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, answer)
	return nil
}

func (r *fakeQuizRepo) UpdateSessionWithTx(_ context.Context, _ pgx.Tx, session *entities.QuizSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sessions[session.ID]
	if !ok || stored.Version != session.Version {
		return repository.ErrOptimisticLock
	}
	session.Version++
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r *fakeQuizRepo) AbandonActiveWithTx(_ context.Context, _ pgx.Tx, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsActive() {
			s.SessionStatus = entities.SessionAbandoned
			n++
		}
	}
	return n, nil
}

func (r *fakeQuizRepo) GetStats(_ context.Context, userID int64) (*entities.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats entities.UserStats
	for _, a := range r.answers {
		if a.UserID != userID {
			continue
		}
		stats.Answered++
		if a.IsCorrect {
			stats.Correct++
		}
	}
	for _, s := range r.sessions {
		if s.UserID == userID && s.SessionStatus == entities.SessionCompleted {
			stats.CompletedSessions++
		}
	}
	return &stats, nil
}

// orderedQuestions returns the bank in its original order instead of shuffling,
// which keeps quiz tests deterministic.
type orderedQuestions struct {
	*repository.QuestionRepository
}

func (r orderedQuestions) Random(ctx context.Context, topic string, n int) ([]*entities.Question, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	picked := make([]*entities.Question, 0, n)
	for _, q := range all {
		if len(picked) == n {
			break
		}
		if topic == "" || q.Topic == topic {
			picked = append(picked, q)
		}
	}
	return picked, nil
}

type fakeUserRepo struct {
	users map[int64]*entities.User
	saves int
}

func (r *fakeUserRepo) SaveUser(_ context.Context, user *entities.User) error {
	r.saves++
	r.users[user.ID] = user
	return nil
}
