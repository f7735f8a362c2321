package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-quiz-bot/internal/textnorm"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidQuestion  = errors.New("invalid question")
)

// QuestionRepository provides read-only access to the question bank.
// The bank is loaded once from a JSON file and kept in memory.
type QuestionRepository struct {
	questions []*entities.Question
	byID      map[string]*entities.Question
}

// NewQuestionRepository loads and validates the question bank at path.
func NewQuestionRepository(path string) (*QuestionRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var wrapper struct {
		Questions []*entities.Question `json:"questions"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	return NewQuestionRepositoryFrom(wrapper.Questions)
}

// NewQuestionRepositoryFrom builds a repository from already decoded questions.
func NewQuestionRepositoryFrom(questions []*entities.Question) (*QuestionRepository, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: question bank is empty", ErrInvalidQuestion)
	}

	byID := make(map[string]*entities.Question, len(questions))
	for i, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("question #%d: %w", i, err)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidQuestion, q.ID)
		}
		byID[q.ID] = q
	}

	return &QuestionRepository{
		questions: questions,
		byID:      byID,
	}, nil
}

// GetByID retrieves a question by its ID.
func (r *QuestionRepository) GetByID(_ context.Context, id string) (*entities.Question, error) {
	q, ok := r.byID[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// GetAll retrieves every question of the bank.
func (r *QuestionRepository) GetAll(_ context.Context) ([]*entities.Question, error) {
	return r.questions, nil
}

// Topics returns the sorted list of distinct non-empty topics.
func (r *QuestionRepository) Topics(_ context.Context) ([]string, error) {
	topics := make([]string, 0)
	for _, q := range r.questions {
		if q.Topic != "" && !slices.Contains(topics, q.Topic) {
			topics = append(topics, q.Topic)
		}
	}
	slices.Sort(topics)
	return topics, nil
}

// Random returns up to n distinct questions in random order.
// An empty topic selects from the whole bank.
func (r *QuestionRepository) Random(_ context.Context, topic string, n int) ([]*entities.Question, error) {
	candidates := make([]*entities.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if topic == "" || q.Topic == topic {
			candidates = append(candidates, q)
		}
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	return candidates, nil
}

func validateQuestion(q *entities.Question) error {
	if q == nil {
		return fmt.Errorf("%w: null entry", ErrInvalidQuestion)
	}
	if q.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidQuestion)
	}
	if q.Prompt == "" {
		return fmt.Errorf("%w: %q has empty prompt", ErrInvalidQuestion, q.ID)
	}

	switch q.Type {
	case entities.QuestionTypeFillBlank:
		if len(q.Answers()) == 0 {
			return fmt.Errorf("%w: %q has no accepted answers", ErrInvalidQuestion, q.ID)
		}

	case entities.QuestionTypeMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: %q needs at least two options", ErrInvalidQuestion, q.ID)
		}
		if q.CorrectAnswer == "" {
			return fmt.Errorf("%w: %q has no correct answer", ErrInvalidQuestion, q.ID)
		}
		found := slices.ContainsFunc(q.Options, func(opt string) bool {
			return textnorm.AreEquivalent(opt, q.CorrectAnswer)
		})
		if !found {
			return fmt.Errorf("%w: %q correct answer is not among options", ErrInvalidQuestion, q.ID)
		}

	default:
		return fmt.Errorf("%w: %q has unknown type %q", ErrInvalidQuestion, q.ID, q.Type)
	}

	return nil
}
