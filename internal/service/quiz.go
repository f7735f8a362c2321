package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-quiz-bot/internal/repository"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrNoActiveSession      = errors.New("no active quiz session")
	ErrStaleAnswer          = errors.New("answer refers to a question that is no longer current")
	ErrWrongQuestionType    = errors.New("answer does not fit the question type")
)

// QuizState is an active session together with the question it waits for.
type QuizState struct {
	Session  *entities.QuizSession
	Question *entities.Question
}

// AnswerResult describes a checked answer and what comes next.
type AnswerResult struct {
	Verdict  Verdict
	Question *entities.Question    // the answered question
	Session  *entities.QuizSession // session state after the answer
	Next     *entities.Question    // nil when the session is over
}

type QuizService struct {
	questionRepo        QuestionRepository
	quizRepo            QuizRepository
	transactor          Transactor
	validator           *AnswerValidator
	questionsPerSession int
	logger              *zap.Logger
}

func NewQuizService(
	questionRepo QuestionRepository,
	quizRepo QuizRepository,
	transactor Transactor,
	validator *AnswerValidator,
	questionsPerSession int,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		questionRepo:        questionRepo,
		quizRepo:            quizRepo,
		transactor:          transactor,
		validator:           validator,
		questionsPerSession: questionsPerSession,
		logger:              logger,
	}
}

// StartQuiz abandons any running session of the user and starts a new one.
// An empty topic mixes questions from every topic.
func (s *QuizService) StartQuiz(ctx context.Context, userID int64, topic string) (*QuizState, error) {
	questions, err := s.questionRepo.Random(ctx, topic, s.questionsPerSession)
	if err != nil {
		return nil, fmt.Errorf("pick questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	session := entities.NewQuizSession(userID, len(questions), topic)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.quizRepo.AbandonActiveWithTx(ctx, tx, userID); err != nil {
			return err
		}

		id, err := s.quizRepo.CreateWithTx(ctx, tx, session)
		if err != nil {
			return err
		}
		session.ID = id

		for i, q := range questions {
			if err := s.quizRepo.CreateQuestionWithTx(ctx, tx, id, i+1, q.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}

	s.logger.Info("quiz started",
		zap.Int64("user_id", userID),
		zap.Int64("session_id", session.ID),
		zap.String("topic", topic),
		zap.Int("questions", len(questions)),
	)

	return &QuizState{Session: session, Question: questions[0]}, nil
}

// CurrentQuestion returns the active session of the user and its current question.
func (s *QuizService) CurrentQuestion(ctx context.Context, userID int64) (*QuizState, error) {
	session, err := s.quizRepo.GetActiveSessionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}

	q, err := s.questionAt(ctx, session.ID, session.CurrentQuestionNum)
	if err != nil {
		return nil, err
	}

	return &QuizState{Session: session, Question: q}, nil
}

// SubmitAnswer grades a typed answer to the current fill-in-the-blank question.
func (s *QuizService) SubmitAnswer(ctx context.Context, userID int64, text string) (*AnswerResult, error) {
	state, err := s.CurrentQuestion(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state.Question.Type != entities.QuestionTypeFillBlank {
		return nil, ErrWrongQuestionType
	}

	verdict := s.validator.ValidateQuestion(state.Question, text)

	return s.record(ctx, userID, state, text, verdict)
}

// SubmitOption grades the option chosen for a multiple-choice question.
// sessionID and order identify the question the option belongs to, so that
// taps on buttons of earlier questions are rejected.
func (s *QuizService) SubmitOption(ctx context.Context, userID, sessionID int64, order, index int) (*AnswerResult, error) {
	state, err := s.CurrentQuestion(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state.Session.ID != sessionID || state.Session.CurrentQuestionNum != order {
		return nil, ErrStaleAnswer
	}

	if state.Question.Type != entities.QuestionTypeMultipleChoice {
		return nil, ErrWrongQuestionType
	}

	verdict, err := s.validator.ValidateOption(state.Question, index)
	if err != nil {
		return nil, err
	}

	return s.record(ctx, userID, state, state.Question.Options[index], verdict)
}

// StopQuiz abandons the active session. It reports whether there was one.
func (s *QuizService) StopQuiz(ctx context.Context, userID int64) (bool, error) {
	var abandoned int64

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		n, err := s.quizRepo.AbandonActiveWithTx(ctx, tx, userID)
		abandoned = n
		return err
	})
	if err != nil {
		return false, fmt.Errorf("stop quiz: %w", err)
	}

	return abandoned > 0, nil
}

// Stats returns the answer statistics of the user.
func (s *QuizService) Stats(ctx context.Context, userID int64) (*entities.UserStats, error) {
	return s.quizRepo.GetStats(ctx, userID)
}

// Topics lists the topics a quiz can be restricted to.
func (s *QuizService) Topics(ctx context.Context) ([]string, error) {
	return s.questionRepo.Topics(ctx)
}

func (s *QuizService) record(
	ctx context.Context,
	userID int64,
	state *QuizState,
	userAnswer string,
	verdict Verdict,
) (*AnswerResult, error) {
	order := state.Session.CurrentQuestionNum

	answer := entities.NewQuizAnswer(userID, state.Session.ID, state.Question.ID, order)
	answer.UserAnswer = userAnswer
	answer.MatchedAnswer = verdict.ClosestMatch
	answer.Score = verdict.Score
	answer.IsCorrect = verdict.IsCorrect

	var updated *entities.QuizSession

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		session, err := s.quizRepo.GetSessionForUpdateWithTx(ctx, tx, state.Session.ID, userID)
		if err != nil {
			return err
		}

		if session.CurrentQuestionNum != order {
			return ErrStaleAnswer
		}

		if err := s.quizRepo.SaveAnswerWithTx(ctx, tx, answer); err != nil {
			return err
		}

		session.Advance(verdict.IsCorrect)

		if err := s.quizRepo.UpdateSessionWithTx(ctx, tx, session); err != nil {
			return err
		}

		updated = session
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotActive) || errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrNoActiveSession
		}
		if errors.Is(err, ErrStaleAnswer) {
			return nil, ErrStaleAnswer
		}
		return nil, fmt.Errorf("record answer: %w", err)
	}

	s.logger.Debug("answer recorded",
		zap.Int64("user_id", userID),
		zap.Int64("session_id", updated.ID),
		zap.String("question_id", state.Question.ID),
		zap.Bool("correct", verdict.IsCorrect),
		zap.Float64("score", verdict.Score),
	)

	result := &AnswerResult{
		Verdict:  verdict,
		Question: state.Question,
		Session:  updated,
	}

	if !updated.IsActive() {
		s.logger.Info("quiz completed",
			zap.Int64("user_id", userID),
			zap.Int64("session_id", updated.ID),
			zap.Int("correct", updated.CorrectAnswers),
			zap.Int("total", updated.TotalQuestions),
		)
		return result, nil
	}

	next, err := s.questionAt(ctx, updated.ID, updated.CurrentQuestionNum)
	if err != nil {
		return nil, err
	}
	result.Next = next

	return result, nil
}

func (s *QuizService) questionAt(ctx context.Context, sessionID int64, order int) (*entities.Question, error) {
	id, err := s.quizRepo.GetQuestionIDByOrder(ctx, sessionID, order)
	if err != nil {
		return nil, fmt.Errorf("question %d of session %d: %w", order, sessionID, err)
	}

	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", id, err)
	}

	return q, nil
}
