package entities

import "time"

// Session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// QuizSession represents a single quiz session for a user.
// It tracks the session ID, user ID, progress, topic, session status, and timestamps.
type QuizSession struct {
	ID                 int64      // unique session ID
	UserID             int64      // user ID who started the quiz
	CurrentQuestionNum int        // current question number in the quiz, starting from 1
	CorrectAnswers     int        // number of correct answers so far
	TotalQuestions     int        // total number of questions in the quiz
	Topic              string     // topic filter, empty for mixed quizzes
	SessionStatus      string     // session status: "active", "completed", or "abandoned"
	StartedAt          time.Time  // timestamp when the quiz started
	CompletedAt        *time.Time // timestamp when the quiz was completed (nullable)
	Version            int        // optimistic lock version
}

// NewQuizSession creates a new quiz session for a user with the specified total questions and topic.
func NewQuizSession(userID int64, totalQuestions int, topic string) *QuizSession {
	return &QuizSession{
		UserID:             userID,
		CurrentQuestionNum: 1,
		TotalQuestions:     totalQuestions,
		Topic:              topic,
		SessionStatus:      SessionActive,
		StartedAt:          time.Now(),
	}
}

// IsActive reports whether the session still accepts answers.
func (qs *QuizSession) IsActive() bool {
	return qs.SessionStatus == SessionActive
}

// Complete marks the quiz session as completed and sets the completion timestamp.
func (qs *QuizSession) Complete() {
	qs.SessionStatus = SessionCompleted
	now := time.Now()
	qs.CompletedAt = &now
}

// Advance records the outcome of the current question and moves to the next one.
// The session completes after its last question.
func (qs *QuizSession) Advance(correct bool) {
	if correct {
		qs.CorrectAnswers++
	}
	qs.CurrentQuestionNum++
	if qs.CurrentQuestionNum > qs.TotalQuestions {
		qs.Complete()
	}
}

// QuizAnswer represents a user's answer to a quiz question.
type QuizAnswer struct {
	ID            int64     // unique answer ID
	UserID        int64     // user ID who answered
	SessionID     int64     // quiz session ID
	QuestionID    string    // question bank ID
	QuestionOrder int       // position of the question in the session
	UserAnswer    string    // answer as typed or selected by the user
	MatchedAnswer string    // closest accepted answer
	Score         float64   // similarity between the user answer and MatchedAnswer
	IsCorrect     bool      // whether the answer was accepted
	AnsweredAt    time.Time // timestamp when the answer was submitted
}

// NewQuizAnswer creates a new quiz answer for a user, session, and question.
func NewQuizAnswer(userID, sessionID int64, questionID string, order int) *QuizAnswer {
	return &QuizAnswer{
		UserID:        userID,
		SessionID:     sessionID,
		QuestionID:    questionID,
		QuestionOrder: order,
		AnsweredAt:    time.Now(),
	}
}
