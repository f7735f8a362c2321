package telegram

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-quiz-bot/internal/service"
)

// handleQuiz starts a new quiz, optionally restricted to a topic.
func (h *Handler) handleQuiz(userID int64, topic string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		state, err := h.quizService.StartQuiz(ctx, userID, strings.TrimSpace(topic))
		if err != nil {
			if errors.Is(err, service.ErrNoQuestionsAvailable) {
				return h.send(newHTMLMessage(chatID, esc(msgNoQuestions)))
			}
			return err
		}

		return h.sendQuestion(chatID, state.Session, state.Question)
	}
}

// handleQuizTopic starts a quiz on the topic at idx of the sorted topic list.
func (h *Handler) handleQuizTopic(userID int64, idx int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if idx < 0 {
			return h.handleQuiz(userID, "")(ctx, chatID)
		}

		topics, err := h.quizService.Topics(ctx)
		if err != nil {
			return err
		}

		if idx >= len(topics) {
			h.logger.Warn("topic index out of range",
				zap.Int("index", idx),
				zap.Int("topics", len(topics)),
			)
			return h.send(newHTMLMessage(chatID, esc(msgNoQuestions)))
		}

		return h.handleQuiz(userID, topics[idx])(ctx, chatID)
	}
}

// handleTopics lists topics as buttons that start a themed quiz.
func (h *Handler) handleTopics() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		topics, err := h.quizService.Topics(ctx)
		if err != nil {
			return err
		}

		if len(topics) == 0 {
			return h.send(newHTMLMessage(chatID, esc(msgNoTopics)))
		}

		msg := newHTMLMessage(chatID, esc(msgTopicsHeader))
		msg.ReplyMarkup = buildTopicsKeyboard(topics)
		return h.send(msg)
	}
}

// handleStop abandons the running quiz.
func (h *Handler) handleStop(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stopped, err := h.quizService.StopQuiz(ctx, userID)
		if err != nil {
			return err
		}

		if !stopped {
			return h.send(newHTMLMessage(chatID, esc(msgNoActiveQuiz)))
		}
		return h.send(newHTMLMessage(chatID, esc(msgQuizStopped)))
	}
}

// handleStats shows answer statistics.
func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.quizService.Stats(ctx, userID)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, formatStats(stats))
		msg.ReplyMarkup = buildQuizResultKeyboard(-1)
		return h.send(msg)
	}
}

// handleNormalize shows the normalized form of the given text.
func (h *Handler) handleNormalize(text string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		text = strings.TrimSpace(text)
		if text == "" {
			return h.send(newHTMLMessage(chatID, esc(msgNormalizeUsage)))
		}

		return h.send(newHTMLMessage(chatID, formatInspection(h.inspector.Inspect(text))))
	}
}

// handleAnswer grades free text as the answer to the current question.
func (h *Handler) handleAnswer(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		res, err := h.quizService.SubmitAnswer(ctx, userID, text)
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			return h.send(newHTMLMessage(chatID, esc(msgNoActiveQuiz)))
		case errors.Is(err, service.ErrWrongQuestionType):
			return h.send(newHTMLMessage(chatID, esc(msgUseButtons)))
		case errors.Is(err, service.ErrStaleAnswer):
			return h.send(newHTMLMessage(chatID, esc(msgStaleAnswer)))
		case err != nil:
			return err
		}

		return h.sendResult(ctx, chatID, res)
	}
}

// sendQuestion sends a question with option buttons when it has options.
func (h *Handler) sendQuestion(chatID int64, session *entities.QuizSession, q *entities.Question) error {
	msg := newHTMLMessage(chatID, formatQuestion(session, q))
	if q.Type == entities.QuestionTypeMultipleChoice {
		msg.ReplyMarkup = buildOptionsKeyboard(session, q)
	}
	return h.send(msg)
}

// sendResult sends feedback for an answer followed by the next question or the summary.
func (h *Handler) sendResult(ctx context.Context, chatID int64, res *service.AnswerResult) error {
	if err := h.send(newHTMLMessage(chatID, formatVerdict(res))); err != nil {
		return err
	}

	if res.Next != nil {
		return h.sendQuestion(chatID, res.Session, res.Next)
	}

	h.logger.Debug("sending quiz summary",
		zap.Int64("chat_id", chatID),
		zap.Int64("session_id", res.Session.ID),
	)

	topics, err := h.quizService.Topics(ctx)
	if err != nil {
		return err
	}

	msg := newHTMLMessage(chatID, formatQuizSummary(res.Session))
	msg.ReplyMarkup = buildQuizResultKeyboard(topicIndex(topics, res.Session.Topic))
	return h.send(msg)
}
