package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.request(tgbotapi.NewCallback(cb.ID, ""))
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	// Text shown to the user as a toast; empty just removes the "clock".
	notice := ""

	switch data.Action {
	case actionAnswer:
		notice = h.handleAnswerCallback(ctx, cb, data)

	case actionQuiz:
		idx, ok := parseQuizStartParams(data.Params)
		if !ok {
			h.logger.Warn("invalid quiz callback", zap.String("data", data.Raw))
			break
		}
		_ = h.withErrorHandling(h.handleQuizTopic(cb.From.ID, idx))(ctx, chatID)

	case actionStats:
		_ = h.withErrorHandling(h.handleStats(cb.From.ID))(ctx, chatID)

	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	h.request(tgbotapi.NewCallback(cb.ID, notice))
}

// handleAnswerCallback grades a multiple-choice option and returns a toast text.
func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) string {
	chatID := cb.Message.Chat.ID

	params, ok := parseAnswerParams(data.Params)
	if !ok {
		h.logger.Warn("invalid answer callback", zap.String("data", data.Raw))
		return ""
	}

	res, err := h.quizService.SubmitOption(ctx, cb.From.ID, params.SessionID, params.Order, params.Index)
	switch {
	case errors.Is(err, service.ErrStaleAnswer),
		errors.Is(err, service.ErrNoActiveSession),
		errors.Is(err, service.ErrInvalidOption),
		errors.Is(err, service.ErrWrongQuestionType):
		h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, emptyKeyboard()))
		return msgStaleAnswer
	case err != nil:
		h.logger.Error("failed to submit option",
			zap.Int64("user_id", cb.From.ID),
			zap.Error(err),
		)
		_ = h.send(newHTMLMessage(chatID, msgInternalError))
		return ""
	}

	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, emptyKeyboard()))

	if err := h.sendResult(ctx, chatID, res); err != nil {
		h.logger.Error("failed to send answer result",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}

	return ""
}
