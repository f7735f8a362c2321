package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot         *tgbotapi.BotAPI
	logger      *zap.Logger
	userService UserService
	quizService QuizService
	inspector   AnswerInspector
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	userService UserService,
	quizService QuizService,
	inspector AnswerInspector,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		userService: userService,
		quizService: quizService,
		inspector:   inspector,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if err := h.userService.EnsureUser(ctx, from.ID, chatID, from.UserName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start":
			_ = h.send(newHTMLMessage(chatID, esc(msgWelcome)))

		case "help":
			_ = h.send(newHTMLMessage(chatID, esc(msgHelp)))

		case "quiz":
			_ = h.withErrorHandling(h.handleQuiz(from.ID, args))(ctx, chatID)

		case "topics":
			_ = h.withErrorHandling(h.handleTopics())(ctx, chatID)

		case "stop":
			_ = h.withErrorHandling(h.handleStop(from.ID))(ctx, chatID)

		case "stats":
			_ = h.withErrorHandling(h.handleStats(from.ID))(ctx, chatID)

		case "normalize":
			_ = h.withErrorHandling(h.handleNormalize(args))(ctx, chatID)

		default:
			_ = h.send(newHTMLMessage(chatID, esc(msgUnknownCommand)))
		}

		return
	}

	_ = h.withErrorHandling(h.handleAnswer(from.ID, update.Message.Text))(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// request performs calls whose response carries no message, such as callback answers.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Warn("telegram request failed",
			zap.Error(err),
		)
	}
}
