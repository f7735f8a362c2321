package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
)

// buildOptionsKeyboard builds one button per option of a multiple-choice question.
func buildOptionsKeyboard(session *entities.QuizSession, q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, buildAnswerCallback(session.ID, session.CurrentQuestionNum, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildTopicsKeyboard builds a keyboard for choosing the quiz topic.
func buildTopicsKeyboard(topics []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(topics)+1)
	for i, topic := range topics {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(topic, buildQuizStartCallback(i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnMixedQuiz, buildQuizStartCallback(-1)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
// topicIndex selects the topic of the next quiz, -1 for a mixed one.
func buildQuizResultKeyboard(topicIndex int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnNewQuiz, buildQuizStartCallback(topicIndex)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnStats, buildStatsCallback()),
		),
	)
}

// emptyKeyboard removes inline buttons from an edited message.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}
}
