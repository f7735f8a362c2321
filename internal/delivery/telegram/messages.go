// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-quiz-bot/internal/service"
)

const (
	msgWelcome = "Ас-саляму алейкум! 👋\n\n" +
		"Это бот-викторина на арабском языке. Отвечайте на вопросы, выбирая вариант или вписывая слово.\n\n" +
		"Проверка ответа не обращает внимания на огласовки, знаки препинания и привычные замены букв " +
		"(ة/ه, أ/إ/آ/ا, ى/ي), поэтому «مكه» засчитывается как «مكة».\n\n" +
		"/quiz — начать квиз\n/help — помощь"
	msgHelp = "Доступные команды:\n\n" +
		"/quiz — квиз по всем темам\n" +
		"/quiz тема — квиз по одной теме\n" +
		"/topics — список тем\n" +
		"/stop — прервать текущий квиз\n" +
		"/stats — статистика ответов\n" +
		"/normalize текст — показать, как бот видит ваш ответ"
	msgUnknownCommand = "Неизвестная команда. Наберите /help, чтобы увидеть список команд."
	msgInternalError  = "Что‑то пошло не так. Попробуйте позже."
	msgNoQuestions    = "По этой теме пока нет вопросов. Посмотрите /topics."
	msgNoTopics       = "Темы пока не добавлены. Начните смешанный квиз: /quiz"
	msgNoActiveQuiz   = "Сейчас нет активного квиза. Начните новый: /quiz"
	msgQuizStopped    = "Квиз остановлен. Начать заново: /quiz"
	msgUseButtons     = "Для этого вопроса выберите один из вариантов на кнопках."
	msgStaleAnswer    = "Этот вопрос уже неактуален."
	msgNormalizeUsage = "Использование: /normalize текст"
	msgTypeAnswer     = "Напишите ответ сообщением."
	msgTopicsHeader   = "Выберите тему:"
	btnMixedQuiz      = "🎲 Все темы"
	btnNewQuiz        = "🔄 Новый квиз"
	btnStats          = "📊 Статистика"
)

const (
	lrm = "\u200E"
	rlm = "\u200F"
)

// formatQuestion renders the question text shown to the user.
func formatQuestion(session *entities.QuizSession, q *entities.Question) string {
	var sb strings.Builder

	sb.WriteString(lrm)
	sb.WriteString(bold(fmt.Sprintf("Вопрос %d/%d", session.CurrentQuestionNum, session.TotalQuestions)))
	sb.WriteString("\n\n")
	sb.WriteString(rlm)
	sb.WriteString(esc(q.Prompt))

	if q.Type == entities.QuestionTypeFillBlank {
		sb.WriteString("\n\n<i>")
		sb.WriteString(msgTypeAnswer)
		sb.WriteString("</i>")
	}

	return sb.String()
}

// formatVerdict renders feedback for an answered question.
func formatVerdict(res *service.AnswerResult) string {
	var sb strings.Builder

	if res.Verdict.IsCorrect {
		sb.WriteString("✅ Верно!")
	} else {
		sb.WriteString("❌ Неверно.\n")
		sb.WriteString("Правильный ответ: ")
		sb.WriteString(bold(res.Question.CorrectAnswer))

		if res.Verdict.ShowHint {
			sb.WriteString("\n\n")
			sb.WriteString(fmt.Sprintf(
				"Ваш ответ близок к «%s» (совпадение %.0f%%). Проверьте написание.",
				esc(res.Verdict.ClosestMatch),
				res.Verdict.Score*100,
			))
		}
	}

	if res.Question.Explanation != "" {
		sb.WriteString("\n\n💡 ")
		sb.WriteString(esc(res.Question.Explanation))
	}

	return sb.String()
}

// formatQuizSummary renders the final result of a completed session.
func formatQuizSummary(session *entities.QuizSession) string {
	percent := 0.0
	if session.TotalQuestions > 0 {
		percent = float64(session.CorrectAnswers) / float64(session.TotalQuestions) * 100
	}

	return fmt.Sprintf(
		"🏁 %s\n\nПравильных ответов: %d из %d (%.1f%%)",
		bold("Квиз завершён!"),
		session.CorrectAnswers,
		session.TotalQuestions,
		percent,
	)
}

// formatStats renders the answer statistics of a user.
func formatStats(stats *entities.UserStats) string {
	return fmt.Sprintf(
		"📊 %s\n\nОтветов: %d\nПравильных: %d (%.1f%%)\nЗавершённых квизов: %d",
		bold("Статистика"),
		stats.Answered,
		stats.Correct,
		stats.Accuracy(),
		stats.CompletedSessions,
	)
}

// formatInspection renders how the answer checker sees a text.
func formatInspection(in service.Inspection) string {
	var sb strings.Builder

	sb.WriteString(bold("Исходный текст:"))
	sb.WriteString(" ")
	sb.WriteString(esc(in.Original))
	sb.WriteString("\n")
	sb.WriteString(bold("После нормализации:"))
	sb.WriteString(" <code>")
	sb.WriteString(esc(in.Normalized))
	sb.WriteString("</code>")

	if len(in.Variations) > 1 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Варианты написания:"))
		for _, v := range in.Variations {
			sb.WriteString("\n• ")
			sb.WriteString(esc(v))
		}
	}

	return sb.String()
}
