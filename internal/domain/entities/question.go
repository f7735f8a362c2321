package entities

// QuestionType determines how a question is presented and graded.
type QuestionType string

const (
	QuestionTypeFillBlank      QuestionType = "fill_blank"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeFillBlank, QuestionTypeMultipleChoice:
		return true
	}
	return false
}

// Question is a single item of the question bank.
type Question struct {
	ID              string       `json:"id"`               // stable question identifier
	Topic           string       `json:"topic"`            // topic used to build themed quizzes
	Type            QuestionType `json:"type"`             // fill_blank or multiple_choice
	Prompt          string       `json:"prompt"`           // question text shown to the user
	Options         []string     `json:"options"`          // choices for multiple_choice questions
	CorrectAnswer   string       `json:"correct_answer"`   // canonical answer
	AcceptedAnswers []string     `json:"accepted_answers"` // alternative spellings accepted as correct
	Explanation     string       `json:"explanation"`      // optional note shown after answering
}

// Answers returns every answer accepted for the question, canonical one first.
func (q *Question) Answers() []string {
	answers := make([]string, 0, 1+len(q.AcceptedAnswers))
	if q.CorrectAnswer != "" {
		answers = append(answers, q.CorrectAnswer)
	}
	for _, a := range q.AcceptedAnswers {
		if a != "" {
			answers = append(answers, a)
		}
	}
	return answers
}
