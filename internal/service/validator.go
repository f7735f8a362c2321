package service

import (
	"errors"

	"github.com/aliskhannn/arabic-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-quiz-bot/internal/textnorm"
)

var ErrInvalidOption = errors.New("invalid option")

// Verdict is the outcome of checking one answer.
type Verdict struct {
	IsCorrect    bool    // answer matched an accepted answer after normalization
	ClosestMatch string  // accepted answer most similar to the user's one
	Score        float64 // similarity between the answer and ClosestMatch
	ShowHint     bool    // wrong, but close enough to suggest ClosestMatch
}

// Inspection describes how a text is seen by the answer checker.
type Inspection struct {
	Original   string
	Normalized string
	Variations []string
}

// AnswerValidator validates user answers against accepted answers.
// Correctness is exact equality of normalized forms; similarity only
// decides whether a hint is shown.
type AnswerValidator struct {
	normalizer    *textnorm.Normalizer
	hintThreshold float64 // similarity required to suggest the closest answer
}

// NewAnswerValidator creates a new AnswerValidator.
func NewAnswerValidator(normalizer *textnorm.Normalizer, hintThreshold float64) *AnswerValidator {
	return &AnswerValidator{
		normalizer:    normalizer,
		hintThreshold: hintThreshold,
	}
}

// Validate checks a free-text answer against the accepted answers.
func (v *AnswerValidator) Validate(userAnswer string, accepted []string) Verdict {
	match, score := v.normalizer.ClosestMatch(userAnswer, accepted)

	verdict := Verdict{
		IsCorrect:    v.normalizer.IsAnswerCorrect(userAnswer, accepted),
		ClosestMatch: match,
		Score:        score,
	}
	verdict.ShowHint = !verdict.IsCorrect && match != "" && score > 0 && score >= v.hintThreshold

	return verdict
}

// ValidateQuestion checks a free-text answer to a fill-in-the-blank question.
func (v *AnswerValidator) ValidateQuestion(q *entities.Question, userAnswer string) Verdict {
	return v.Validate(userAnswer, q.Answers())
}

// ValidateOption checks the option selected for a multiple-choice question.
func (v *AnswerValidator) ValidateOption(q *entities.Question, selectedIndex int) (Verdict, error) {
	if selectedIndex < 0 || selectedIndex >= len(q.Options) {
		return Verdict{}, ErrInvalidOption
	}

	selected := q.Options[selectedIndex]

	return Verdict{
		IsCorrect:    v.normalizer.Equivalent(selected, q.CorrectAnswer),
		ClosestMatch: q.CorrectAnswer,
		Score:        v.normalizer.Similarity(selected, q.CorrectAnswer),
	}, nil
}

// Inspect reports the normalized form of text and its common spelling variants.
func (v *AnswerValidator) Inspect(text string) Inspection {
	return Inspection{
		Original:   text,
		Normalized: v.normalizer.Normalize(text),
		Variations: textnorm.CommonVariations(text),
	}
}
