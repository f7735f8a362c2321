// Package textnorm normalizes Arabic (and general) text so that answers can be
// compared across common orthographic variations: diacritics, letter-shape
// variants, punctuation and whitespace.
//
// All functions are pure and safe for concurrent use.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Arabic letters touched by the normalization rules.
const (
	alef            = 'ا' // U+0627
	alefHamzaAbove  = 'أ' // U+0623
	alefHamzaBelow  = 'إ' // U+0625
	alefMadda       = 'آ' // U+0622
	tehMarbuta      = 'ة' // U+0629
	heh             = 'ه' // U+0647
	alefMaksura     = 'ى' // U+0649
	yeh             = 'ي' // U+064A
	hamza           = 'ء' // U+0621
	wawHamzaAbove   = 'ؤ' // U+0624
	yehHamzaAbove   = 'ئ' // U+0626
	superscriptAlef = '\u0670'
)

// strippedPunctuation is the fixed set of marks removed before comparison.
// Marks outside this set survive normalization.
const strippedPunctuation = ".,،؛!?؟-_(){}[]\"'"

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithStrict sets strict mode. Strict mode is accepted for forward
// compatibility and currently produces the same output as the default mode.
func WithStrict(strict bool) Option {
	return func(n *Normalizer) {
		n.strict = strict
	}
}

// Normalizer produces canonical forms of text and compares answers using them.
type Normalizer struct {
	strict bool
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Strict reports whether strict mode is enabled.
func (n *Normalizer) Strict() bool {
	return n.strict
}

// Normalize returns the canonical form of text:
//
//  1. lowercase
//  2. strip tashkeel (U+064B..U+0652, U+0670)
//  3. أ إ آ -> ا
//  4. ة -> ه
//  5. ى -> ي
//  6. ؤ ئ -> ء
//  7. strip punctuation
//  8. collapse whitespace runs into a single space
//  9. trim
//
// Empty input yields an empty string.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(text)

	// Steps 2-7 are single-rune rules whose outputs never feed another rule,
	// so they run as one chained pass. The chain keeps internal buffers and is
	// built per call.
	t := transform.Chain(
		runes.Remove(runes.Predicate(isTashkeel)),
		runes.Map(foldLetter),
		runes.Remove(runes.Predicate(isStrippedPunctuation)),
	)
	// runes transformers never fail.
	s, _, _ = transform.String(t, s)

	return collapseSpace(s)
}

// Equivalent reports whether a and b have the same normalized form.
func (n *Normalizer) Equivalent(a, b string) bool {
	return n.Normalize(a) == n.Normalize(b)
}

// IsAnswerCorrect reports whether userAnswer matches any of the accepted
// answers after normalization. An empty answer or an empty list never matches.
func (n *Normalizer) IsAnswerCorrect(userAnswer string, accepted []string) bool {
	if userAnswer == "" || len(accepted) == 0 {
		return false
	}

	user := n.Normalize(userAnswer)
	for _, candidate := range accepted {
		if n.Normalize(candidate) == user {
			return true
		}
	}

	return false
}

func isTashkeel(r rune) bool {
	return (r >= 0x064B && r <= 0x0652) || r == superscriptAlef
}

func isStrippedPunctuation(r rune) bool {
	return strings.ContainsRune(strippedPunctuation, r)
}

func foldLetter(r rune) rune {
	switch r {
	case alefHamzaAbove, alefHamzaBelow, alefMadda:
		return alef
	case tehMarbuta:
		return heh
	case alefMaksura:
		return yeh
	case wawHamzaAbove, yehHamzaAbove:
		return hamza
	}
	return r
}

// isSpace also treats the byte order mark as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}
