package textnorm

var std = New()

// Normalize returns the canonical form of text using the default Normalizer.
func Normalize(text string) string {
	return std.Normalize(text)
}

// AreEquivalent reports whether a and b normalize to the same form.
func AreEquivalent(a, b string) bool {
	return std.Equivalent(a, b)
}

// IsAnswerCorrect reports whether userAnswer matches one of accepted.
func IsAnswerCorrect(userAnswer string, accepted []string) bool {
	return std.IsAnswerCorrect(userAnswer, accepted)
}

// SimilarityScore returns the positional similarity of a and b.
func SimilarityScore(a, b string) float64 {
	return std.Similarity(a, b)
}

// FindClosestMatch returns the best-scoring accepted answer and its score.
func FindClosestMatch(userAnswer string, accepted []string) (string, float64) {
	return std.ClosestMatch(userAnswer, accepted)
}
