package textnorm

// Similarity scores how close a and b are after normalization.
//
// The score is positional: the number of indices at which both normalized
// forms hold the same rune, divided by the longer length. An insertion or
// deletion shifts every later rune out of alignment. Identical forms,
// including two empty ones, score 1.
func (n *Normalizer) Similarity(a, b string) float64 {
	na := n.Normalize(a)
	nb := n.Normalize(b)

	if na == nb {
		return 1.0
	}

	ra := []rune(na)
	rb := []rune(nb)

	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}

	matches := 0
	for i := range min(len(ra), len(rb)) {
		if ra[i] == rb[i] {
			matches++
		}
	}

	return float64(matches) / float64(longest)
}

// ClosestMatch returns the accepted answer with the highest Similarity to
// userAnswer together with its score. A perfect score returns immediately.
// Ties keep the earliest candidate. An empty answer or list yields ("", 0).
func (n *Normalizer) ClosestMatch(userAnswer string, accepted []string) (string, float64) {
	if userAnswer == "" || len(accepted) == 0 {
		return "", 0
	}

	best := accepted[0]
	bestScore := 0.0

	for _, candidate := range accepted {
		score := n.Similarity(userAnswer, candidate)
		if score == 1.0 {
			return candidate, 1.0
		}
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	return best, bestScore
}
