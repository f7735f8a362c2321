package entities

// UserStats aggregates answer history of a user.
type UserStats struct {
	Answered          int
	Correct           int
	CompletedSessions int
}

// Accuracy returns the share of correct answers in percent.
func (s UserStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered) * 100
}
