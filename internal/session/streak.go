package session

// StreakStep is the streak length between announced milestones.
const StreakStep = 5

// recordStreak extends the streak on a correct answer and clears it otherwise.
func (s *SessionState) recordStreak(correct bool) {
	if !correct {
		s.Streak = 0
		return
	}
	s.Streak++
	if s.Streak > s.BestStreak {
		s.BestStreak = s.Streak
	}
}

// StreakMilestone reports whether n consecutive correct answers is worth
// announcing: 5, 10, 15, and so on.
func StreakMilestone(n int) bool {
	return n >= StreakStep && n%StreakStep == 0
}

// NextStreakMilestone returns the first milestone above current.
func NextStreakMilestone(current int) int {
	if current < 0 {
		current = 0
	}
	return (current/StreakStep + 1) * StreakStep
}
