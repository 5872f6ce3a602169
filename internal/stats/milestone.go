package stats

import (
	"github.com/leaflogapp/leaflog-server/internal/domain"
)

// milestone is one rung on the streak ladder.
type milestone struct {
	days int
	name string
}

// The ladder ends at 100; past that there is nothing left to chase.
var milestones = []milestone{
	{3, "3-day streak"},
	{7, "week streak"},
	{14, "two-week streak"},
	{30, "month streak"},
	{100, "100-day streak"},
}

// streakLevel returns the badge tier for a streak length. Tiers are
// inclusive lower bounds; zero gets no badge.
func streakLevel(days int) string {
	switch {
	case days <= 0:
		return ""
	case days < 3:
		return "Starting"
	case days < 7:
		return "Going"
	case days < 14:
		return "Strong"
	case days < 30:
		return "Blazing"
	default:
		return "On Fire"
	}
}

// streakMessage returns the encouragement line for a streak band.
func streakMessage(days int) string {
	switch {
	case days <= 0:
		return "Log some reading to start a streak!"
	case days == 1:
		return "Great start! Read again tomorrow to keep it going."
	case days < 7:
		return "You're building a habit. Keep turning pages!"
	case days < 14:
		return "A full week and counting. Impressive!"
	case days < 30:
		return "Two weeks strong. This is a real habit now."
	case days < 100:
		return "A month of reading every day. Incredible!"
	default:
		return "100+ days. You're a reading legend."
	}
}

// Advise turns a current streak length into badge, message, and
// next-milestone fields. Both milestone fields are nil once the
// streak passes the final rung.
func Advise(currentStreak int) domain.StreakStats {
	advice := domain.StreakStats{
		CurrentStreakDays: currentStreak,
		Level:             streakLevel(currentStreak),
		Message:           streakMessage(currentStreak),
	}

	for _, m := range milestones {
		if m.days > currentStreak {
			daysLeft := m.days - currentStreak
			name := m.name
			advice.DaysToNextMilestone = &daysLeft
			advice.NextMilestone = &name
			break
		}
	}

	return advice
}
