package domain

import "time"

// StatsPeriod represents a time window for statistics queries.
type StatsPeriod string

// StatsPeriod constants for time window queries.
const (
	StatsPeriodDay     StatsPeriod = "day"
	StatsPeriodWeek    StatsPeriod = "week"
	StatsPeriodMonth   StatsPeriod = "month"
	StatsPeriodYear    StatsPeriod = "year"
	StatsPeriodAllTime StatsPeriod = "all"
)

// Valid returns true if the period is a recognized value.
func (p StatsPeriod) Valid() bool {
	switch p {
	case StatsPeriodDay, StatsPeriodWeek, StatsPeriodMonth, StatsPeriodYear, StatsPeriodAllTime:
		return true
	default:
		return false
	}
}

// Bounds returns the start and end times for a period relative to now.
// Start is inclusive, end is exclusive. End is always end of today
// (midnight tomorrow). Weeks start on Monday (ISO).
func (p StatsPeriod) Bounds(now time.Time) (start, end time.Time) {
	year, month, day := now.Date()
	loc := now.Location()
	today := time.Date(year, month, day, 0, 0, 0, 0, loc)
	endOfToday := today.Add(24 * time.Hour)

	switch p {
	case StatsPeriodDay:
		return today, endOfToday
	case StatsPeriodWeek:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday
		}
		return today.AddDate(0, 0, -(weekday - 1)), endOfToday
	case StatsPeriodMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc), endOfToday
	case StatsPeriodYear:
		return time.Date(year, 1, 1, 0, 0, 0, 0, loc), endOfToday
	case StatsPeriodAllTime:
		return time.Time{}, endOfToday // zero time = beginning of time
	default:
		return today, endOfToday
	}
}

// StreakStats describes a user's reading streaks with encouragement
// metadata. Recomputed on demand, never persisted.
type StreakStats struct {
	// CurrentStreakDays counts consecutive active days ending today, or
	// ending yesterday when today has no activity yet.
	CurrentStreakDays int `json:"current_streak_days"`
	// LongestStreakDays is the longest consecutive run in history.
	LongestStreakDays int `json:"longest_streak_days"`
	// Level is the badge tier for the current streak, empty at zero.
	Level string `json:"level"`
	// Message is the encouragement line for the current streak band.
	Message string `json:"message"`
	// DaysToNextMilestone is how many days remain until the next rung,
	// nil once past the final milestone.
	DaysToNextMilestone *int `json:"days_to_next_milestone,omitempty"`
	// NextMilestone names the next rung, nil once past the final one.
	NextMilestone *string `json:"next_milestone,omitempty"`
}

// PeriodSummary aggregates reading activity over a date range.
type PeriodSummary struct {
	Period    StatsPeriod `json:"period,omitempty"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`

	TotalPagesRead int `json:"total_pages_read"`
	// TotalDaysRead counts days with at least one page read.
	TotalDaysRead int `json:"total_days_read"`
	// UniqueBooksRead sums per-day book counts. A book read on three
	// days contributes three; the name matches the mobile client's
	// historical field, not set semantics.
	UniqueBooksRead int `json:"unique_books_read"`
	// AveragePagesPerDay is pages over active days, 0 when no activity.
	AveragePagesPerDay float64 `json:"average_pages_per_day"`
	MaxPagesInDay      int     `json:"max_pages_in_day"`
	// MostActiveDate is the earliest day with the max page count, nil
	// when the range has no activity.
	MostActiveDate *time.Time `json:"most_active_date,omitempty"`
}

// HeatmapDay is one cell in the reading heatmap.
type HeatmapDay struct {
	Date      time.Time `json:"date"`
	PagesRead int       `json:"pages_read"`
	// Level is the activity level 0-4 used for the visual gradient.
	Level int `json:"level"`
}
