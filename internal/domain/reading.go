package domain

import "time"

// DayKeyLayout is the canonical civil-date format used for daily records.
const DayKeyLayout = "2006-01-02"

// Day truncates a time to midnight in its own location.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DayKey formats a time as its civil-date key, e.g. "2024-01-03".
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a civil-date key back into a midnight time.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(DayKeyLayout, key)
}

// ReadingSession is one logged stretch of reading: a user read some
// pages of a book on a given day. Sessions are the raw events; the
// store aggregates them into DailyRecords at write time.
type ReadingSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	BookID       string    `json:"book_id"`
	Date         time.Time `json:"date"` // civil day the reading happened
	PagesRead    int       `json:"pages_read"`
	DurationMins int       `json:"duration_mins,omitempty"`
	FinishedBook bool      `json:"finished_book,omitempty"`
	LoggedAt     time.Time `json:"logged_at"`
}

// DailyRecord is the per-day aggregate the statistics engine consumes.
// One row per user per day; repeated sessions on the same day fold into
// the same record.
type DailyRecord struct {
	UserID string `json:"user_id"`
	// Date is the civil day at midnight.
	Date time.Time `json:"date"`
	// PagesRead is the total pages read that day. Zero means the day is
	// recorded but counts as inactive for streaks and summaries.
	PagesRead int `json:"pages_read"`
	// BooksReadCount is how many distinct books were touched that day.
	// Summing it across days intentionally counts a book once per day
	// it was read.
	BooksReadCount int `json:"books_read_count"`
}

// Active reports whether the day counts toward streaks.
func (r *DailyRecord) Active() bool {
	return r.PagesRead > 0
}
