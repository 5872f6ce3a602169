package stats

import (
	"time"

	"github.com/leaflogapp/leaflog-server/internal/domain"
)

// day parses "2006-01-02" into a midnight UTC time. Panics on bad input
// so test tables stay terse.
func day(s string) time.Time {
	t, err := domain.ParseDayKey(s)
	if err != nil {
		panic(err)
	}
	return t
}

// rec builds a daily record. Pass a book count as the optional third
// value; it defaults to 1 for active days.
func rec(date string, pages int, books ...int) domain.DailyRecord {
	bookCount := 0
	if pages > 0 {
		bookCount = 1
	}
	if len(books) > 0 {
		bookCount = books[0]
	}
	return domain.DailyRecord{
		UserID:         "usr-test",
		Date:           day(date),
		PagesRead:      pages,
		BooksReadCount: bookCount,
	}
}
