package stats

import (
	"slices"

	"github.com/leaflogapp/leaflog-server/internal/domain"
)

// Summarize aggregates a record list into a PeriodSummary. The caller
// sets the query-context fields (period, range); this fills only the
// aggregate numbers.
//
// All aggregates run over active days (pagesRead > 0): zero-activity
// records contribute nothing, and the average divides by active days
// rather than the calendar span. UniqueBooksRead sums per-day book
// counts without deduplicating across days.
func Summarize(records []domain.DailyRecord) domain.PeriodSummary {
	var summary domain.PeriodSummary

	sorted := make([]domain.DailyRecord, len(records))
	copy(sorted, records)
	slices.SortFunc(sorted, func(a, b domain.DailyRecord) int {
		return a.Date.Compare(b.Date)
	})

	for i := range sorted {
		rec := &sorted[i]
		if !rec.Active() {
			continue
		}

		summary.TotalPagesRead += rec.PagesRead
		summary.TotalDaysRead++
		summary.UniqueBooksRead += rec.BooksReadCount

		// Strictly greater keeps the earliest date on ties.
		if rec.PagesRead > summary.MaxPagesInDay {
			summary.MaxPagesInDay = rec.PagesRead
			mostActive := domain.Day(rec.Date)
			summary.MostActiveDate = &mostActive
		}
	}

	if summary.TotalDaysRead > 0 {
		summary.AveragePagesPerDay = float64(summary.TotalPagesRead) / float64(summary.TotalDaysRead)
	}

	return summary
}
