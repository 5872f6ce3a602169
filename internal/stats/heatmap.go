package stats

import (
	"time"

	"github.com/leaflogapp/leaflog-server/internal/domain"
)

// Heatmap builds a dense activity calendar: exactly windowDays cells,
// one per day from today-(windowDays-1) through today, oldest first.
// Days without a record show as level 0, so the output is total over
// the window no matter how sparse the input is.
func Heatmap(records []domain.DailyRecord, windowDays int, today time.Time, policy Policy) ([]domain.HeatmapDay, error) {
	if windowDays <= 0 {
		return nil, nil
	}

	pagesByDay := make(map[string]int, len(records))
	for i := range records {
		pagesByDay[domain.DayKey(records[i].Date)] = records[i].PagesRead
	}

	day := domain.Day(today)
	cells := make([]domain.HeatmapDay, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		date := day.AddDate(0, 0, -i)
		pages := pagesByDay[domain.DayKey(date)]

		level, err := policy.Level(pages)
		if err != nil {
			return nil, err
		}

		cells = append(cells, domain.HeatmapDay{
			Date:      date,
			PagesRead: pages,
			Level:     level,
		})
	}
	return cells, nil
}
