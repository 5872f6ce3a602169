package stats

import (
	"slices"
	"time"

	"github.com/leaflogapp/leaflog-server/internal/domain"
)

// activeDays collapses records into a set of active civil-date keys.
// Duplicate records for one date should not occur (the store upserts),
// but if they do the last one in the list wins.
func activeDays(records []domain.DailyRecord) map[string]bool {
	byDay := make(map[string]*domain.DailyRecord, len(records))
	for i := range records {
		byDay[domain.DayKey(records[i].Date)] = &records[i]
	}

	active := make(map[string]bool, len(byDay))
	for key, rec := range byDay {
		if rec.Active() {
			active[key] = true
		}
	}
	return active
}

// CurrentStreak counts consecutive active days ending at today, with a
// one-day grace window: a streak whose last active day is yesterday is
// still alive, so a user who hasn't read yet today keeps their streak
// past midnight.
func CurrentStreak(records []domain.DailyRecord, today time.Time) int {
	active := activeDays(records)
	if len(active) == 0 {
		return 0
	}

	day := domain.Day(today)
	todayKey := domain.DayKey(day)
	yesterdayKey := domain.DayKey(day.AddDate(0, 0, -1))

	var anchor time.Time
	switch {
	case active[todayKey]:
		anchor = day
	case active[yesterdayKey]:
		anchor = day.AddDate(0, 0, -1)
	default:
		// Most recent active day is older than yesterday: broken.
		return 0
	}

	streak := 0
	for check := anchor; active[domain.DayKey(check)]; check = check.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive active days
// anywhere in the supplied history. Zero-activity days break runs and
// never count as a one-day run themselves.
func LongestStreak(records []domain.DailyRecord) int {
	active := activeDays(records)
	if len(active) == 0 {
		return 0
	}

	days := make([]string, 0, len(active))
	for key := range active {
		days = append(days, key)
	}
	slices.Sort(days)

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		curr, _ := domain.ParseDayKey(days[i])
		prev, _ := domain.ParseDayKey(days[i-1])

		if prev.AddDate(0, 0, 1).Equal(curr) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
