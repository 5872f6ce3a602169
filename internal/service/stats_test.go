package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	domainerrors "github.com/leaflogapp/leaflog-server/internal/errors"
)

// seedFourDays loads the canonical four-day history: 15 pages, a rest
// day, 40 pages, 5 pages.
func seedFourDays(t *testing.T, env *testEnv, userID, bookID string) {
	t.Helper()

	env.logDay(t, userID, bookID, "2024-01-01", 15)
	env.logDay(t, userID, bookID, "2024-01-02", 0)
	env.logDay(t, userID, bookID, "2024-01-03", 40)
	env.logDay(t, userID, bookID, "2024-01-04", 5)
}

func TestStreaks_FourDayHistory(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	book := env.addBook(t, userID, "Dune")
	seedFourDays(t, env, userID, book.ID)

	svc := env.statsService(t, "2024-01-04")

	streaks, err := svc.Streaks(context.Background(), userID)
	require.NoError(t, err)

	// The zero-page day breaks the chain: Jan 3-4 is the live streak.
	assert.Equal(t, 2, streaks.CurrentStreakDays)
	assert.Equal(t, 2, streaks.LongestStreakDays)
	assert.Equal(t, "Starting", streaks.Level)
	require.NotNil(t, streaks.DaysToNextMilestone)
	assert.Equal(t, 1, *streaks.DaysToNextMilestone)
	require.NotNil(t, streaks.NextMilestone)
	assert.Equal(t, "3-day streak", *streaks.NextMilestone)
}

func TestStreaks_GraceWindow(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	book := env.addBook(t, userID, "Dune")

	env.logDay(t, userID, book.ID, "2024-01-03", 40)
	env.logDay(t, userID, book.ID, "2024-01-04", 5)

	// Nothing logged on the 5th yet: the streak survives one day.
	svc := env.statsService(t, "2024-01-05")
	streaks, err := svc.Streaks(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, streaks.CurrentStreakDays)

	// By the 6th it's gone.
	svc = env.statsService(t, "2024-01-06")
	streaks, err = svc.Streaks(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, streaks.CurrentStreakDays)
	assert.Equal(t, 2, streaks.LongestStreakDays)
}

func TestStreaks_EmptyHistory(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)

	svc := env.statsService(t, "2024-01-04")
	streaks, err := svc.Streaks(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 0, streaks.CurrentStreakDays)
	assert.Equal(t, 0, streaks.LongestStreakDays)
	assert.Equal(t, "", streaks.Level)
	assert.NotEmpty(t, streaks.Message)
}

func TestSummary_FourDayHistory(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	book := env.addBook(t, userID, "Dune")
	seedFourDays(t, env, userID, book.ID)

	svc := env.statsService(t, "2024-01-04")

	summary, err := svc.Summary(context.Background(), userID, "all")
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 60, summary.TotalPagesRead)
	assert.Equal(t, 3, summary.TotalDaysRead) // the rest day doesn't count
	assert.InDelta(t, 20.0, summary.AveragePagesPerDay, 0.0001)
	assert.Equal(t, 40, summary.MaxPagesInDay)
	require.NotNil(t, summary.MostActiveDate)
	assert.Equal(t, "2024-01-03", domain.DayKey(*summary.MostActiveDate))
}

func TestSummary_CountsDistinctBooksPerDay(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	first := env.addBook(t, userID, "Dune")
	second := env.addBook(t, userID, "Hyperion")

	// Two books touched the same day, neither finished; one of them
	// again the next day.
	env.logDay(t, userID, first.ID, "2024-01-03", 10)
	env.logDay(t, userID, second.ID, "2024-01-03", 20)
	env.logDay(t, userID, first.ID, "2024-01-04", 5)

	svc := env.statsService(t, "2024-01-04")

	summary, err := svc.Summary(context.Background(), userID, "all")
	require.NoError(t, err)
	require.NotNil(t, summary)

	// 2 distinct books on the 3rd + 1 on the 4th.
	assert.Equal(t, 3, summary.UniqueBooksRead)
}

func TestSummaryRange_ExplicitBounds(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	book := env.addBook(t, userID, "Dune")
	seedFourDays(t, env, userID, book.ID)

	svc := env.statsService(t, "2024-01-04")

	summary, err := svc.SummaryRange(context.Background(), userID, "2024-01-03", "2024-01-04")
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 45, summary.TotalPagesRead)
	assert.Equal(t, 2, summary.TotalDaysRead)
	assert.Equal(t, "2024-01-03", domain.DayKey(summary.StartDate))

	// Open start reaches back through all history.
	summary, err = svc.SummaryRange(context.Background(), userID, "", "2024-01-02")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 15, summary.TotalPagesRead)
}

func TestSummaryRange_Validation(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	ctx := context.Background()

	svc := env.statsService(t, "2024-01-04")

	_, err := svc.SummaryRange(ctx, userID, "not-a-day", "")
	require.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.SummaryRange(ctx, userID, "2024-01-04", "2024-01-01")
	require.ErrorIs(t, err, domainerrors.ErrValidation)

	// A valid but empty range is nil, not an error.
	summary, err := svc.SummaryRange(ctx, userID, "2024-01-01", "2024-01-02")
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestSummary_WeekWindowExcludesOlderDays(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	book := env.addBook(t, userID, "Dune")

	// 2024-01-10 is a Wednesday; the ISO week starts Monday the 8th.
	env.logDay(t, userID, book.ID, "2024-01-05", 100)
	env.logDay(t, userID, book.ID, "2024-01-08", 10)
	env.logDay(t, userID, book.ID, "2024-01-10", 20)

	svc := env.statsService(t, "2024-01-10")

	summary, err := svc.Summary(context.Background(), userID, "week")
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 30, summary.TotalPagesRead)
	assert.Equal(t, domain.StatsPeriodWeek, summary.Period)
}

func TestSummary_EmptyPeriodIsNil(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)

	svc := env.statsService(t, "2024-01-04")

	summary, err := svc.Summary(context.Background(), userID, "month")
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestSummary_UnknownPeriod(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)

	svc := env.statsService(t, "2024-01-04")

	_, err := svc.Summary(context.Background(), userID, "fortnight")
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestHeatmap_FourDayHistory(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	book := env.addBook(t, userID, "Dune")
	seedFourDays(t, env, userID, book.ID)

	svc := env.statsService(t, "2024-01-04")

	cells, err := svc.Heatmap(context.Background(), userID, 7, "")
	require.NoError(t, err)
	require.Len(t, cells, 7)

	// Oldest first, ending today.
	assert.Equal(t, "2023-12-29", domain.DayKey(cells[0].Date))
	assert.Equal(t, "2024-01-04", domain.DayKey(cells[6].Date))

	// Policy "a" (10/30/60) levels for 15, 0, 40, 5.
	assert.Equal(t, 2, cells[3].Level)
	assert.Equal(t, 0, cells[4].Level)
	assert.Equal(t, 3, cells[5].Level)
	assert.Equal(t, 1, cells[6].Level)
}

func TestHeatmap_PolicyOverride(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	book := env.addBook(t, userID, "Dune")
	env.logDay(t, userID, book.ID, "2024-01-04", 28)

	svc := env.statsService(t, "2024-01-04")

	// 28 pages: level 2 under policy "a" (breaks 10/30/60), level 3
	// under policy "b" (breaks 10/25/50).
	cells, err := svc.Heatmap(context.Background(), userID, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cells[0].Level)

	cells, err = svc.Heatmap(context.Background(), userID, 1, "b")
	require.NoError(t, err)
	assert.Equal(t, 3, cells[0].Level)

	_, err = svc.Heatmap(context.Background(), userID, 1, "c")
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestHeatmap_DefaultWindowAndCap(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)

	svc := env.statsService(t, "2024-01-04")

	cells, err := svc.Heatmap(context.Background(), userID, 0, "")
	require.NoError(t, err)
	assert.Len(t, cells, 84) // configured default

	_, err = svc.Heatmap(context.Background(), userID, 1000, "")
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}
