package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leaflogapp/leaflog-server/internal/config"
	"github.com/leaflogapp/leaflog-server/internal/domain"
	domainerrors "github.com/leaflogapp/leaflog-server/internal/errors"
	"github.com/leaflogapp/leaflog-server/internal/stats"
	"github.com/leaflogapp/leaflog-server/internal/store/sqlite"
)

// maxHeatmapDays caps the heatmap window at one year.
const maxHeatmapDays = 366

// StatsService computes streaks, summaries, and heatmaps from the
// daily records the reading log maintains. All computation is read-side
// and on demand; nothing here writes.
type StatsService struct {
	history       *sqlite.Store
	defaultPolicy stats.Policy
	heatmapDays   int
	logger        *slog.Logger
	now           func() time.Time
}

// StatsOption configures a StatsService.
type StatsOption func(*StatsService)

// WithClock overrides the service clock, for tests.
func WithClock(now func() time.Time) StatsOption {
	return func(s *StatsService) {
		s.now = now
	}
}

// NewStatsService creates a stats service with the configured activity
// policy and heatmap window.
func NewStatsService(history *sqlite.Store, cfg config.StatsConfig, logger *slog.Logger, opts ...StatsOption) (*StatsService, error) {
	policy, err := stats.PolicyByName(cfg.ActivityPolicy)
	if err != nil {
		return nil, fmt.Errorf("resolve activity policy: %w", err)
	}

	s := &StatsService{
		history:       history,
		defaultPolicy: policy,
		heatmapDays:   cfg.HeatmapDays,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Streaks returns the user's current and longest streaks with badge
// and milestone advice.
func (s *StatsService) Streaks(ctx context.Context, userID string) (*domain.StreakStats, error) {
	records, err := s.history.GetDailyRecords(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("get daily records: %w", err)
	}

	result := stats.Advise(stats.CurrentStreak(records, s.now()))
	result.LongestStreakDays = stats.LongestStreak(records)

	return &result, nil
}

// Summary aggregates the user's reading over a period. Returns nil
// when the period holds no records at all.
func (s *StatsService) Summary(ctx context.Context, userID string, period string) (*domain.PeriodSummary, error) {
	p := domain.StatsPeriod(period)
	if period == "" {
		p = domain.StatsPeriodAllTime
	}
	if !p.Valid() {
		return nil, domainerrors.Validationf("unknown stats period %q", period)
	}

	now := s.now()
	start, end := p.Bounds(now)

	from := ""
	if !start.IsZero() {
		from = domain.DayKey(start)
	}
	// end is exclusive midnight tomorrow; the last included day is today.
	to := domain.DayKey(end.AddDate(0, 0, -1))

	records, err := s.history.GetDailyRecords(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get daily records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	summary := stats.Summarize(records)
	summary.Period = p
	summary.StartDate = start
	summary.EndDate = end

	return &summary, nil
}

// SummaryRange aggregates reading between two explicit days, both
// inclusive. An empty from leaves history open at the start; an empty
// to defaults to today. Returns nil when the range holds no records.
func (s *StatsService) SummaryRange(ctx context.Context, userID, from, to string) (*domain.PeriodSummary, error) {
	var start time.Time
	if from != "" {
		day, err := domain.ParseDayKey(from)
		if err != nil {
			return nil, domainerrors.Validationf("invalid day %q, want YYYY-MM-DD", from)
		}
		start = day
	}

	end := domain.Day(s.now())
	if to != "" {
		day, err := domain.ParseDayKey(to)
		if err != nil {
			return nil, domainerrors.Validationf("invalid day %q, want YYYY-MM-DD", to)
		}
		end = day
	}
	if !start.IsZero() && end.Before(start) {
		return nil, domainerrors.Validationf("range end %q precedes start %q", to, from)
	}

	records, err := s.history.GetDailyRecords(ctx, userID, from, domain.DayKey(end))
	if err != nil {
		return nil, fmt.Errorf("get daily records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	summary := stats.Summarize(records)
	summary.StartDate = start
	summary.EndDate = end.AddDate(0, 0, 1) // exclusive, consistent with Bounds

	return &summary, nil
}

// DailyRecords returns the raw per-day aggregates within [from, to]
// inclusive, oldest first. Empty bounds leave that side open.
func (s *StatsService) DailyRecords(ctx context.Context, userID, from, to string) ([]domain.DailyRecord, error) {
	for _, key := range []string{from, to} {
		if key == "" {
			continue
		}
		if _, err := domain.ParseDayKey(key); err != nil {
			return nil, domainerrors.Validationf("invalid day %q, want YYYY-MM-DD", key)
		}
	}

	records, err := s.history.GetDailyRecords(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get daily records: %w", err)
	}
	return records, nil
}

// Heatmap returns a dense activity calendar of windowDays cells ending
// today. days <= 0 uses the configured default window; policyName
// overrides the configured activity policy for this call.
func (s *StatsService) Heatmap(ctx context.Context, userID string, days int, policyName string) ([]domain.HeatmapDay, error) {
	policy := s.defaultPolicy
	if policyName != "" {
		var err error
		policy, err = stats.PolicyByName(policyName)
		if err != nil {
			return nil, err
		}
	}

	if days <= 0 {
		days = s.heatmapDays
	}
	if days > maxHeatmapDays {
		return nil, domainerrors.Validationf("heatmap window cannot exceed %d days", maxHeatmapDays)
	}

	now := s.now()
	today := domain.Day(now)
	from := domain.DayKey(today.AddDate(0, 0, -(days - 1)))

	records, err := s.history.GetDailyRecords(ctx, userID, from, domain.DayKey(today))
	if err != nil {
		return nil, fmt.Errorf("get daily records: %w", err)
	}

	return stats.Heatmap(records, days, now, policy)
}
