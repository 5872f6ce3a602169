package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	domainerrors "github.com/leaflogapp/leaflog-server/internal/errors"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStreaks",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats/streaks",
		Summary:     "Get reading streaks",
		Description: "Returns current and longest streaks with badge and milestone advice",
		Tags:        []string{"Statistics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetStreaks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSummary",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats/summary",
		Summary:     "Get reading summary",
		Description: "Aggregates reading activity over a period (day, week, month, year, all)",
		Tags:        []string{"Statistics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSummary)

	huma.Register(s.api, huma.Operation{
		OperationID: "getHeatmap",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats/heatmap",
		Summary:     "Get activity heatmap",
		Description: "Returns a dense activity calendar ending today, one cell per day",
		Tags:        []string{"Statistics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetHeatmap)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDailyRecords",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats/daily",
		Summary:     "Get daily reading records",
		Description: "Returns per-day reading aggregates within an optional date range",
		Tags:        []string{"Statistics"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetDailyRecords)
}

// === DTOs ===

// StreaksOutput wraps the streak stats for Huma.
type StreaksOutput struct {
	Body domain.StreakStats
}

// SummaryInput carries the period selector, or an explicit date range.
type SummaryInput struct {
	Period string `query:"period" doc:"Summary period (day, week, month, year, all). Defaults to all."`
	From   string `query:"from" doc:"Explicit start day (YYYY-MM-DD), inclusive. Excludes period."`
	To     string `query:"to" doc:"Explicit end day (YYYY-MM-DD), inclusive. Excludes period."`
}

// SummaryResponse contains the period summary, or null when the period
// holds no activity at all.
type SummaryResponse struct {
	Summary *domain.PeriodSummary `json:"summary" doc:"Aggregated reading activity, null when the period is empty"`
}

// SummaryOutput wraps the summary response for Huma.
type SummaryOutput struct {
	Body SummaryResponse
}

// HeatmapInput carries the window and policy selectors.
type HeatmapInput struct {
	Days   int    `query:"days" doc:"Window length in days, server default when omitted"`
	Policy string `query:"policy" doc:"Activity policy override (a or b)"`
}

// HeatmapOutput wraps the heatmap cells for Huma.
type HeatmapOutput struct {
	Body []domain.HeatmapDay
}

// DailyRecordsInput carries the optional date range.
type DailyRecordsInput struct {
	From string `query:"from" doc:"Start day (YYYY-MM-DD), inclusive"`
	To   string `query:"to" doc:"End day (YYYY-MM-DD), inclusive"`
}

// DailyRecordResponse is one day's reading aggregate.
type DailyRecordResponse struct {
	Date           string `json:"date" doc:"Day in YYYY-MM-DD format"`
	PagesRead      int    `json:"pages_read"`
	BooksReadCount int    `json:"books_read_count"`
}

// DailyRecordsOutput wraps the daily records for Huma.
type DailyRecordsOutput struct {
	Body []DailyRecordResponse
}

// === Handlers ===

func (s *Server) handleGetStreaks(ctx context.Context, _ *struct{}) (*StreaksOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	streaks, err := s.services.Stats.Streaks(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StreaksOutput{Body: *streaks}, nil
}

func (s *Server) handleGetSummary(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	var summary *domain.PeriodSummary
	if input.From != "" || input.To != "" {
		if input.Period != "" {
			return nil, domainerrors.Validation("period cannot be combined with from/to")
		}
		summary, err = s.services.Stats.SummaryRange(ctx, userID, input.From, input.To)
	} else {
		summary, err = s.services.Stats.Summary(ctx, userID, input.Period)
	}
	if err != nil {
		return nil, err
	}

	return &SummaryOutput{Body: SummaryResponse{Summary: summary}}, nil
}

func (s *Server) handleGetHeatmap(ctx context.Context, input *HeatmapInput) (*HeatmapOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	cells, err := s.services.Stats.Heatmap(ctx, userID, input.Days, input.Policy)
	if err != nil {
		return nil, err
	}

	return &HeatmapOutput{Body: cells}, nil
}

func (s *Server) handleGetDailyRecords(ctx context.Context, input *DailyRecordsInput) (*DailyRecordsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.services.Stats.DailyRecords(ctx, userID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	out := make([]DailyRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, DailyRecordResponse{
			Date:           domain.DayKey(rec.Date),
			PagesRead:      rec.PagesRead,
			BooksReadCount: rec.BooksReadCount,
		})
	}

	return &DailyRecordsOutput{Body: out}, nil
}
