package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakLevel_Buckets(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, ""},
		{1, "Starting"},
		{2, "Starting"},
		{3, "Going"},
		{6, "Going"},
		{7, "Strong"},
		{13, "Strong"},
		{14, "Blazing"},
		{29, "Blazing"},
		{30, "On Fire"},
		{365, "On Fire"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, streakLevel(tt.days), "days=%d", tt.days)
	}
}

func TestAdvise_NextMilestone(t *testing.T) {
	tests := []struct {
		days     int
		wantLeft int
	}{
		{0, 3},
		{1, 2},
		{2, 1},
		{3, 4},  // next rung is 7
		{7, 7},  // next rung is 14
		{14, 16},
		{30, 70},
		{99, 1},
	}

	for _, tt := range tests {
		advice := Advise(tt.days)
		require.NotNil(t, advice.DaysToNextMilestone, "days=%d", tt.days)
		require.NotNil(t, advice.NextMilestone, "days=%d", tt.days)
		assert.Equal(t, tt.wantLeft, *advice.DaysToNextMilestone, "days=%d", tt.days)
	}
}

func TestAdvise_PastFinalMilestone(t *testing.T) {
	for _, days := range []int{100, 101, 500} {
		advice := Advise(days)
		assert.Nil(t, advice.DaysToNextMilestone, "days=%d", days)
		assert.Nil(t, advice.NextMilestone, "days=%d", days)
		assert.Equal(t, "On Fire", advice.Level)
	}
}

func TestAdvise_MessageBands(t *testing.T) {
	// Message text is presentation detail; the banding is not. Each
	// band boundary must produce a different message from its neighbor.
	bands := []int{0, 1, 2, 7, 14, 30, 100}
	for i := 1; i < len(bands); i++ {
		prev := Advise(bands[i-1]).Message
		curr := Advise(bands[i]).Message
		assert.NotEqual(t, prev, curr, "bands %d vs %d", bands[i-1], bands[i])
	}

	// Within a band the message is stable.
	assert.Equal(t, Advise(3).Message, Advise(6).Message)
	assert.Equal(t, Advise(15).Message, Advise(29).Message)
}

func TestAdvise_ZeroStreak(t *testing.T) {
	advice := Advise(0)

	assert.Equal(t, 0, advice.CurrentStreakDays)
	assert.Empty(t, advice.Level)
	assert.NotEmpty(t, advice.Message)
}
