// Package stats computes reading statistics from daily records: streaks,
// period summaries, heatmaps, and milestone advice. Every function is a
// pure transformation over its inputs; the caller supplies the records
// and the reference day.
package stats

import (
	domainerrors "github.com/leaflogapp/leaflog-server/internal/errors"
)

// Policy maps a day's page count to an activity level 0-4 via three
// ascending break points. A day at or below Breaks[i] lands in level
// i+1; anything above Breaks[2] is level 4. Zero pages is always level 0.
type Policy struct {
	Name   string
	Breaks [3]int
}

// Two threshold tables shipped to clients at different times and both
// are still live. PolicyCurrent is the default; PolicyLegacy matches
// the older heatmap widget.
var (
	PolicyCurrent = Policy{Name: "a", Breaks: [3]int{10, 30, 60}}
	PolicyLegacy  = Policy{Name: "b", Breaks: [3]int{10, 25, 50}}
)

// PolicyByName resolves a policy config name ("a" or "b").
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "a", "A", "":
		return PolicyCurrent, nil
	case "b", "B":
		return PolicyLegacy, nil
	default:
		return Policy{}, domainerrors.Validationf("unknown activity policy %q", name)
	}
}

// Level classifies a page count into an activity level 0-4.
// Negative counts are a caller contract violation.
func (p Policy) Level(pagesRead int) (int, error) {
	if pagesRead < 0 {
		return 0, domainerrors.Validationf("pages read must be non-negative, got %d", pagesRead)
	}
	switch {
	case pagesRead == 0:
		return 0, nil
	case pagesRead <= p.Breaks[0]:
		return 1, nil
	case pagesRead <= p.Breaks[1]:
		return 2, nil
	case pagesRead <= p.Breaks[2]:
		return 3, nil
	default:
		return 4, nil
	}
}
