// Package training holds the date arithmetic behind plan progression and
// adherence: current week and phase, streaks, the month calendar and
// last-performance lookups. Everything here is a pure function of its inputs.
package training

import (
	"sort"
	"time"

	"alcyxob/fitlocal/internal/domain"
)

// CurrentWeek derives the 1-indexed plan week for today, clamped to [1, totalWeeks].
// A plan that has not started yet is in week 1.
func CurrentWeek(start *time.Time, totalWeeks int, today time.Time) int {
	if totalWeeks <= 0 {
		totalWeeks = domain.DefaultTotalWeeks
	}
	if start == nil {
		return 1
	}
	days := domain.DaysBetween(*start, today)
	if days < 0 {
		return 1
	}
	week := days/7 + 1
	if week > totalWeeks {
		return totalWeeks
	}
	return week
}

// CurrentPhase returns the first phase, by ascending WeekStart, whose inclusive
// range contains week. Gaps in coverage yield nil.
func CurrentPhase(phases []domain.Phase, week int) *domain.Phase {
	if len(phases) == 0 {
		return nil
	}
	sorted := make([]domain.Phase, len(phases))
	copy(sorted, phases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeekStart < sorted[j].WeekStart
	})
	for i := range sorted {
		if sorted[i].Contains(week) {
			return &sorted[i]
		}
	}
	return nil
}

// Progress is the derived position of an active plan.
type Progress struct {
	Week  int           `json:"week"`
	Total int           `json:"totalWeeks"`
	Phase *domain.Phase `json:"phase,omitempty"`
}

// ProgressOf computes the week and phase of plan for today. A nil plan has no progress.
func ProgressOf(plan *domain.Plan, today time.Time) *Progress {
	if plan == nil {
		return nil
	}
	week := CurrentWeek(plan.StartDate, plan.TotalWeeks, today)
	total := plan.TotalWeeks
	if total <= 0 {
		total = domain.DefaultTotalWeeks
	}
	return &Progress{
		Week:  week,
		Total: total,
		Phase: CurrentPhase(plan.Phases, week),
	}
}
