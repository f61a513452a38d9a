package training

import (
	"time"

	"alcyxob/fitlocal/internal/domain"
)

// Performance is the best effort for one exercise inside a single session.
type Performance struct {
	ExerciseName string    `json:"exerciseName"`
	MaxWeight    *float64  `json:"maxWeight,omitempty"`
	MaxReps      *int      `json:"maxReps,omitempty"`
	Date         time.Time `json:"date"`
}

// BestInSession takes the componentwise maximum weight and reps over the sets
// of exercise in session. Nil when the session has no such set.
func BestInSession(session domain.WorkoutSession, exercise string) *Performance {
	var perf *Performance
	for _, set := range session.Sets {
		if set.ExerciseName != exercise {
			continue
		}
		if perf == nil {
			perf = &Performance{ExerciseName: exercise, Date: session.Date}
		}
		if set.Weight != nil && (perf.MaxWeight == nil || *set.Weight > *perf.MaxWeight) {
			w := *set.Weight
			perf.MaxWeight = &w
		}
		if set.Reps != nil && (perf.MaxReps == nil || *set.Reps > *perf.MaxReps) {
			r := *set.Reps
			perf.MaxReps = &r
		}
	}
	return perf
}
