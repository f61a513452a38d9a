// internal/domain/training_plan.go
package domain

import (
	"encoding/json"
	"time"
)

// PlanStatus tracks where a plan is in its lifecycle.
type PlanStatus string

const (
	PlanPending    PlanStatus = "pending"    // Generated, waiting for the user to confirm
	PlanActive     PlanStatus = "active"     // The one plan currently governing the schedule
	PlanSuperseded PlanStatus = "superseded" // Was active, replaced by a newer plan
)

// DefaultTotalWeeks is used when a generated document does not declare its length.
const DefaultTotalWeeks = 12

// DefaultDaysPerWeek is used when a generated document does not declare a frequency.
const DefaultDaysPerWeek = 3

// Plan is a versioned workout plan: the generated document kept verbatim plus
// its normalized phases and workouts.
type Plan struct {
	ID          string          `bson:"_id" json:"id"`
	ProfileID   string          `bson:"profileId" json:"profileId"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	DaysPerWeek int             `bson:"daysPerWeek" json:"daysPerWeek"`
	TotalWeeks  int             `bson:"totalWeeks" json:"totalWeeks"`
	CurrentWeek int             `bson:"currentWeek" json:"currentWeek"` // Cache only, recomputed from StartDate on read
	StartDate   *time.Time      `bson:"startDate,omitempty" json:"startDate,omitempty"`
	IsActive    bool            `bson:"isActive" json:"isActive"`
	Status      PlanStatus      `bson:"status" json:"status"`
	Document    json.RawMessage `bson:"document" json:"document,omitempty"` // Generator output, untouched
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`

	Phases   []Phase          `bson:"phases,omitempty" json:"phases,omitempty"`
	Workouts []PlannedWorkout `bson:"-" json:"workouts,omitempty"`
}

// PhaseType is the training intensity of a block of weeks.
type PhaseType string

const (
	PhaseProgressive PhaseType = "progressive"
	PhaseRecovery    PhaseType = "recovery"
)

// Phase is a contiguous week range [WeekStart, WeekEnd] of a plan.
type Phase struct {
	ID             string    `bson:"id" json:"id"`
	PlanID         string    `bson:"planId" json:"planId"`
	Name           string    `bson:"name" json:"name"`
	Type           PhaseType `bson:"type" json:"type"`
	WeekStart      int       `bson:"weekStart" json:"weekStart"`
	WeekEnd        int       `bson:"weekEnd" json:"weekEnd"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	NutritionGuide string    `bson:"nutritionGuide,omitempty" json:"nutritionGuide,omitempty"`
	OrderIndex     int       `bson:"orderIndex" json:"orderIndex"`
}

// Contains reports whether week falls inside the phase, bounds inclusive.
func (p Phase) Contains(week int) bool {
	return week >= p.WeekStart && week <= p.WeekEnd
}

// WorkoutForDay returns the first workout scheduled on the given weekday, or nil.
func (p *Plan) WorkoutForDay(day time.Weekday) *PlannedWorkout {
	for i := range p.Workouts {
		if wd, ok := ParseWeekday(p.Workouts[i].DayOfWeek); ok && wd == day {
			return &p.Workouts[i]
		}
	}
	return nil
}

// TrainingDays returns the distinct weekdays the plan schedules a workout on.
func (p *Plan) TrainingDays() []time.Weekday {
	seen := make(map[time.Weekday]bool)
	var days []time.Weekday
	for _, w := range p.Workouts {
		wd, ok := ParseWeekday(w.DayOfWeek)
		if !ok || seen[wd] {
			continue
		}
		seen[wd] = true
		days = append(days, wd)
	}
	return days
}
