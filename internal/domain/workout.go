package domain

// PlannedWorkout is one scheduled training day of a plan.
type PlannedWorkout struct {
	ID         string            `bson:"_id" json:"id"`
	PlanID     string            `bson:"planId" json:"planId"`
	DayOfWeek  string            `bson:"dayOfWeek" json:"dayOfWeek"` // e.g. "Monday"; matched case-insensitively
	Name       string            `bson:"name" json:"name"`
	OrderIndex int               `bson:"orderIndex" json:"orderIndex"`
	Exercises  []PlannedExercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
}
