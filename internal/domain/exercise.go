// internal/domain/exercise.go
package domain

import (
	"sort"
	"strings"
)

// ExerciseCategory places an exercise inside a workout.
type ExerciseCategory string

const (
	CategoryWarmup   ExerciseCategory = "warmup"
	CategoryMain     ExerciseCategory = "main"
	CategoryCooldown ExerciseCategory = "cooldown"
)

// ParseCategory maps generator output onto a known category. Anything unknown is "main".
func ParseCategory(s string) ExerciseCategory {
	switch ExerciseCategory(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryWarmup:
		return CategoryWarmup
	case CategoryCooldown:
		return CategoryCooldown
	default:
		return CategoryMain
	}
}

func (c ExerciseCategory) rank() int {
	switch c {
	case CategoryWarmup:
		return 0
	case CategoryCooldown:
		return 2
	default:
		return 1
	}
}

// PlannedExercise is the prescription for one exercise inside a PlannedWorkout.
type PlannedExercise struct {
	ID          string           `bson:"id" json:"id"`
	WorkoutID   string           `bson:"workoutId" json:"workoutId"`
	Name        string           `bson:"name" json:"name"`
	Category    ExerciseCategory `bson:"category" json:"category"`
	Sets        int              `bson:"sets" json:"sets"`
	Reps        string           `bson:"reps" json:"reps"` // Free text: "8-10", "30s", "15 each"
	RestSeconds *int             `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	Notes       string           `bson:"notes,omitempty" json:"notes,omitempty"`
	FormCues    string           `bson:"formCues,omitempty" json:"formCues,omitempty"`
	OrderIndex  int              `bson:"orderIndex" json:"orderIndex"`
}

// SortExercises orders warmup, main, cooldown, keeping declaration order inside each group.
func SortExercises(exercises []PlannedExercise) {
	sort.SliceStable(exercises, func(i, j int) bool {
		ri, rj := exercises[i].Category.rank(), exercises[j].Category.rank()
		if ri != rj {
			return ri < rj
		}
		return exercises[i].OrderIndex < exercises[j].OrderIndex
	})
}
