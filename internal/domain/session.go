package domain

import (
	"sort"
	"time"
)

// UnplannedWorkoutName labels sessions that were not tied to a planned workout.
const UnplannedWorkoutName = "Unplanned"

// WorkoutSession is one logged training session. Sessions are append-only.
type WorkoutSession struct {
	ID               string      `bson:"_id" json:"id"`
	ProfileID        string      `bson:"profileId" json:"profileId"`
	PlannedWorkoutID *string     `bson:"plannedWorkoutId,omitempty" json:"plannedWorkoutId,omitempty"`
	WorkoutName      string      `bson:"workoutName,omitempty" json:"workoutName,omitempty"` // Denormalized at log time
	Date             time.Time   `bson:"date" json:"date"`
	StartTime        time.Time   `bson:"startTime" json:"startTime"`
	EndTime          *time.Time  `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Feeling          *int        `bson:"feeling,omitempty" json:"feeling,omitempty"` // Subjective 1-5
	Notes            string      `bson:"notes,omitempty" json:"notes,omitempty"`
	Sets             []LoggedSet `bson:"sets" json:"sets"`
}

// DisplayWorkoutName returns the workout name or "Unplanned".
func (s *WorkoutSession) DisplayWorkoutName() string {
	if s.PlannedWorkoutID == nil || s.WorkoutName == "" {
		return UnplannedWorkoutName
	}
	return s.WorkoutName
}

// LoggedSet is a single performed set. ExerciseName is matched against plan
// exercises by exact string equality; there is no foreign key, so renaming an
// exercise between plan versions detaches its history.
type LoggedSet struct {
	ID           string   `bson:"id" json:"id"`
	SessionID    string   `bson:"sessionId" json:"sessionId"`
	ExerciseName string   `bson:"exerciseName" json:"exerciseName"`
	SetNumber    int      `bson:"setNumber" json:"setNumber"`
	Weight       *float64 `bson:"weight,omitempty" json:"weight,omitempty"` // lbs
	Reps         *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	RPE          *int     `bson:"rpe,omitempty" json:"rpe,omitempty"`
	Notes        string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// SortSets orders sets by exercise name, then set number.
func SortSets(sets []LoggedSet) {
	sort.SliceStable(sets, func(i, j int) bool {
		if sets[i].ExerciseName != sets[j].ExerciseName {
			return sets[i].ExerciseName < sets[j].ExerciseName
		}
		return sets[i].SetNumber < sets[j].SetNumber
	})
}
