package domain

import (
	"time"
)

// Profile is the single user of an install, together with their adherence state.
type Profile struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Age          int       `bson:"age" json:"age"`
	Sex          string    `bson:"sex" json:"sex"`
	FitnessLevel string    `bson:"fitnessLevel" json:"fitnessLevel"` // e.g. "Beginner", "Intermediate"
	Goals        string    `bson:"goals" json:"goals"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// --- Adherence ---
	CurrentStreak   int        `bson:"currentStreak" json:"currentStreak"`
	LongestStreak   int        `bson:"longestStreak" json:"longestStreak"`
	LastWorkoutDate *time.Time `bson:"lastWorkoutDate,omitempty" json:"lastWorkoutDate,omitempty"`
}

// Streak is the derived adherence state carried on a Profile.
type Streak struct {
	Current     int
	Longest     int
	LastWorkout *time.Time
}

func (p *Profile) Streak() Streak {
	return Streak{
		Current:     p.CurrentStreak,
		Longest:     p.LongestStreak,
		LastWorkout: p.LastWorkoutDate,
	}
}

func (p *Profile) SetStreak(s Streak) {
	p.CurrentStreak = s.Current
	p.LongestStreak = s.Longest
	p.LastWorkoutDate = s.LastWorkout
}
