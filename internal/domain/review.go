package domain

import (
	"time"
)

// ReviewSessionLimit bounds how many recent sessions a progress review looks at.
const ReviewSessionLimit = 30

// Review is a persisted progress review produced by the generator.
type Review struct {
	ID              string    `bson:"_id" json:"id"`
	ProfileID       string    `bson:"profileId" json:"profileId"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	ReviewText      string    `bson:"reviewText" json:"reviewText"`
	SuggestionsJSON string    `bson:"suggestionsJson" json:"-"`
	DataSummary     string    `bson:"dataSummary" json:"-"`
}

// ReviewResult is the structured answer of the review generator.
type ReviewResult struct {
	WhatsWorking      string   `json:"whats_working"`
	WatchOutFor       string   `json:"watch_out_for"`
	Suggestions       []string `json:"suggestions"`
	OverallAssessment string   `json:"overall_assessment"`
}

// SessionSummary is the compact per-session view handed to the review generator.
type SessionSummary struct {
	Date        string       `json:"date"`
	WorkoutName string       `json:"workout_name"`
	Feeling     *int         `json:"feeling"`
	Notes       string       `json:"notes"`
	Sets        []SetSummary `json:"sets"`
}

type SetSummary struct {
	Exercise string   `json:"exercise"`
	Set      int      `json:"set"`
	Weight   *float64 `json:"weight_lbs"`
	Reps     *int     `json:"reps"`
	RPE      *int     `json:"rpe"`
}

// Summarize converts a session into its review summary.
func Summarize(s WorkoutSession) SessionSummary {
	sets := make([]SetSummary, len(s.Sets))
	for i, ls := range s.Sets {
		sets[i] = SetSummary{
			Exercise: ls.ExerciseName,
			Set:      ls.SetNumber,
			Weight:   ls.Weight,
			Reps:     ls.Reps,
			RPE:      ls.RPE,
		}
	}
	return SessionSummary{
		Date:        s.Date.Format(time.DateOnly),
		WorkoutName: s.DisplayWorkoutName(),
		Feeling:     s.Feeling,
		Notes:       s.Notes,
		Sets:        sets,
	}
}
