package sqlite

import (
	"time"
)

// Profile is the single user of the install
type Profile struct {
	ID              string `gorm:"primaryKey"`
	Name            string `gorm:"not null;default:''"`
	Age             int
	Sex             string `gorm:"not null;default:''"`
	FitnessLevel    string `gorm:"not null;default:''"`
	Goals           string `gorm:"not null;default:''"`
	CurrentStreak   int    `gorm:"not null;default:0"`
	LongestStreak   int    `gorm:"not null;default:0"`
	LastWorkoutDate *time.Time
	CreatedAt       time.Time `gorm:"index:idx_profiles_created"`
	UpdatedAt       time.Time
}

// Plan holds both pending and active plans; Document is the generator output verbatim
type Plan struct {
	ID          string `gorm:"primaryKey"`
	ProfileID   string `gorm:"not null;index:idx_plans_profile_status"`
	Status      string `gorm:"not null;index:idx_plans_profile_status;check:status IN ('pending','active','superseded')"`
	Name        string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	DaysPerWeek int    `gorm:"not null;default:3"`
	TotalWeeks  int    `gorm:"not null;default:12"`
	CurrentWeek int    `gorm:"not null;default:1"`
	StartDate   *time.Time
	IsActive    bool   `gorm:"not null;default:false;index"`
	Document    string `gorm:"type:text;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Phases   []Phase          `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	Workouts []PlannedWorkout `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

type Phase struct {
	ID             string `gorm:"primaryKey"`
	PlanID         string `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Type           string `gorm:"not null;default:'progressive'"`
	WeekStart      int    `gorm:"not null"`
	WeekEnd        int    `gorm:"not null"`
	Description    string `gorm:"not null;default:''"`
	NutritionGuide string `gorm:"not null;default:''"`
	OrderIndex     int    `gorm:"not null;default:0"`
}

type PlannedWorkout struct {
	ID         string `gorm:"primaryKey"`
	PlanID     string `gorm:"not null;index"`
	DayOfWeek  string `gorm:"not null"`
	Name       string `gorm:"not null"`
	OrderIndex int    `gorm:"not null;default:0"`

	Exercises []PlannedExercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE"`
}

type PlannedExercise struct {
	ID          string `gorm:"primaryKey"`
	WorkoutID   string `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Category    string `gorm:"not null;default:'main'"`
	Sets        int    `gorm:"not null"`
	Reps        string `gorm:"not null;default:''"`
	RestSeconds *int
	Notes       string `gorm:"not null;default:''"`
	FormCues    string `gorm:"not null;default:''"`
	OrderIndex  int    `gorm:"not null;default:0"`
}

// WorkoutSession is append-only. PlannedWorkoutID is not a foreign key: the
// planned workout disappears when its plan is superseded and the log must stay.
type WorkoutSession struct {
	ID               string    `gorm:"primaryKey"`
	ProfileID        string    `gorm:"not null;index:idx_sessions_profile_date"`
	PlannedWorkoutID *string
	WorkoutName      string    `gorm:"not null;default:''"`
	Date             time.Time `gorm:"not null;index:idx_sessions_profile_date"`
	StartTime        time.Time `gorm:"not null"`
	EndTime          *time.Time
	Feeling          *int
	Notes            string `gorm:"not null;default:''"`
	CreatedAt        time.Time

	Sets []LoggedSet `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

type LoggedSet struct {
	ID           string `gorm:"primaryKey"`
	SessionID    string `gorm:"not null;index"`
	ExerciseName string `gorm:"not null;index"`
	SetNumber    int    `gorm:"not null;default:1"`
	Weight       *float64
	Reps         *int
	RPE          *int
	Notes        string `gorm:"not null;default:''"`
}

type FitnessTest struct {
	ID                 string    `gorm:"primaryKey"`
	ProfileID          string    `gorm:"not null;index:idx_fitness_tests_profile_date"`
	TestDate           time.Time `gorm:"not null;index:idx_fitness_tests_profile_date"`
	Pushups            *int
	Pullups            *int
	WallSitSeconds     *int
	ToeTouchInches     *float64
	PlankSeconds       *int
	VerticalJumpInches *float64
	Notes              string `gorm:"not null;default:''"`
	CreatedAt          time.Time
}

type Review struct {
	ID              string    `gorm:"primaryKey"`
	ProfileID       string    `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"index"`
	ReviewText      string    `gorm:"type:text;not null"`
	SuggestionsJSON string    `gorm:"column:suggestions_json;type:text;not null;default:'[]'"`
	DataSummary     string    `gorm:"type:text;not null;default:'{}'"`
}
