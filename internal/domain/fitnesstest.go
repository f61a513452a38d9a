package domain

import (
	"time"
)

// RetestInterval is the minimum gap between two fitness tests.
const RetestInterval = 30 // days

// FitnessTest is a benchmark snapshot used to calibrate plan generation.
// Tests are append-only; every measurement is optional.
type FitnessTest struct {
	ID                 string    `bson:"_id" json:"id"`
	ProfileID          string    `bson:"profileId" json:"profileId"`
	TestDate           time.Time `bson:"testDate" json:"testDate"`
	Pushups            *int      `bson:"pushups,omitempty" json:"pushups,omitempty"`
	Pullups            *int      `bson:"pullups,omitempty" json:"pullups,omitempty"`
	WallSitSeconds     *int      `bson:"wallSitSeconds,omitempty" json:"wallSitSeconds,omitempty"`
	ToeTouchInches     *float64  `bson:"toeTouchInches,omitempty" json:"toeTouchInches,omitempty"`
	PlankSeconds       *int      `bson:"plankSeconds,omitempty" json:"plankSeconds,omitempty"`
	VerticalJumpInches *float64  `bson:"verticalJumpInches,omitempty" json:"verticalJumpInches,omitempty"`
	Notes              string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// RetestStatus tells whether a new test may be recorded today.
type RetestStatus struct {
	Eligible      bool       `json:"eligible"`
	LastTestDate  *time.Time `json:"lastTestDate,omitempty"`
	DaysRemaining int        `json:"daysRemaining"`
}

// RetestStatusFor evaluates eligibility given the most recent test (nil if none).
func RetestStatusFor(last *FitnessTest, today time.Time) RetestStatus {
	if last == nil {
		return RetestStatus{Eligible: true}
	}
	lastDate := last.TestDate
	elapsed := DaysBetween(lastDate, today)
	if elapsed >= RetestInterval {
		return RetestStatus{Eligible: true, LastTestDate: &lastDate}
	}
	return RetestStatus{
		Eligible:      false,
		LastTestDate:  &lastDate,
		DaysRemaining: RetestInterval - elapsed,
	}
}
