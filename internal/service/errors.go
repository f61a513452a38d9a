package service

import (
	"errors"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/storage"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound = errors.New("profile not set up")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrNoPendingPlan   = errors.New("nothing to activate")
	ErrNoActivePlan    = errors.New("no active plan")
	ErrWorkoutNotFound = errors.New("workout not found in the active plan")
	ErrSessionNotFound = errors.New("session not found")
	ErrNoSessions      = errors.New("no workout sessions to review yet")
	ErrRetestTooSoon   = errors.New("too soon for a new fitness test")
	ErrInvalidDocument = domain.ErrInvalidDocument
	ErrStorageDisabled = storage.ErrStorageDisabled
)

// Clock returns the current time in the install's timezone. "Today" for
// streaks, calendars and session dates is taken from it.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FixedClock always returns t. Used by tools and tests.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

func (c Clock) today() time.Time {
	return domain.DateOf(c())
}
