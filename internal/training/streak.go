package training

import (
	"time"

	"alcyxob/fitlocal/internal/domain"
)

// StreakGraceDays is the longest gap between two workouts that keeps a streak alive.
// Three sessions a week on non-consecutive days leaves at most a 3 day gap.
const StreakGraceDays = 3

// UpdateStreak applies a workout logged on today to s. The second return value
// is false when nothing changed: a second log on the same day, or a log dated
// before the last recorded workout.
func UpdateStreak(s domain.Streak, today time.Time) (domain.Streak, bool) {
	day := domain.DateOf(today)

	next := s
	if s.LastWorkout != nil {
		gap := domain.DaysBetween(*s.LastWorkout, day)
		switch {
		case gap <= 0:
			return s, false
		case gap <= StreakGraceDays:
			next.Current = s.Current + 1
		default:
			next.Current = 1
		}
	} else {
		next.Current = 1
	}

	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	next.LastWorkout = &day
	return next, true
}

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := domain.DateOf(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
