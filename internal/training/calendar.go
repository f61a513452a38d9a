package training

import (
	"time"

	"alcyxob/fitlocal/internal/domain"
)

// CalendarDay is one cell of the month grid. Cells outside the month have Day == 0.
type CalendarDay struct {
	Day       int        `json:"day"`
	Date      *time.Time `json:"date,omitempty"`
	Completed bool       `json:"completed"`
	Planned   bool       `json:"planned"`
	Missed    bool       `json:"missed"`
	IsToday   bool       `json:"isToday"`
	IsPast    bool       `json:"isPast"`
}

type Calendar struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Weeks [][]CalendarDay `json:"weeks"`
}

// BuildCalendar lays out month as Monday-first weeks. A day is planned when
// its weekday is in plannedDays, completed when a session date falls on it, and
// missed when it is planned, not completed and strictly before today.
func BuildCalendar(year int, month time.Month, sessionDates []time.Time, plannedDays []time.Weekday, today time.Time) Calendar {
	completed := make(map[time.Time]bool, len(sessionDates))
	for _, d := range sessionDates {
		completed[domain.DateOf(d)] = true
	}
	planned := make(map[time.Weekday]bool, len(plannedDays))
	for _, d := range plannedDays {
		planned[d] = true
	}
	today = domain.DateOf(today)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cal := Calendar{Year: year, Month: month}
	week := make([]CalendarDay, 0, 7)
	for i := 0; i < (int(first.Weekday())+6)%7; i++ {
		week = append(week, CalendarDay{})
	}

	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		cell := CalendarDay{
			Day:       d,
			Date:      &date,
			Completed: completed[date],
			Planned:   planned[date.Weekday()],
			IsToday:   date.Equal(today),
			IsPast:    date.Before(today),
		}
		cell.Missed = cell.Planned && !cell.Completed && cell.IsPast
		week = append(week, cell)

		if len(week) == 7 {
			cal.Weeks = append(cal.Weeks, week)
			week = make([]CalendarDay, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, CalendarDay{})
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}

// MonthRange returns [first day of month, first day of next month).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0)
}
