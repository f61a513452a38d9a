package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"alcyxob/fitlocal/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName     = "Workout Log"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxColumnWide = 40
)

var Headers = []string{"Date", "Workout Name", "Exercise", "Set", "Weight (lbs)", "Reps", "RPE", "Notes"}

// Row is one logged set in export order.
type Row struct {
	Date        string
	WorkoutName string
	Exercise    string
	Set         int
	Weight      *float64
	Reps        *int
	RPE         *int
	Notes       string
}

// Filename is the download name for an export produced on day.
func Filename(day time.Time) string {
	return fmt.Sprintf("fitlocal_log_%s.xlsx", day.Format(time.DateOnly))
}

// BuildRows flattens sessions into rows ordered by session date, then by
// exercise name and set number. Unplanned sessions have an empty workout name.
func BuildRows(sessions []domain.WorkoutSession) []Row {
	ordered := make([]domain.WorkoutSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	rows := []Row{}
	for _, session := range ordered {
		workoutName := ""
		if session.PlannedWorkoutID != nil {
			workoutName = session.WorkoutName
		}

		sets := make([]domain.LoggedSet, len(session.Sets))
		copy(sets, session.Sets)
		domain.SortSets(sets)

		for _, set := range sets {
			rows = append(rows, Row{
				Date:        session.Date.Format(time.DateOnly),
				WorkoutName: workoutName,
				Exercise:    set.ExerciseName,
				Set:         set.SetNumber,
				Weight:      set.Weight,
				Reps:        set.Reps,
				RPE:         set.RPE,
				Notes:       set.Notes,
			})
		}
	}
	return rows
}

func (r Row) values() []any {
	return []any{r.Date, r.WorkoutName, r.Exercise, r.Set, floatOrNil(r.Weight), intOrNil(r.Reps), intOrNil(r.RPE), r.Notes}
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// displayLen is the width a value takes in a cell; empty and zero values count as nothing.
func displayLen(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		return utf8.RuneCountInString(t)
	case int:
		if t == 0 {
			return 0
		}
		return len(strconv.Itoa(t))
	case float64:
		if t == 0 {
			return 0
		}
		return len(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		return len(fmt.Sprint(t))
	}
}

// NewWorkbook renders rows into a single-sheet workbook with a bold header and
// columns sized to their content.
func NewWorkbook(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	header := make([]any, len(Headers))
	widths := make([]int, len(Headers))
	for i, h := range Headers {
		header[i] = h
		widths[i] = displayLen(h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err = f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := row.values()
		for col, v := range values {
			widths[col] = max(widths[col], displayLen(v))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err = f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err = f.SetColWidth(SheetName, name, name, float64(min(w+2, maxColumnWide))); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Write renders sessions as xlsx into w.
func Write(w io.Writer, sessions []domain.WorkoutSession) error {
	f, err := NewWorkbook(BuildRows(sessions))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}
