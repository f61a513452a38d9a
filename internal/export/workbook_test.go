package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"alcyxob/fitlocal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ptr[T any](v T) *T {
	return &v
}

func testSessions() []domain.WorkoutSession {
	day1 := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 2)
	return []domain.WorkoutSession{
		{
			ID: "s2", Date: day2, PlannedWorkoutID: ptr("w1"), WorkoutName: "Lower A",
			Sets: []domain.LoggedSet{
				{ExerciseName: "Squat", SetNumber: 2, Weight: ptr(140.0), Reps: ptr(8)},
				{ExerciseName: "Lunge", SetNumber: 1, Reps: ptr(12), Notes: "wobbly"},
				{ExerciseName: "Squat", SetNumber: 1, Weight: ptr(135.5), Reps: ptr(10), RPE: ptr(7)},
			},
		},
		{
			ID: "s1", Date: day1, WorkoutName: "ignored without planned workout",
			Sets: []domain.LoggedSet{
				{ExerciseName: "Plank", SetNumber: 1},
			},
		},
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "fitlocal_log_2025-04-03.xlsx", Filename(time.Date(2025, 4, 3, 18, 0, 0, 0, time.UTC)))
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(testSessions())
	require.Len(t, rows, 4)

	assert.Equal(t, Row{Date: "2025-04-01", Exercise: "Plank", Set: 1}, rows[0])
	assert.Equal(t, "Lunge", rows[1].Exercise)
	assert.Equal(t, "wobbly", rows[1].Notes)
	assert.Equal(t, "Lower A", rows[1].WorkoutName)
	assert.Equal(t, "Squat", rows[2].Exercise)
	assert.Equal(t, 1, rows[2].Set)
	assert.Equal(t, 2, rows[3].Set)

	assert.Empty(t, BuildRows(nil))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSessions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{"2025-04-01", "", "Plank", "1"}, rows[1])
	assert.Equal(t, []string{"2025-04-03", "Lower A", "Squat", "1", "135.5", "10", "7"}, rows[3])
	assert.Equal(t, "wobbly", rows[2][7])

	styleID, err := f.GetCellStyle(SheetName, "H1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	// "Weight (lbs)" is the widest value of column E
	width, err := f.GetColWidth(SheetName, "E")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Weight (lbs)")+2), width)
}

func TestNewWorkbook_ColumnWidthCapped(t *testing.T) {
	f, err := NewWorkbook([]Row{{Date: "2025-04-01", Exercise: "Squat", Set: 1, Notes: strings.Repeat("x", 120)}})
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth(SheetName, "H")
	require.NoError(t, err)
	assert.Equal(t, float64(maxColumnWide), width)
}
