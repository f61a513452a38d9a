package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// ErrInvalidDocument is wrapped by every structural problem found in a generated plan.
var ErrInvalidDocument = errors.New("invalid plan document")

// DocumentError points at the field of a plan document that failed validation.
type DocumentError struct {
	Path   string // e.g. workouts[1].exercises[0].sets
	Reason string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidDocument, e.Path, e.Reason)
}

func (e *DocumentError) Unwrap() error {
	return ErrInvalidDocument
}

// PlanDocument is the structured plan produced by the generator. It is untrusted
// input until ParsePlanDocument has accepted it.
type PlanDocument struct {
	PlanName    string            `json:"plan_name"`
	Description string            `json:"description,omitempty"`
	DaysPerWeek int               `json:"days_per_week"`
	TotalWeeks  int               `json:"total_weeks"`
	Phases      []PhaseDocument   `json:"phases,omitempty"`
	Workouts    []WorkoutDocument `json:"workouts"`

	raw json.RawMessage
}

type PhaseDocument struct {
	PhaseName      string `json:"phase_name"`
	PhaseType      string `json:"phase_type"`
	WeekStart      int    `json:"week_start"`
	WeekEnd        int    `json:"week_end"`
	Description    string `json:"description,omitempty"`
	NutritionGuide string `json:"nutrition_guide,omitempty"`
}

type WorkoutDocument struct {
	Day       string             `json:"day"`
	Name      string             `json:"name"`
	Exercises []ExerciseDocument `json:"exercises"`
}

type ExerciseDocument struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds *int   `json:"rest_seconds,omitempty"`
	Notes       string `json:"notes,omitempty"`
	FormCues    string `json:"form_cues,omitempty"`
}

// Raw returns the document exactly as it was received. Documents built in code
// are marshalled on demand.
func (d *PlanDocument) Raw() json.RawMessage {
	if d.raw != nil {
		return d.raw
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	return b
}

// ExerciseCount is the total number of exercises over all workouts.
func (d *PlanDocument) ExerciseCount() int {
	n := 0
	for _, w := range d.Workouts {
		n += len(w.Exercises)
	}
	return n
}

// number decodes JSON numbers and numeric strings alike ("3", 3, 3.0).
type number struct {
	set   bool
	value int
}

func (n *number) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(b))
	}
	n.set, n.value = true, i
	return nil
}

// text decodes strings and numbers alike; generators emit reps as 10 or "8-12".
type text struct {
	set   bool
	value string
}

func (t *text) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Errorf("not text: %s", string(b))
	}
	t.set, t.value = true, s
	return nil
}

type wirePlan struct {
	PlanName    text          `json:"plan_name"`
	Description text          `json:"description"`
	DaysPerWeek number        `json:"days_per_week"`
	TotalWeeks  number        `json:"total_weeks"`
	Phases      []wirePhase   `json:"phases"`
	Workouts    []wireWorkout `json:"workouts"`
}

type wirePhase struct {
	PhaseName      text   `json:"phase_name"`
	PhaseType      text   `json:"phase_type"`
	WeekStart      number `json:"week_start"`
	WeekEnd        number `json:"week_end"`
	Description    text   `json:"description"`
	NutritionGuide text   `json:"nutrition_guide"`
}

type wireWorkout struct {
	Day       text           `json:"day"`
	Name      text           `json:"name"`
	Exercises []wireExercise `json:"exercises"`
}

type wireExercise struct {
	Name        text   `json:"name"`
	Type        text   `json:"type"`
	Sets        number `json:"sets"`
	Reps        text   `json:"reps"`
	RestSeconds number `json:"rest_seconds"`
	Notes       text   `json:"notes"`
	FormCues    text   `json:"form_cues"`
}

func required(t text) bool {
	return t.set && strings.TrimSpace(t.value) != ""
}

// ParsePlanDocument validates raw generator output and applies defaults
// (total_weeks 12, days_per_week 3). The raw bytes are retained verbatim.
func ParsePlanDocument(raw []byte) (*PlanDocument, error) {
	var w wirePlan
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if !required(w.PlanName) {
		return nil, &DocumentError{Path: "plan_name", Reason: "missing"}
	}

	doc := &PlanDocument{
		PlanName:    strings.TrimSpace(w.PlanName.value),
		Description: w.Description.value,
		DaysPerWeek: DefaultDaysPerWeek,
		TotalWeeks:  DefaultTotalWeeks,
		raw:         append(json.RawMessage(nil), raw...),
	}
	if w.DaysPerWeek.set && w.DaysPerWeek.value > 0 {
		doc.DaysPerWeek = w.DaysPerWeek.value
	}
	if w.TotalWeeks.set && w.TotalWeeks.value > 0 {
		doc.TotalWeeks = w.TotalWeeks.value
	}

	for i, p := range w.Phases {
		name := p.PhaseName.value
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Phase %d", i+1)
		}
		doc.Phases = append(doc.Phases, PhaseDocument{
			PhaseName:      name,
			PhaseType:      p.PhaseType.value,
			WeekStart:      p.WeekStart.value,
			WeekEnd:        p.WeekEnd.value,
			Description:    p.Description.value,
			NutritionGuide: p.NutritionGuide.value,
		})
	}

	for i, wo := range w.Workouts {
		path := fmt.Sprintf("workouts[%d]", i)
		if !required(wo.Day) {
			return nil, &DocumentError{Path: path + ".day", Reason: "missing"}
		}
		if _, ok := ParseWeekday(wo.Day.value); !ok {
			return nil, &DocumentError{Path: path + ".day", Reason: fmt.Sprintf("unknown weekday %q", wo.Day.value)}
		}
		if !required(wo.Name) {
			return nil, &DocumentError{Path: path + ".name", Reason: "missing"}
		}

		workout := WorkoutDocument{
			Day:  strings.TrimSpace(wo.Day.value),
			Name: strings.TrimSpace(wo.Name.value),
		}
		for j, ex := range wo.Exercises {
			exPath := fmt.Sprintf("%s.exercises[%d]", path, j)
			if !required(ex.Name) {
				return nil, &DocumentError{Path: exPath + ".name", Reason: "missing"}
			}
			if !ex.Sets.set {
				return nil, &DocumentError{Path: exPath + ".sets", Reason: "missing"}
			}
			e := ExerciseDocument{
				Name:     strings.TrimSpace(ex.Name.value),
				Type:     ex.Type.value,
				Sets:     ex.Sets.value,
				Reps:     ex.Reps.value,
				Notes:    ex.Notes.value,
				FormCues: ex.FormCues.value,
			}
			if ex.RestSeconds.set {
				rest := ex.RestSeconds.value
				e.RestSeconds = &rest
			}
			workout.Exercises = append(workout.Exercises, e)
		}
		doc.Workouts = append(doc.Workouts, workout)
	}

	return doc, nil
}

// ParsePhaseType maps generator wording onto a PhaseType. "deload" is a recovery phase.
func ParsePhaseType(s string) PhaseType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recovery", "deload":
		return PhaseRecovery
	default:
		return PhaseProgressive
	}
}

// BuildPlan projects the document onto a new active plan starting on start.
// Every row gets a fresh ID; declaration order is kept in OrderIndex.
func (d *PlanDocument) BuildPlan(profileID string, start time.Time) *Plan {
	startDate := DateOf(start)
	now := time.Now().UTC()
	plan := &Plan{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		Name:        d.PlanName,
		Description: d.Description,
		DaysPerWeek: d.DaysPerWeek,
		TotalWeeks:  d.TotalWeeks,
		CurrentWeek: 1,
		StartDate:   &startDate,
		IsActive:    true,
		Status:      PlanActive,
		Document:    d.Raw(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if plan.TotalWeeks <= 0 {
		plan.TotalWeeks = DefaultTotalWeeks
	}

	for i, p := range d.Phases {
		plan.Phases = append(plan.Phases, Phase{
			ID:             uuid.NewString(),
			PlanID:         plan.ID,
			Name:           p.PhaseName,
			Type:           ParsePhaseType(p.PhaseType),
			WeekStart:      p.WeekStart,
			WeekEnd:        p.WeekEnd,
			Description:    p.Description,
			NutritionGuide: p.NutritionGuide,
			OrderIndex:     i,
		})
	}

	for i, w := range d.Workouts {
		workout := PlannedWorkout{
			ID:         uuid.NewString(),
			PlanID:     plan.ID,
			DayOfWeek:  w.Day,
			Name:       w.Name,
			OrderIndex: i,
		}
		for j, ex := range w.Exercises {
			workout.Exercises = append(workout.Exercises, PlannedExercise{
				ID:          uuid.NewString(),
				WorkoutID:   workout.ID,
				Name:        ex.Name,
				Category:    ParseCategory(ex.Type),
				Sets:        ex.Sets,
				Reps:        ex.Reps,
				RestSeconds: ex.RestSeconds,
				Notes:       ex.Notes,
				FormCues:    ex.FormCues,
				OrderIndex:  j,
			})
		}
		plan.Workouts = append(plan.Workouts, workout)
	}
	return plan
}
