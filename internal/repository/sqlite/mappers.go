package sqlite

import (
	"encoding/json"

	"alcyxob/fitlocal/internal/domain"
)

func profileToDomain(p Profile) *domain.Profile {
	return &domain.Profile{
		ID:              p.ID,
		Name:            p.Name,
		Age:             p.Age,
		Sex:             p.Sex,
		FitnessLevel:    p.FitnessLevel,
		Goals:           p.Goals,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		CurrentStreak:   p.CurrentStreak,
		LongestStreak:   p.LongestStreak,
		LastWorkoutDate: p.LastWorkoutDate,
	}
}

func planToDomain(p Plan) *domain.Plan {
	plan := &domain.Plan{
		ID:          p.ID,
		ProfileID:   p.ProfileID,
		Name:        p.Name,
		Description: p.Description,
		DaysPerWeek: p.DaysPerWeek,
		TotalWeeks:  p.TotalWeeks,
		CurrentWeek: p.CurrentWeek,
		StartDate:   p.StartDate,
		IsActive:    p.IsActive,
		Status:      domain.PlanStatus(p.Status),
		Document:    json.RawMessage(p.Document),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, ph := range p.Phases {
		plan.Phases = append(plan.Phases, domain.Phase{
			ID:             ph.ID,
			PlanID:         ph.PlanID,
			Name:           ph.Name,
			Type:           domain.PhaseType(ph.Type),
			WeekStart:      ph.WeekStart,
			WeekEnd:        ph.WeekEnd,
			Description:    ph.Description,
			NutritionGuide: ph.NutritionGuide,
			OrderIndex:     ph.OrderIndex,
		})
	}
	for _, w := range p.Workouts {
		workout := domain.PlannedWorkout{
			ID:         w.ID,
			PlanID:     w.PlanID,
			DayOfWeek:  w.DayOfWeek,
			Name:       w.Name,
			OrderIndex: w.OrderIndex,
		}
		for _, e := range w.Exercises {
			workout.Exercises = append(workout.Exercises, domain.PlannedExercise{
				ID:          e.ID,
				WorkoutID:   e.WorkoutID,
				Name:        e.Name,
				Category:    domain.ExerciseCategory(e.Category),
				Sets:        e.Sets,
				Reps:        e.Reps,
				RestSeconds: e.RestSeconds,
				Notes:       e.Notes,
				FormCues:    e.FormCues,
				OrderIndex:  e.OrderIndex,
			})
		}
		plan.Workouts = append(plan.Workouts, workout)
	}
	return plan
}

// planFromDomain flattens plan into rows. Children are returned separately so
// they can be inserted in declaration order.
func planFromDomain(p *domain.Plan) (Plan, []Phase, []PlannedWorkout, []PlannedExercise) {
	row := Plan{
		ID:          p.ID,
		ProfileID:   p.ProfileID,
		Status:      string(p.Status),
		Name:        p.Name,
		Description: p.Description,
		DaysPerWeek: p.DaysPerWeek,
		TotalWeeks:  p.TotalWeeks,
		CurrentWeek: p.CurrentWeek,
		StartDate:   p.StartDate,
		IsActive:    p.IsActive,
		Document:    string(p.Document),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	phases := make([]Phase, 0, len(p.Phases))
	for _, ph := range p.Phases {
		phases = append(phases, Phase{
			ID:             ph.ID,
			PlanID:         p.ID,
			Name:           ph.Name,
			Type:           string(ph.Type),
			WeekStart:      ph.WeekStart,
			WeekEnd:        ph.WeekEnd,
			Description:    ph.Description,
			NutritionGuide: ph.NutritionGuide,
			OrderIndex:     ph.OrderIndex,
		})
	}

	workouts := make([]PlannedWorkout, 0, len(p.Workouts))
	var exercises []PlannedExercise
	for _, w := range p.Workouts {
		workouts = append(workouts, PlannedWorkout{
			ID:         w.ID,
			PlanID:     p.ID,
			DayOfWeek:  w.DayOfWeek,
			Name:       w.Name,
			OrderIndex: w.OrderIndex,
		})
		for _, e := range w.Exercises {
			exercises = append(exercises, PlannedExercise{
				ID:          e.ID,
				WorkoutID:   w.ID,
				Name:        e.Name,
				Category:    string(e.Category),
				Sets:        e.Sets,
				Reps:        e.Reps,
				RestSeconds: e.RestSeconds,
				Notes:       e.Notes,
				FormCues:    e.FormCues,
				OrderIndex:  e.OrderIndex,
			})
		}
	}
	return row, phases, workouts, exercises
}

func sessionToDomain(s WorkoutSession) domain.WorkoutSession {
	session := domain.WorkoutSession{
		ID:               s.ID,
		ProfileID:        s.ProfileID,
		PlannedWorkoutID: s.PlannedWorkoutID,
		WorkoutName:      s.WorkoutName,
		Date:             s.Date.UTC(),
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Feeling:          s.Feeling,
		Notes:            s.Notes,
		Sets:             make([]domain.LoggedSet, 0, len(s.Sets)),
	}
	for _, set := range s.Sets {
		session.Sets = append(session.Sets, domain.LoggedSet{
			ID:           set.ID,
			SessionID:    set.SessionID,
			ExerciseName: set.ExerciseName,
			SetNumber:    set.SetNumber,
			Weight:       set.Weight,
			Reps:         set.Reps,
			RPE:          set.RPE,
			Notes:        set.Notes,
		})
	}
	domain.SortSets(session.Sets)
	return session
}

func sessionFromDomain(s *domain.WorkoutSession) WorkoutSession {
	row := WorkoutSession{
		ID:               s.ID,
		ProfileID:        s.ProfileID,
		PlannedWorkoutID: s.PlannedWorkoutID,
		WorkoutName:      s.WorkoutName,
		Date:             s.Date,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Feeling:          s.Feeling,
		Notes:            s.Notes,
	}
	for _, set := range s.Sets {
		row.Sets = append(row.Sets, LoggedSet{
			ID:           set.ID,
			SessionID:    s.ID,
			ExerciseName: set.ExerciseName,
			SetNumber:    set.SetNumber,
			Weight:       set.Weight,
			Reps:         set.Reps,
			RPE:          set.RPE,
			Notes:        set.Notes,
		})
	}
	return row
}

func fitnessTestToDomain(t FitnessTest) domain.FitnessTest {
	return domain.FitnessTest{
		ID:                 t.ID,
		ProfileID:          t.ProfileID,
		TestDate:           t.TestDate.UTC(),
		Pushups:            t.Pushups,
		Pullups:            t.Pullups,
		WallSitSeconds:     t.WallSitSeconds,
		ToeTouchInches:     t.ToeTouchInches,
		PlankSeconds:       t.PlankSeconds,
		VerticalJumpInches: t.VerticalJumpInches,
		Notes:              t.Notes,
	}
}

func reviewToDomain(r Review) *domain.Review {
	return &domain.Review{
		ID:              r.ID,
		ProfileID:       r.ProfileID,
		CreatedAt:       r.CreatedAt,
		ReviewText:      r.ReviewText,
		SuggestionsJSON: r.SuggestionsJSON,
		DataSummary:     r.DataSummary,
	}
}
