package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

var templateFuncs = template.FuncMap{
	"deref": func(v any) string {
		switch p := v.(type) {
		case *int:
			if p != nil {
				return fmt.Sprint(*p)
			}
		case *float64:
			if p != nil {
				return fmt.Sprint(*p)
			}
		}
		return "n/a"
	},
	"date": func(v any) string {
		type dated interface{ Format(string) string }
		if d, ok := v.(dated); ok {
			return d.Format("2006-01-02")
		}
		return ""
	},
}

var planPrompt = template.Must(template.New("plan").Funcs(templateFuncs).Parse(
	`You are a certified personal trainer. Create a detailed, periodized workout plan for the following person:
Age: {{.Profile.Age}}, Sex: {{.Profile.Sex}}, Fitness Level: {{.Profile.FitnessLevel}}, Goals: {{.Profile.Goals}}.
{{with .FitnessTest}}
Their most recent fitness test ({{date .TestDate}}):
Push-ups: {{deref .Pushups}}, Pull-ups: {{deref .Pullups}}, Wall sit: {{deref .WallSitSeconds}} s, Toe touch: {{deref .ToeTouchInches}} in, Plank: {{deref .PlankSeconds}} s, Vertical jump: {{deref .VerticalJumpInches}} in.
{{- with .Notes}}
Notes: {{.}}{{end}}
Use these results to calibrate the starting volume and intensity.
{{end}}
The plan runs for 12 weeks, split into phases. Use "recovery" phases as deload weeks.

Return a JSON object with this structure:
{
  "plan_name": string,
  "description": string,
  "days_per_week": int,
  "total_weeks": int,
  "phases": [
    {
      "phase_name": string,
      "phase_type": "progressive" | "recovery",
      "week_start": int,
      "week_end": int,
      "description": string,
      "nutrition_guide": string
    }
  ],
  "workouts": [
    {
      "day": "Monday",
      "name": string,
      "exercises": [
        {
          "name": string,
          "type": "warmup" | "main" | "cooldown",
          "sets": int,
          "reps": string,
          "rest_seconds": int,
          "notes": string,
          "form_cues": string
        }
      ]
    }
  ]
}

Return only valid JSON, no commentary.`))

var reviewPrompt = template.Must(template.New("review").Funcs(templateFuncs).Parse(
	`You are a certified personal trainer reviewing a client's workout history.

Client: {{.Profile.Name}}, Age: {{.Profile.Age}}, Sex: {{.Profile.Sex}}, Fitness Level: {{.Profile.FitnessLevel}}, Goals: {{.Profile.Goals}}.

Here is a summary of their recent workout sessions:
{{.SessionsJSON}}

Please analyze this data and:
1. Identify strength trends
2. Flag any plateaus or concerning patterns
3. Note themes from session comments
4. Suggest 3-5 specific adjustments to the workout plan

Return your review as JSON with these keys:
{
  "whats_working": string,
  "watch_out_for": string,
  "suggestions": [string],
  "overall_assessment": string
}

Return only valid JSON, no commentary.`))

func renderPlanPrompt(req PlanRequest) (string, error) {
	var buf bytes.Buffer
	if err := planPrompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render plan prompt: %w", err)
	}
	return buf.String(), nil
}

func renderReviewPrompt(req ReviewRequest) (string, error) {
	sessions, err := json.MarshalIndent(req.Sessions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sessions: %w", err)
	}

	var buf bytes.Buffer
	err = reviewPrompt.Execute(&buf, struct {
		ReviewRequest
		SessionsJSON string
	}{req, string(sessions)})
	if err != nil {
		return "", fmt.Errorf("render review prompt: %w", err)
	}
	return buf.String(), nil
}
