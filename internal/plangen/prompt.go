package plangen

import (
	"fmt"
	"strings"

	"github.com/dunr-app/dunr/internal/plan"
)

const systemPrompt = `You are a cycling coach who designs training plans for ` +
	`multi-day desert MTB stage races. You answer only with the requested JSON.`

// buildPrompt renders a generation request into the user message. The model
// returns one representative week per phase; the server expands them onto
// actual dates itself.
func buildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Design representative training weeks for this rider.\n\n")
	fmt.Fprintf(&b, "Race: %s (%s), %d km over %d stages, on %s.\n",
		req.Race.Name, req.Race.Location, req.Race.TotalDistanceKm, req.Race.Stages, req.Race.Date)

	p := req.Profile
	fmt.Fprintf(&b, "Rider: %d years, %.0f kg, %.0f cm, %s level.\n", p.Age, p.WeightKg, p.HeightCm, p.Experience)
	fmt.Fprintf(&b, "Current form: averages %.0f km/h, longest ride %.0f km, resting HR %d.\n",
		p.AvgSpeedKmh, p.MaxDistanceKm, p.RestingHR)
	fmt.Fprintf(&b, "Availability: %d training days per week, about %d minutes per day.\n",
		p.TrainingDaysPerWeek, p.MinutesPerDay)
	if p.ParticipatedBefore {
		fmt.Fprintf(&b, "The rider has finished this race before.\n")
	}

	switch req.Readjustment {
	case plan.ReadjustHard:
		fmt.Fprintf(&b, "Recent sessions were rated very hard. Reduce overall load noticeably.\n")
	case plan.ReadjustEasy:
		fmt.Fprintf(&b, "Recent sessions were rated very easy. Increase overall load noticeably.\n")
	case plan.ReadjustNone:
	}

	fmt.Fprintf(&b, `
Return exactly five weeks, one per phase: base, build, peak, taper, recovery.
Each week has %d sessions, one per training day, with slot 0 the first
training day of the week and slot %d the last (the long ride belongs on the
last slot). Sessions carry type (endurance, intervals, strength, active_rest,
long), duration in minutes (at most %d), distance in km, intensity zone 1-5
and a short coaching description.`,
		p.TrainingDaysPerWeek, p.TrainingDaysPerWeek-1, p.MinutesPerDay+30)

	return b.String()
}

// templatesSchema is the JSON schema constraining the model output.
func templatesSchema() map[string]any {
	sessionSchema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required": []string{
			"slot", "type", "durationMin", "distanceKm", "intensityZone", "description",
		},
		"properties": map[string]any{
			"slot":        map[string]any{"type": "integer"},
			"type":        map[string]any{"type": "string", "enum": []string{"endurance", "intervals", "strength", "active_rest", "long"}},
			"durationMin": map[string]any{"type": "integer"},
			"distanceKm":  map[string]any{"type": "number"},
			"intensityZone": map[string]any{
				"type": "integer", "minimum": 1, "maximum": 5,
			},
			"description": map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"weeks"},
		"properties": map[string]any{
			"weeks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"phase", "sessions"},
					"properties": map[string]any{
						"phase": map[string]any{
							"type": "string",
							"enum": []string{"base", "build", "peak", "taper", "recovery"},
						},
						"sessions": map[string]any{"type": "array", "items": sessionSchema},
					},
				},
			},
		},
	}
}
