// Package plangen turns a rider profile into a dated training plan. A
// language model proposes representative training weeks; the scheduler
// expands them onto the calendar.
package plangen

import (
	"fmt"
	"time"

	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/profile"
	"github.com/dunr-app/dunr/internal/races"
)

// Phase labels a representative training week.
type Phase string

const (
	PhaseBase     Phase = "base"
	PhaseBuild    Phase = "build"
	PhasePeak     Phase = "peak"
	PhaseTaper    Phase = "taper"
	PhaseRecovery Phase = "recovery"
)

var allPhases = []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseTaper, PhaseRecovery}

// Request carries everything generation needs.
type Request struct {
	Profile      profile.Profile
	Race         races.Race
	Readjustment plan.Readjustment
	Now          time.Time
}

// WeekTemplate is one representative week proposed by the model. The
// scheduler stamps it onto every calendar week of the matching phase.
type WeekTemplate struct {
	Phase    Phase             `json:"phase"`
	Sessions []SessionTemplate `json:"sessions"`
}

// SessionTemplate is one session within a representative week. Slot indexes
// into the rider's weekly training days, so slot 0 is the first training day
// of the week.
type SessionTemplate struct {
	Slot          int              `json:"slot"`
	Type          plan.SessionType `json:"type"`
	DurationMin   int              `json:"durationMin"`
	DistanceKm    float64          `json:"distanceKm"`
	IntensityZone int              `json:"intensityZone"`
	Description   string           `json:"description"`
}

// validateTemplates checks the model output before any of it reaches the
// calendar.
func validateTemplates(templates []WeekTemplate, trainingDays int) error {
	seen := make(map[Phase]bool)
	for _, week := range templates {
		if !validPhase(week.Phase) {
			return fmt.Errorf("unknown phase %q", week.Phase)
		}
		if seen[week.Phase] {
			return fmt.Errorf("duplicate phase %q", week.Phase)
		}
		seen[week.Phase] = true

		if len(week.Sessions) == 0 {
			return fmt.Errorf("phase %q has no sessions", week.Phase)
		}
		for _, s := range week.Sessions {
			if s.Slot < 0 || s.Slot >= trainingDays {
				return fmt.Errorf("phase %q: slot %d outside 0-%d", week.Phase, s.Slot, trainingDays-1)
			}
			if !validSessionType(s.Type) {
				return fmt.Errorf("phase %q: unknown session type %q", week.Phase, s.Type)
			}
			if s.IntensityZone < 1 || s.IntensityZone > 5 {
				return fmt.Errorf("phase %q: intensity zone %d outside 1-5", week.Phase, s.IntensityZone)
			}
			if s.DurationMin <= 0 {
				return fmt.Errorf("phase %q: duration %d must be positive", week.Phase, s.DurationMin)
			}
		}
	}

	for _, phase := range allPhases {
		if !seen[phase] {
			return fmt.Errorf("missing phase %q", phase)
		}
	}

	return nil
}

func validPhase(p Phase) bool {
	switch p {
	case PhaseBase, PhaseBuild, PhasePeak, PhaseTaper, PhaseRecovery:
		return true
	default:
		return false
	}
}

func validSessionType(t plan.SessionType) bool {
	switch t {
	case plan.TypeEndurance, plan.TypeIntervals, plan.TypeStrength, plan.TypeActiveRest, plan.TypeLong:
		return true
	default:
		return false
	}
}
