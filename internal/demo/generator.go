package demo

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/plangen"
)

// Generator proposes training weeks without calling a language model. The
// same seed always yields the same weeks, so demo plans are reproducible.
// It satisfies the same interface as the OpenAI client and runs through the
// ordinary scheduler.
type Generator struct {
	Seed uint64
}

// phaseLoad scales duration and distance per phase relative to the base week.
var phaseLoad = map[plangen.Phase]float64{
	plangen.PhaseBase:     1.0,
	plangen.PhaseBuild:    1.15,
	plangen.PhasePeak:     1.3,
	plangen.PhaseTaper:    0.5,
	plangen.PhaseRecovery: 0.6,
}

var phaseDescriptions = map[plangen.Phase]string{
	plangen.PhaseBase:     "Build the aerobic base, stay conversational",
	plangen.PhaseBuild:    "Add load, hold form when it gets uncomfortable",
	plangen.PhasePeak:     "Race-specific intensity, ride the efforts like stages",
	plangen.PhaseTaper:    "Sharpen up, short and snappy, rest wins now",
	plangen.PhaseRecovery: "Absorb the training, keep it truly easy",
}

func (g Generator) GenerateWeeks(_ context.Context, req plangen.Request) ([]plangen.WeekTemplate, error) {
	days := req.Profile.TrainingDaysPerWeek
	if days < 2 || days > 6 {
		return nil, fmt.Errorf("cannot generate for %d training days", days)
	}

	rng := rand.New(rand.NewPCG(g.Seed, g.Seed))
	baseMinutes := req.Profile.MinutesPerDay

	var templates []plangen.WeekTemplate
	for _, phase := range []plangen.Phase{
		plangen.PhaseBase, plangen.PhaseBuild, plangen.PhasePeak, plangen.PhaseTaper, plangen.PhaseRecovery,
	} {
		load := phaseLoad[phase]
		sessions := make([]plangen.SessionTemplate, 0, days)
		for slot := 0; slot < days; slot++ {
			sessions = append(sessions, sessionForSlot(rng, phase, slot, days, baseMinutes, load, req.Profile.AvgSpeedKmh))
		}
		templates = append(templates, plangen.WeekTemplate{Phase: phase, Sessions: sessions})
	}

	return templates, nil
}

// sessionForSlot mirrors the bundled demo plan's weekly shape: the last slot
// is the long ride, the second an interval day, the third strength, and
// everything else steady endurance.
func sessionForSlot(
	rng *rand.Rand,
	phase plangen.Phase,
	slot, days, baseMinutes int,
	load, avgSpeed float64,
) plangen.SessionTemplate {
	var (
		sessionType plan.SessionType
		minutes     int
		zone        int
	)

	switch {
	case slot == days-1:
		sessionType = plan.TypeLong
		minutes = baseMinutes + 30 + rng.IntN(31)
		zone = 3
	case slot == 1:
		sessionType = plan.TypeIntervals
		minutes = baseMinutes - 20 + rng.IntN(16)
		zone = 3 + rng.IntN(2)
	case slot == 2 && days > 3:
		sessionType = plan.TypeStrength
		minutes = baseMinutes - 30 + rng.IntN(16)
		zone = 3
	default:
		sessionType = plan.TypeEndurance
		minutes = baseMinutes - 10 + rng.IntN(21)
		zone = 2
	}

	if phase == plangen.PhaseRecovery || phase == plangen.PhaseTaper {
		if sessionType == plan.TypeIntervals || sessionType == plan.TypeStrength {
			sessionType = plan.TypeActiveRest
			zone = 1
		}
	}

	minutes = max(int(float64(minutes)*load), 30)
	distance := float64(minutes) / 60 * avgSpeed * zoneSpeedFactor(zone)

	return plangen.SessionTemplate{
		Slot:          slot,
		Type:          sessionType,
		DurationMin:   minutes,
		DistanceKm:    roundHalf(distance),
		IntensityZone: zone,
		Description:   phaseDescriptions[phase],
	}
}

// zoneSpeedFactor discounts expected speed for harder, choppier sessions.
func zoneSpeedFactor(zone int) float64 {
	switch zone {
	case 1:
		return 0.7
	case 2:
		return 0.9
	default:
		return 0.8
	}
}

func roundHalf(v float64) float64 {
	return float64(int(v*2+0.5)) / 2
}
