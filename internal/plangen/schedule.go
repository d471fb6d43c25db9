package plangen

import (
	"fmt"
	"sort"
	"time"

	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/profile"
	"github.com/google/uuid"
)

// maxPlanWeeks is the phase-1 horizon. Riders further out than this get a
// partial plan and regenerate closer to the race.
const maxPlanWeeks = 12

// ErrRaceTooClose is returned when there is not a single full week left
// before the race.
var ErrRaceTooClose = errors.NewSentinel("race is too close to plan for")

// defaultTrainingDays maps days-per-week to the weekdays trained, with the
// long ride always landing on Saturday.
var defaultTrainingDays = map[int][]time.Weekday{
	2: {time.Tuesday, time.Saturday},
	3: {time.Tuesday, time.Thursday, time.Saturday},
	4: {time.Monday, time.Wednesday, time.Friday, time.Saturday},
	5: {time.Monday, time.Tuesday, time.Thursday, time.Friday, time.Saturday},
	6: {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
}

// Expand stamps the representative weeks onto the calendar. The plan starts
// on the Monday after the request and ends before the race date; sessions
// that would land on or after the race are dropped.
func Expand(req Request, templates []WeekTemplate) (plan.Plan, []plan.Session, error) {
	if err := validateTemplates(templates, req.Profile.TrainingDaysPerWeek); err != nil {
		return plan.Plan{}, nil, fmt.Errorf("validate templates: %w", err)
	}

	start := nextMonday(req.Now)
	raceDate := req.Race.StartDate()

	daysLeft := int(raceDate.Sub(start).Hours() / 24)
	if daysLeft < 7 {
		return plan.Plan{}, nil, ErrRaceTooClose
	}

	totalWeeks := (daysLeft + 6) / 7
	partial := false
	if totalWeeks > maxPlanWeeks {
		totalWeeks = maxPlanWeeks
		partial = true
	}

	byPhase := make(map[Phase]WeekTemplate, len(templates))
	for _, week := range templates {
		byPhase[week.Phase] = week
	}

	weekdays := trainingWeekdays(req.Profile)
	maxDuration := req.Profile.MinutesPerDay + 30

	p := plan.Plan{
		ID:         uuid.NewString(),
		RaceID:     req.Race.ID,
		Active:     true,
		IsPartial:  partial,
		TotalWeeks: totalWeeks,
		CreatedAt:  req.Now.UTC(),
	}

	var sessions []plan.Session
	for week := 1; week <= totalWeeks; week++ {
		weekStart := start.AddDate(0, 0, (week-1)*7)
		template := byPhase[phaseFor(week, totalWeeks, partial)]

		for _, tpl := range template.Sessions {
			date := weekStart.AddDate(0, 0, mondayIndex(weekdays[tpl.Slot]))
			if !date.Before(raceDate) {
				continue
			}

			sessions = append(sessions, plan.Session{
				ID:                 uuid.NewString(),
				PlanID:             p.ID,
				Date:               date,
				WeekNumber:         week,
				Type:               tpl.Type,
				PlannedDurationMin: min(tpl.DurationMin, maxDuration),
				PlannedDistanceKm:  tpl.DistanceKm,
				IntensityZone:      tpl.IntensityZone,
				Description:        tpl.Description,
			})
		}
	}

	return p, sessions, nil
}

// phaseFor assigns a phase to a calendar week. The final week tapers unless
// the plan is partial, every fourth week recovers, and the rest split into
// thirds of base, build and peak.
func phaseFor(week, totalWeeks int, partial bool) Phase {
	if week == totalWeeks && !partial {
		return PhaseTaper
	}
	if week%4 == 0 {
		return PhaseRecovery
	}

	progress := float64(week) / float64(totalWeeks)
	switch {
	case progress <= 1.0/3.0:
		return PhaseBase
	case progress <= 2.0/3.0:
		return PhaseBuild
	default:
		return PhasePeak
	}
}

// trainingWeekdays resolves which weekdays the rider trains on. A preferred
// pattern matching the days-per-week answer wins over the default spread.
func trainingWeekdays(p profile.Profile) []time.Weekday {
	if len(p.PreferredWeekdays) == p.TrainingDaysPerWeek {
		days := make([]time.Weekday, len(p.PreferredWeekdays))
		copy(days, p.PreferredWeekdays)
		sort.Slice(days, func(i, j int) bool {
			return mondayIndex(days[i]) < mondayIndex(days[j])
		})

		return days
	}

	return defaultTrainingDays[p.TrainingDaysPerWeek]
}

// nextMonday returns the Monday strictly after the given day.
func nextMonday(t time.Time) time.Time {
	date := plan.ToDate(t)

	return date.AddDate(0, 0, 7-mondayIndex(date.Weekday()))
}

// mondayIndex numbers weekdays with Monday as 0.
func mondayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}
