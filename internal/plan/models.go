// Package plan holds the training calendar: generated plans, their sessions
// and the progress view derived from them.
package plan

import "time"

const dateFormat = time.DateOnly

// SessionType classifies what kind of ride a session is.
type SessionType string

const (
	TypeEndurance  SessionType = "endurance"
	TypeIntervals  SessionType = "intervals"
	TypeStrength   SessionType = "strength"
	TypeActiveRest SessionType = "active_rest"
	TypeLong       SessionType = "long"
)

// Session is a single planned ride. The Actual* fields and Note are nil until
// the rider completes the session and logs what actually happened.
type Session struct {
	ID                 string      `json:"id"`
	PlanID             string      `json:"planID"`
	Date               time.Time   `json:"date"`
	WeekNumber         int         `json:"weekNumber"`
	Type               SessionType `json:"type"`
	PlannedDurationMin int         `json:"plannedDurationMin"`
	PlannedDistanceKm  float64     `json:"plannedDistanceKm"`
	IntensityZone      int         `json:"intensityZone"`
	Description        string      `json:"description"`
	Completed          bool        `json:"completed"`
	ActualDurationMin  *int        `json:"actualDurationMin,omitempty"`
	ActualDistanceKm   *float64    `json:"actualDistanceKm,omitempty"`
	PerceivedEffort    *int        `json:"perceivedEffort,omitempty"`
	HRAvg              *int        `json:"hrAvg,omitempty"`
	HRMax              *int        `json:"hrMax,omitempty"`
	ElevationGainM     *int        `json:"elevationGainM,omitempty"`
	AvgSpeedKmh        *float64    `json:"avgSpeedKmh,omitempty"`
	AvgCadence         *int        `json:"avgCadence,omitempty"`
	Note               *string     `json:"note,omitempty"`
}

// Weekday returns the session's day of the week.
func (s Session) Weekday() time.Weekday {
	return s.Date.Weekday()
}

// Plan is one generated training plan. Only one plan per rider is active at a
// time; generating a new one deactivates the previous.
type Plan struct {
	ID         string    `json:"id"`
	RaceID     string    `json:"raceID"`
	Active     bool      `json:"active"`
	IsPartial  bool      `json:"isPartial"`
	TotalWeeks int       `json:"totalWeeks"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Date normalizes a timestamp to midnight UTC so that sessions can be
// compared and bucketed by calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ToDate truncates a timestamp to its calendar day in UTC.
func ToDate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}
