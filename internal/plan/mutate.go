package plan

import (
	"fmt"
	"time"
)

// CompletionDetails carries what the rider logged after finishing a session.
// Nil fields are left untouched on the session.
type CompletionDetails struct {
	ActualDurationMin *int     `json:"actualDurationMin,omitempty"`
	ActualDistanceKm  *float64 `json:"actualDistanceKm,omitempty"`
	PerceivedEffort   *int     `json:"perceivedEffort,omitempty"`
	HRAvg             *int     `json:"hrAvg,omitempty"`
	HRMax             *int     `json:"hrMax,omitempty"`
	ElevationGainM    *int     `json:"elevationGainM,omitempty"`
	AvgSpeedKmh       *float64 `json:"avgSpeedKmh,omitempty"`
	AvgCadence        *int     `json:"avgCadence,omitempty"`
	Note              *string  `json:"note,omitempty"`
}

// ToggleCompletion flips the completion state of a session. Unmarking a
// session discards everything the rider logged for it so that a later
// re-completion starts from a clean slate.
func ToggleCompletion(s *Session) {
	if s.Completed {
		s.Completed = false
		s.ActualDurationMin = nil
		s.ActualDistanceKm = nil
		s.PerceivedEffort = nil
		s.HRAvg = nil
		s.HRMax = nil
		s.ElevationGainM = nil
		s.AvgSpeedKmh = nil
		s.AvgCadence = nil
		s.Note = nil

		return
	}

	s.Completed = true
}

// UpdateCompletedDetails records post-ride data on a completed session.
func UpdateCompletedDetails(s *Session, details CompletionDetails) error {
	if !s.Completed {
		return fmt.Errorf("session %s is not completed", s.ID)
	}
	if details.PerceivedEffort != nil {
		if effort := *details.PerceivedEffort; effort < 1 || effort > 10 {
			return fmt.Errorf("perceived effort %d outside 1-10", effort)
		}
	}
	if details.ActualDurationMin != nil && *details.ActualDurationMin <= 0 {
		return fmt.Errorf("actual duration %d must be positive", *details.ActualDurationMin)
	}
	if details.ActualDistanceKm != nil && *details.ActualDistanceKm < 0 {
		return fmt.Errorf("actual distance %.1f must not be negative", *details.ActualDistanceKm)
	}

	if details.ActualDurationMin != nil {
		s.ActualDurationMin = details.ActualDurationMin
	}
	if details.ActualDistanceKm != nil {
		s.ActualDistanceKm = details.ActualDistanceKm
	}
	if details.PerceivedEffort != nil {
		s.PerceivedEffort = details.PerceivedEffort
	}
	if details.HRAvg != nil {
		s.HRAvg = details.HRAvg
	}
	if details.HRMax != nil {
		s.HRMax = details.HRMax
	}
	if details.ElevationGainM != nil {
		s.ElevationGainM = details.ElevationGainM
	}
	if details.AvgSpeedKmh != nil {
		s.AvgSpeedKmh = details.AvgSpeedKmh
	}
	if details.AvgCadence != nil {
		s.AvgCadence = details.AvgCadence
	}
	if details.Note != nil {
		s.Note = details.Note
	}

	return nil
}

// MoveSession reschedules a session to a different calendar day, completed
// or not. The week number is kept as planned so that weekly progress still
// refers to the original plan structure.
func MoveSession(s *Session, to time.Time) {
	s.Date = ToDate(to)
}
