package plan

import (
	"math"
	"sort"
	"time"
)

// streakWindowDays bounds how far back the streak calculation walks.
const streakWindowDays = 60

// Readjustment flags how the recent perceived effort compares to the plan.
type Readjustment string

const (
	ReadjustNone Readjustment = ""
	ReadjustHard Readjustment = "hard"
	ReadjustEasy Readjustment = "easy"
)

// Stats is the dashboard summary of a plan.
type Stats struct {
	TotalSessions     int          `json:"totalSessions"`
	CompletedSessions int          `json:"completedSessions"`
	PercentComplete   int          `json:"percentComplete"`
	WeeksTotal        int          `json:"weeksTotal"`
	WeeksCompleted    int          `json:"weeksCompleted"`
	HoursTrained      float64      `json:"hoursTrained"`
	DistanceCoveredKm float64      `json:"distanceCoveredKm"`
	StreakDays        int          `json:"streakDays"`
	NextSession       *Session     `json:"nextSession,omitempty"`
	Readjustment      Readjustment `json:"readjustment,omitempty"`
}

// Summarize derives dashboard statistics from the plan's sessions as of the
// given day. It never mutates its input.
func Summarize(sessions []Session, today time.Time) Stats {
	today = ToDate(today)

	stats := Stats{
		TotalSessions: len(sessions),
	}

	weekSessions := make(map[int]int)
	weekCompleted := make(map[int]int)

	for _, s := range sessions {
		weekSessions[s.WeekNumber]++
		if !s.Completed {
			continue
		}

		stats.CompletedSessions++
		weekCompleted[s.WeekNumber]++

		duration := s.PlannedDurationMin
		if s.ActualDurationMin != nil {
			duration = *s.ActualDurationMin
		}
		stats.HoursTrained += float64(duration) / 60

		distance := s.PlannedDistanceKm
		if s.ActualDistanceKm != nil {
			distance = *s.ActualDistanceKm
		}
		stats.DistanceCoveredKm += distance
	}

	if stats.TotalSessions > 0 {
		stats.PercentComplete = int(math.Round(
			100 * float64(stats.CompletedSessions) / float64(stats.TotalSessions)))
	}

	stats.WeeksTotal = len(weekSessions)
	for week, total := range weekSessions {
		if weekCompleted[week] == total {
			stats.WeeksCompleted++
		}
	}

	stats.StreakDays = streak(sessions, today)
	stats.NextSession = nextSession(sessions, today)
	stats.Readjustment = readjustment(sessions)

	return stats
}

// streak counts consecutive training days ending at today. Days without a
// scheduled session do not break the streak, a missed session strictly in the
// past does. An incomplete session today leaves the streak intact because the
// day is not over yet.
func streak(sessions []Session, today time.Time) int {
	// A day with several sessions counts only when all of them are done.
	scheduled := make(map[time.Time]bool)
	incomplete := make(map[time.Time]bool)
	for _, s := range sessions {
		date := ToDate(s.Date)
		scheduled[date] = true
		if !s.Completed {
			incomplete[date] = true
		}
	}

	count := 0
	for i := 0; i < streakWindowDays; i++ {
		date := today.AddDate(0, 0, -i)
		if !scheduled[date] {
			continue
		}
		if !incomplete[date] {
			count++

			continue
		}
		if date.Before(today) {
			break
		}
	}

	return count
}

// nextSession returns the earliest incomplete session scheduled today or
// later, or nil when the plan has none left.
func nextSession(sessions []Session, today time.Time) *Session {
	var next *Session
	for i := range sessions {
		s := sessions[i]
		if s.Completed || ToDate(s.Date).Before(today) {
			continue
		}
		if next == nil || s.Date.Before(next.Date) {
			next = &s
		}
	}

	return next
}

// readjustment looks at the three most recently completed sessions that have
// a perceived effort rating. Two or more rides rated 8 and up flag the plan
// as too hard, two or more rated 3 and below flag it as too easy. Fewer than
// three rated sessions is not enough signal.
func readjustment(sessions []Session) Readjustment {
	var rated []Session
	for _, s := range sessions {
		if s.Completed && s.PerceivedEffort != nil {
			rated = append(rated, s)
		}
	}
	if len(rated) < 3 {
		return ReadjustNone
	}

	sort.Slice(rated, func(i, j int) bool {
		return rated[i].Date.After(rated[j].Date)
	})
	rated = rated[:3]

	hard, easy := 0, 0
	for _, s := range rated {
		switch effort := *s.PerceivedEffort; {
		case effort >= 8:
			hard++
		case effort <= 3:
			easy++
		}
	}

	switch {
	case hard >= 2:
		return ReadjustHard
	case easy >= 2:
		return ReadjustEasy
	default:
		return ReadjustNone
	}
}
