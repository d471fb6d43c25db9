package plan_test

import (
	"testing"
	"time"

	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/ptr"
)

func session(id string, date time.Time, week int, completed bool) plan.Session {
	return plan.Session{
		ID:                 id,
		Date:               date,
		WeekNumber:         week,
		Type:               plan.TypeEndurance,
		PlannedDurationMin: 60,
		PlannedDistanceKm:  25,
		IntensityZone:      2,
		Completed:          completed,
	}
}

func TestSummarize_empty(t *testing.T) {
	t.Parallel()

	stats := plan.Summarize(nil, plan.Date(2026, time.February, 10))

	if stats.TotalSessions != 0 || stats.PercentComplete != 0 {
		t.Errorf("want zero stats, got %+v", stats)
	}
	if stats.NextSession != nil {
		t.Error("want no next session for empty plan")
	}
}

func TestSummarize_countsAndPercent(t *testing.T) {
	t.Parallel()

	today := plan.Date(2026, time.February, 10)
	sessions := []plan.Session{
		session("s1", plan.Date(2026, time.February, 2), 1, true),
		session("s2", plan.Date(2026, time.February, 4), 1, true),
		session("s3", plan.Date(2026, time.February, 9), 2, true),
		session("s4", plan.Date(2026, time.February, 11), 2, false),
		session("s5", plan.Date(2026, time.February, 13), 2, false),
		session("s6", plan.Date(2026, time.February, 16), 3, false),
	}

	stats := plan.Summarize(sessions, today)

	if stats.TotalSessions != 6 || stats.CompletedSessions != 3 {
		t.Errorf("want 3/6 sessions, got %d/%d", stats.CompletedSessions, stats.TotalSessions)
	}
	if stats.PercentComplete != 50 {
		t.Errorf("want 50%%, got %d%%", stats.PercentComplete)
	}
	if stats.WeeksTotal != 3 {
		t.Errorf("want 3 weeks, got %d", stats.WeeksTotal)
	}
	// Only week 1 has every session completed.
	if stats.WeeksCompleted != 1 {
		t.Errorf("want 1 week completed, got %d", stats.WeeksCompleted)
	}
	if stats.HoursTrained != 3 {
		t.Errorf("want 3 hours trained, got %v", stats.HoursTrained)
	}
	if stats.DistanceCoveredKm != 75 {
		t.Errorf("want 75 km covered, got %v", stats.DistanceCoveredKm)
	}
	if stats.NextSession == nil || stats.NextSession.ID != "s4" {
		t.Errorf("want s4 as next session, got %+v", stats.NextSession)
	}
}

func TestSummarize_actualValuesWinOverPlanned(t *testing.T) {
	t.Parallel()

	s := session("s1", plan.Date(2026, time.February, 2), 1, true)
	s.ActualDurationMin = ptr.Ref(90)
	s.ActualDistanceKm = ptr.Ref(40.0)

	stats := plan.Summarize([]plan.Session{s}, plan.Date(2026, time.February, 10))

	if stats.HoursTrained != 1.5 {
		t.Errorf("want 1.5 hours, got %v", stats.HoursTrained)
	}
	if stats.DistanceCoveredKm != 40 {
		t.Errorf("want 40 km, got %v", stats.DistanceCoveredKm)
	}
}

func TestSummarize_streak(t *testing.T) {
	t.Parallel()

	today := plan.Date(2026, time.February, 10)

	t.Run("rest days do not break the streak", func(t *testing.T) {
		t.Parallel()

		sessions := []plan.Session{
			session("s1", today.AddDate(0, 0, -4), 1, true),
			session("s2", today.AddDate(0, 0, -2), 1, true),
			session("s3", today, 1, true),
		}
		if got := plan.Summarize(sessions, today).StreakDays; got != 3 {
			t.Errorf("want streak 3, got %d", got)
		}
	})

	t.Run("missed past session breaks the streak", func(t *testing.T) {
		t.Parallel()

		sessions := []plan.Session{
			session("s1", today.AddDate(0, 0, -4), 1, true),
			session("s2", today.AddDate(0, 0, -2), 1, false),
			session("s3", today, 1, true),
		}
		if got := plan.Summarize(sessions, today).StreakDays; got != 1 {
			t.Errorf("want streak 1, got %d", got)
		}
	})

	t.Run("incomplete session today keeps the streak", func(t *testing.T) {
		t.Parallel()

		sessions := []plan.Session{
			session("s1", today.AddDate(0, 0, -1), 1, true),
			session("s2", today, 1, false),
		}
		if got := plan.Summarize(sessions, today).StreakDays; got != 1 {
			t.Errorf("want streak 1, got %d", got)
		}
	})

	t.Run("streak window is bounded", func(t *testing.T) {
		t.Parallel()

		var sessions []plan.Session
		for i := 0; i < 90; i++ {
			sessions = append(sessions, session("s", today.AddDate(0, 0, -i), 1, true))
		}
		if got := plan.Summarize(sessions, today).StreakDays; got != 60 {
			t.Errorf("want streak capped at 60, got %d", got)
		}
	})
}

func TestSummarize_readjustment(t *testing.T) {
	t.Parallel()

	today := plan.Date(2026, time.February, 10)

	rated := func(id string, daysAgo, effort int) plan.Session {
		s := session(id, today.AddDate(0, 0, -daysAgo), 1, true)
		s.PerceivedEffort = ptr.Ref(effort)
		return s
	}

	tests := []struct {
		name     string
		sessions []plan.Session
		want     plan.Readjustment
	}{
		{
			name: "two recent hard rides flag the plan as hard",
			sessions: []plan.Session{
				rated("s1", 1, 9), rated("s2", 2, 8), rated("s3", 3, 5),
			},
			want: plan.ReadjustHard,
		},
		{
			name: "two recent easy rides flag the plan as easy",
			sessions: []plan.Session{
				rated("s1", 1, 2), rated("s2", 2, 3), rated("s3", 3, 6),
			},
			want: plan.ReadjustEasy,
		},
		{
			name: "mixed efforts keep the plan",
			sessions: []plan.Session{
				rated("s1", 1, 9), rated("s2", 2, 2), rated("s3", 3, 5),
			},
			want: plan.ReadjustNone,
		},
		{
			name:     "fewer than three rated sessions is not enough signal",
			sessions: []plan.Session{rated("s1", 1, 9), rated("s2", 2, 9)},
			want:     plan.ReadjustNone,
		},
		{
			name: "only the three most recent ratings count",
			sessions: []plan.Session{
				rated("s1", 1, 5), rated("s2", 2, 5), rated("s3", 3, 5),
				rated("s4", 4, 9), rated("s5", 5, 9),
			},
			want: plan.ReadjustNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := plan.Summarize(tt.sessions, today).Readjustment; got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
