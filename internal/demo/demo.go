// Package demo provides the canned rider used to try the app without an
// account or an API key: a fixed profile, a deterministic plan generator and
// a local JSON fallback store.
package demo

import (
	"time"

	"github.com/dunr-app/dunr/internal/profile"
)

const (
	// UserID is the reserved rider id for demo mode.
	UserID = "demo-user"
	Email  = "demo@dunr.app"

	// Seed makes demo generation reproducible across runs.
	Seed uint64 = 20260426
)

// Profile is the questionnaire of the demo rider.
func Profile() profile.Profile {
	return profile.Profile{
		Name:                "Alex Demo",
		Age:                 36,
		WeightKg:            72,
		HeightCm:            178,
		Experience:          profile.ExperienceIntermediate,
		AvgSpeedKmh:         25,
		MaxDistanceKm:       110,
		RestingHR:           54,
		TrainingDaysPerWeek: 4,
		MinutesPerDay:       90,
		PreferredWeekdays:   []time.Weekday{time.Monday, time.Wednesday, time.Friday, time.Saturday},
		ParticipatedBefore:  false,
		RaceID:              "morocco-2026",
		Subscription:        profile.SubscriptionActive,
	}
}
