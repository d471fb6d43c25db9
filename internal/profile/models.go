// Package profile stores the rider questionnaire that seeds plan generation.
package profile

import (
	"fmt"
	"time"
)

// ExperienceLevel describes how seasoned the rider is.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// SubscriptionStatus gates access to the generated calendar.
type SubscriptionStatus string

const (
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

// Profile is the onboarding questionnaire for a rider.
type Profile struct {
	Name                string             `json:"name"`
	Age                 int                `json:"age"`
	WeightKg            float64            `json:"weightKg"`
	HeightCm            float64            `json:"heightCm"`
	Experience          ExperienceLevel    `json:"experience"`
	AvgSpeedKmh         float64            `json:"avgSpeedKmh"`
	MaxDistanceKm       float64            `json:"maxDistanceKm"`
	RestingHR           int                `json:"restingHR"`
	TrainingDaysPerWeek int                `json:"trainingDaysPerWeek"`
	MinutesPerDay       int                `json:"minutesPerDay"`
	PreferredWeekdays   []time.Weekday     `json:"preferredWeekdays,omitempty"`
	ParticipatedBefore  bool               `json:"participatedBefore"`
	RaceID              string             `json:"raceID"`
	Subscription        SubscriptionStatus `json:"subscription"`
}

// FieldErrors checks the questionnaire against the ranges the generator is
// calibrated for, keyed by JSON field name.
func (p Profile) FieldErrors() map[string]string {
	fields := make(map[string]string)

	if p.Name == "" {
		fields["name"] = "name is required"
	}
	if p.Age < 16 || p.Age > 80 {
		fields["age"] = fmt.Sprintf("age %d outside 16-80", p.Age)
	}
	if p.WeightKg < 40 || p.WeightKg > 150 {
		fields["weightKg"] = fmt.Sprintf("weight %.1f kg outside 40-150", p.WeightKg)
	}
	if p.HeightCm < 140 || p.HeightCm > 210 {
		fields["heightCm"] = fmt.Sprintf("height %.1f cm outside 140-210", p.HeightCm)
	}
	if p.AvgSpeedKmh < 10 || p.AvgSpeedKmh > 50 {
		fields["avgSpeedKmh"] = fmt.Sprintf("average speed %.1f km/h outside 10-50", p.AvgSpeedKmh)
	}
	if p.MaxDistanceKm < 10 || p.MaxDistanceKm > 500 {
		fields["maxDistanceKm"] = fmt.Sprintf("max distance %.1f km outside 10-500", p.MaxDistanceKm)
	}
	if p.RestingHR < 30 || p.RestingHR > 100 {
		fields["restingHR"] = fmt.Sprintf("resting heart rate %d outside 30-100", p.RestingHR)
	}
	if p.TrainingDaysPerWeek < 2 || p.TrainingDaysPerWeek > 6 {
		fields["trainingDaysPerWeek"] = fmt.Sprintf("training days %d outside 2-6", p.TrainingDaysPerWeek)
	}
	if p.MinutesPerDay < 30 || p.MinutesPerDay > 180 {
		fields["minutesPerDay"] = fmt.Sprintf("minutes per day %d outside 30-180", p.MinutesPerDay)
	}
	if !validExperience(p.Experience) {
		fields["experience"] = fmt.Sprintf("unknown experience level %q", p.Experience)
	}

	return fields
}

// Validate reports the first range violation as an error.
func (p Profile) Validate() error {
	fields := p.FieldErrors()
	for field, message := range fields {
		return fmt.Errorf("invalid profile: %s: %s", field, message)
	}

	return nil
}

func validExperience(level ExperienceLevel) bool {
	switch level {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	default:
		return false
	}
}
