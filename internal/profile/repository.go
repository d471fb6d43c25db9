package profile

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/sqlite"
	"github.com/google/uuid"
)

// ErrNotFound is returned when the user has not finished onboarding yet.
var ErrNotFound = errors.NewSentinel("profile not found")

// Repository persists rider profiles in SQLite.
type Repository struct {
	db *sqlite.Database
}

func NewRepository(db *sqlite.Database) *Repository {
	return &Repository{db: db}
}

// EnsureUser creates the user row if it does not exist yet. Logging in is the
// only registration step there is.
func (r *Repository) EnsureUser(ctx context.Context, userID, email string) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (id, email) VALUES (?, ?)
		ON CONFLICT (id) DO NOTHING`, userID, email)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	return nil
}

// FindOrCreateUser returns the user id for an email address, registering the
// user on first login.
func (r *Repository) FindOrCreateUser(ctx context.Context, email string) (string, error) {
	var id string
	err := r.db.ReadWrite.QueryRowContext(ctx, `
		INSERT INTO users (id, email) VALUES (?, ?)
		ON CONFLICT (email) DO UPDATE SET email = excluded.email
		RETURNING id`, uuid.NewString(), email).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("find or create user: %w", err)
	}

	return id, nil
}

// Get retrieves the profile for a user.
func (r *Repository) Get(ctx context.Context, userID string) (Profile, error) {
	var (
		p        Profile
		weekdays string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT name, age, weight_kg, height_cm, experience_level, avg_speed_kmh,
		       max_distance_km, resting_hr, training_days_per_week, minutes_per_day,
		       preferred_weekdays, participated_before, race_id, subscription_status
		FROM profiles
		WHERE user_id = ?`, userID).Scan(
		&p.Name, &p.Age, &p.WeightKg, &p.HeightCm, &p.Experience, &p.AvgSpeedKmh,
		&p.MaxDistanceKm, &p.RestingHR, &p.TrainingDaysPerWeek, &p.MinutesPerDay,
		&weekdays, &p.ParticipatedBefore, &p.RaceID, &p.Subscription,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query profile: %w", err)
	}

	if p.PreferredWeekdays, err = parseWeekdays(weekdays); err != nil {
		return Profile{}, fmt.Errorf("parse preferred weekdays: %w", err)
	}

	return p, nil
}

// Set saves the profile for a user, replacing any previous answers.
func (r *Repository) Set(ctx context.Context, userID string, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, name, age, weight_kg, height_cm, experience_level, avg_speed_kmh,
			max_distance_km, resting_hr, training_days_per_week, minutes_per_day,
			preferred_weekdays, participated_before, race_id, subscription_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			weight_kg = excluded.weight_kg,
			height_cm = excluded.height_cm,
			experience_level = excluded.experience_level,
			avg_speed_kmh = excluded.avg_speed_kmh,
			max_distance_km = excluded.max_distance_km,
			resting_hr = excluded.resting_hr,
			training_days_per_week = excluded.training_days_per_week,
			minutes_per_day = excluded.minutes_per_day,
			preferred_weekdays = excluded.preferred_weekdays,
			participated_before = excluded.participated_before,
			race_id = excluded.race_id,
			subscription_status = excluded.subscription_status,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		userID, p.Name, p.Age, p.WeightKg, p.HeightCm, string(p.Experience), p.AvgSpeedKmh,
		p.MaxDistanceKm, p.RestingHR, p.TrainingDaysPerWeek, p.MinutesPerDay,
		formatWeekdays(p.PreferredWeekdays), p.ParticipatedBefore, p.RaceID, string(p.Subscription),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

// SetSubscription updates only the subscription status.
func (r *Repository) SetSubscription(ctx context.Context, userID string, status SubscriptionStatus) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE profiles SET subscription_status = ? WHERE user_id = ?`,
		string(status), userID)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func formatWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = fmt.Sprintf("%d", int(day))
	}

	return strings.Join(parts, ",")
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	if s == "" {
		return nil, nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		var day int
		if _, err := fmt.Sscanf(part, "%d", &day); err != nil {
			return nil, fmt.Errorf("parse weekday %q: %w", part, err)
		}
		if day < 0 || day > 6 {
			return nil, fmt.Errorf("weekday %d out of range", day)
		}
		days = append(days, time.Weekday(day))
	}

	return days, nil
}
