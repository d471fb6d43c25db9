package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/profile"
	"github.com/dunr-app/dunr/internal/sqlite"
	"github.com/dunr-app/dunr/internal/testhelpers"
	"github.com/google/go-cmp/cmp"
)

func newTestRepository(t *testing.T) *profile.Repository {
	t.Helper()

	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return profile.NewRepository(db)
}

func validProfile() profile.Profile {
	return profile.Profile{
		Name:                "Mireia",
		Age:                 34,
		WeightKg:            61.5,
		HeightCm:            168,
		Experience:          profile.ExperienceIntermediate,
		AvgSpeedKmh:         26,
		MaxDistanceKm:       120,
		RestingHR:           52,
		TrainingDaysPerWeek: 4,
		MinutesPerDay:       90,
		PreferredWeekdays:   []time.Weekday{time.Tuesday, time.Thursday, time.Saturday, time.Sunday},
		ParticipatedBefore:  false,
		RaceID:              "morocco-2026",
		Subscription:        profile.SubscriptionTrialing,
	}
}

func TestRepository_SetGet(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.EnsureUser(ctx, "u1", "mireia@example.com"); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}

	want := validProfile()
	if err := repo.Set(ctx, "u1", want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestRepository_GetMissing(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), "nobody")
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestRepository_SetRejectsInvalid(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.EnsureUser(ctx, "u1", "mireia@example.com"); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}

	bad := validProfile()
	bad.Age = 12
	if err := repo.Set(ctx, "u1", bad); err == nil {
		t.Error("want validation error for age 12, got nil")
	}
}

func TestRepository_SetSubscription(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.EnsureUser(ctx, "u1", "mireia@example.com"); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if err := repo.Set(ctx, "u1", validProfile()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := repo.SetSubscription(ctx, "u1", profile.SubscriptionActive); err != nil {
		t.Fatalf("SetSubscription: %v", err)
	}

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Subscription != profile.SubscriptionActive {
		t.Errorf("want active subscription, got %q", got.Subscription)
	}

	if err := repo.SetSubscription(ctx, "ghost", profile.SubscriptionExpired); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("want ErrNotFound for unknown user, got %v", err)
	}
}

func TestRepository_FindOrCreateUser(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.FindOrCreateUser(ctx, "mireia@example.com")
	if err != nil {
		t.Fatalf("FindOrCreateUser: %v", err)
	}
	if first == "" {
		t.Fatal("want a generated user id")
	}

	again, err := repo.FindOrCreateUser(ctx, "mireia@example.com")
	if err != nil {
		t.Fatalf("FindOrCreateUser again: %v", err)
	}
	if again != first {
		t.Errorf("want stable id for the same email, got %q then %q", first, again)
	}

	other, err := repo.FindOrCreateUser(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("FindOrCreateUser other: %v", err)
	}
	if other == first {
		t.Error("want distinct ids for distinct emails")
	}
}

func TestProfile_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*profile.Profile)
		wantErr bool
	}{
		{name: "valid", mutate: func(*profile.Profile) {}, wantErr: false},
		{name: "age too low", mutate: func(p *profile.Profile) { p.Age = 15 }, wantErr: true},
		{name: "age too high", mutate: func(p *profile.Profile) { p.Age = 81 }, wantErr: true},
		{name: "weight too low", mutate: func(p *profile.Profile) { p.WeightKg = 39 }, wantErr: true},
		{name: "height too high", mutate: func(p *profile.Profile) { p.HeightCm = 211 }, wantErr: true},
		{name: "speed too low", mutate: func(p *profile.Profile) { p.AvgSpeedKmh = 9 }, wantErr: true},
		{name: "distance too high", mutate: func(p *profile.Profile) { p.MaxDistanceKm = 501 }, wantErr: true},
		{name: "resting HR too low", mutate: func(p *profile.Profile) { p.RestingHR = 29 }, wantErr: true},
		{name: "too many days", mutate: func(p *profile.Profile) { p.TrainingDaysPerWeek = 7 }, wantErr: true},
		{name: "session too short", mutate: func(p *profile.Profile) { p.MinutesPerDay = 20 }, wantErr: true},
		{name: "bogus experience", mutate: func(p *profile.Profile) { p.Experience = "pro-tour" }, wantErr: true},
		{name: "missing name", mutate: func(p *profile.Profile) { p.Name = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validProfile()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr && err == nil {
				t.Error("want error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("want nil, got %v", err)
			}
		})
	}
}
