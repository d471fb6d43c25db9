package plangen

import (
	"context"
	"testing"
	"time"

	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/profile"
	"github.com/dunr-app/dunr/internal/sqlite"
	"github.com/dunr-app/dunr/internal/testhelpers"
)

// stubGenerator returns canned templates without touching the network.
type stubGenerator struct {
	templates []WeekTemplate
	err       error
	lastReq   Request
}

func (g *stubGenerator) GenerateWeeks(_ context.Context, req Request) ([]WeekTemplate, error) {
	g.lastReq = req

	return g.templates, g.err
}

func newTestService(t *testing.T, generator Generator) (*Service, *plan.Repository) {
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

	profiles := profile.NewRepository(db)
	if err = profiles.EnsureUser(ctx, "u1", "rider@example.com"); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}

	prof := profile.Profile{
		Name:                "Mireia",
		Age:                 34,
		WeightKg:            61,
		HeightCm:            168,
		Experience:          profile.ExperienceIntermediate,
		AvgSpeedKmh:         26,
		MaxDistanceKm:       120,
		RestingHR:           52,
		TrainingDaysPerWeek: 4,
		MinutesPerDay:       90,
		RaceID:              "morocco-2026",
		Subscription:        profile.SubscriptionActive,
	}
	if err = profiles.Set(ctx, "u1", prof); err != nil {
		t.Fatalf("Set profile: %v", err)
	}

	plans := plan.NewRepository(db, logger)
	service := NewService(profiles, plans, generator, logger)
	service.now = func() time.Time { return plan.Date(2026, time.January, 14) }

	runCtx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = service.Run(runCtx)
	}()

	return service, plans
}

func TestService_Trigger(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{templates: testTemplates(4)}
	service, plans := newTestService(t, generator)
	ctx := context.Background()

	if err := service.Trigger(ctx, "u1"); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	var status Status
	for time.Now().Before(deadline) {
		if status = service.Status("u1"); status.State != StateRequesting {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if status.State != StateSucceeded {
		t.Fatalf("want succeeded, got %+v", status)
	}

	sessions, err := plans.ListSessions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 48 {
		t.Errorf("want 48 stored sessions, got %d", len(sessions))
	}

	active, err := plans.ActivePlan(ctx, "u1")
	if err != nil {
		t.Fatalf("ActivePlan: %v", err)
	}
	if !active.IsPartial {
		t.Error("want partial plan 14 weeks out")
	}
	if generator.lastReq.Race.ID != "morocco-2026" {
		t.Errorf("want generation for morocco-2026, got %q", generator.lastReq.Race.ID)
	}

	service.Acknowledge("u1")
	if got := service.Status("u1"); got.State != StateIdle {
		t.Errorf("want idle after acknowledge, got %q", got.State)
	}
}

func TestService_TriggerWithoutProfile(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t, &stubGenerator{templates: testTemplates(4)})

	err := service.Trigger(context.Background(), "stranger")
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("want profile.ErrNotFound, got %v", err)
	}
}

func TestService_FailureKeepsOldPlan(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{templates: testTemplates(4)}
	service, plans := newTestService(t, generator)
	ctx := context.Background()

	trigger := func() Status {
		t.Helper()

		if err := service.Trigger(ctx, "u1"); err != nil {
			t.Fatalf("Trigger: %v", err)
		}
		deadline := time.Now().Add(8 * time.Second)
		for time.Now().Before(deadline) {
			if status := service.Status("u1"); status.State != StateRequesting {
				return status
			}
			time.Sleep(100 * time.Millisecond)
		}
		t.Fatal("generation did not finish")

		return Status{}
	}

	if status := trigger(); status.State != StateSucceeded {
		t.Fatalf("want first generation to succeed, got %+v", status)
	}
	before, err := plans.ListSessions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	service.Acknowledge("u1")

	generator.err = errors.New("model unavailable")
	status := trigger()
	if status.State != StateFailed {
		t.Fatalf("want failed generation, got %+v", status)
	}

	after, err := plans.ListSessions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("want old plan untouched after failure, had %d sessions, now %d", len(before), len(after))
	}
}
