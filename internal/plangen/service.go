package plangen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/profile"
	"github.com/dunr-app/dunr/internal/races"
)

type planStore interface {
	CreatePlan(ctx context.Context, userID string, p plan.Plan, sessions []plan.Session) error
	ListSessions(ctx context.Context, userID string) ([]plan.Session, error)
}

type profileStore interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
}

// Service ties profile, generator, scheduler and store together behind the
// job manager.
type Service struct {
	profiles  profileStore
	plans     planStore
	generator Generator
	jobs      *Manager
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(profiles profileStore, plans planStore, generator Generator, logger *slog.Logger) *Service {
	return &Service{
		profiles:  profiles,
		plans:     plans,
		generator: generator,
		jobs:      NewManager(logger),
		logger:    logger,
		now:       time.Now,
	}
}

// Run supervises the job manager until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	return s.jobs.Run(ctx)
}

// Trigger starts plan generation for the rider. The readjustment signal comes
// from the current plan's recent effort ratings, so a struggling rider gets a
// lighter regeneration.
func (s *Service) Trigger(ctx context.Context, userID string) error {
	prof, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	sessions, err := s.plans.ListSessions(ctx, userID)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	req := Request{
		Profile:      prof,
		Race:         races.ByID(prof.RaceID),
		Readjustment: plan.Summarize(sessions, s.now()).Readjustment,
		Now:          s.now(),
	}

	return s.jobs.Start(userID, func(ctx context.Context) error {
		templates, err := s.generator.GenerateWeeks(ctx, req)
		if err != nil {
			return fmt.Errorf("generate weeks: %w", err)
		}

		p, planSessions, err := Expand(req, templates)
		if err != nil {
			return fmt.Errorf("expand templates: %w", err)
		}

		if err = s.plans.CreatePlan(ctx, userID, p, planSessions); err != nil {
			return fmt.Errorf("store plan: %w", err)
		}

		s.logger.LogAttrs(ctx, slog.LevelInfo, "plan generated",
			slog.String("userID", userID),
			slog.String("planID", p.ID),
			slog.Int("weeks", p.TotalWeeks),
			slog.Int("sessions", len(planSessions)),
			slog.Bool("partial", p.IsPartial))

		return nil
	})
}

// Status returns the rider's generation status.
func (s *Service) Status(userID string) Status {
	return s.jobs.Status(userID)
}

// Acknowledge clears a finished generation.
func (s *Service) Acknowledge(userID string) {
	s.jobs.Acknowledge(userID)
}
