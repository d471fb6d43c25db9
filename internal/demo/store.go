package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/plangen"
	"github.com/dunr-app/dunr/internal/races"
)

const (
	planKey     = "demo-plan.json"
	sessionsKey = "demo-sessions.json"
)

// Store keeps the demo rider's plan as JSON files in a state directory, so
// demo progress survives restarts without touching the database. Reading
// before anything was saved yields a freshly generated default plan.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// defaultReference anchors the bundled default plan so it is identical on
// every machine regardless of wall clock.
var defaultReference = plan.Date(2026, time.January, 5)

func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
		now:    func() time.Time { return defaultReference },
	}
}

// Load reads the stored demo plan, falling back to the generated default
// when either key is absent or unreadable.
func (s *Store) Load(ctx context.Context) (plan.Plan, []plan.Session, error) {
	var (
		p        plan.Plan
		sessions []plan.Session
	)

	planErr := s.readKey(planKey, &p)
	sessionsErr := s.readKey(sessionsKey, &sessions)
	if planErr == nil && sessionsErr == nil {
		return p, sessions, nil
	}

	if !os.IsNotExist(errors.Unwrap(planErr)) && planErr != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "discarding unreadable demo state",
			slog.Any("error", errors.Join(planErr, sessionsErr)))
	}

	return s.defaults(ctx)
}

// Save persists the demo plan under both keys.
func (s *Store) Save(p plan.Plan, sessions []plan.Session) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	if err := s.writeKey(planKey, p); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	if err := s.writeKey(sessionsKey, sessions); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}

	return nil
}

// Reset removes the stored state so the next load regenerates the defaults.
func (s *Store) Reset() error {
	for _, key := range []string{planKey, sessionsKey} {
		if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}

	return nil
}

func (s *Store) defaults(ctx context.Context) (plan.Plan, []plan.Session, error) {
	prof := Profile()
	req := plangen.Request{
		Profile: prof,
		Race:    races.ByID(prof.RaceID),
		Now:     s.now(),
	}

	templates, err := Generator{Seed: Seed}.GenerateWeeks(ctx, req)
	if err != nil {
		return plan.Plan{}, nil, fmt.Errorf("generate default weeks: %w", err)
	}

	p, sessions, err := plangen.Expand(req, templates)
	if err != nil {
		return plan.Plan{}, nil, fmt.Errorf("expand default weeks: %w", err)
	}

	return p, sessions, nil
}

func (s *Store) readKey(key string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

// writeKey writes via a temp file and rename, so a crash mid-write never
// leaves a truncated key behind.
func (s *Store) writeKey(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	path := filepath.Join(s.dir, key)
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}

	return nil
}
