package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dunr-app/dunr/internal/demo"
	"github.com/dunr-app/dunr/internal/testhelpers"
)

// demoseed regenerates the demo rider's plan state on disk so the server can
// serve demo logins without touching the generator.
func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	stateDir := "./state"
	if len(os.Args) > 1 {
		stateDir = os.Args[1]
	}

	store := demo.NewStore(stateDir, logger)
	if err := store.Reset(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error resetting demo state", slog.Any("error", err))
		os.Exit(1)
	}

	p, sessions, err := store.Load(ctx)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error generating demo plan", slog.Any("error", err))
		os.Exit(1)
	}
	if err = store.Save(p, sessions); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error saving demo plan", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "demo plan seeded",
		slog.String("stateDir", stateDir),
		slog.String("planID", p.ID),
		slog.Int("weeks", p.TotalWeeks),
		slog.Int("sessions", len(sessions)))
}
