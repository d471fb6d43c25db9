package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/dunr-app/dunr/internal/demo"
	"github.com/dunr-app/dunr/internal/envstruct"
	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/logging"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/plangen"
	"github.com/dunr-app/dunr/internal/profile"
	"github.com/dunr-app/dunr/internal/sqlite"
	"github.com/joho/godotenv"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	profiles       *profile.Repository
	plans          *plan.Repository
	planService    *plangen.Service
	demoStore      *demo.Store
	markdown       goldmark.Markdown
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"DUNR_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"DUNR_SQLITE_URL" envDefault:"./dunr.sqlite3"`
	// OpenAIAPIKey authorizes plan generation. When empty, the server falls
	// back to the offline demo generator.
	OpenAIAPIKey string `env:"DUNR_OPENAI_API_KEY" envDefault:""`
	// StateDir holds the demo rider's JSON state.
	StateDir string `env:"DUNR_STATE_DIR" envDefault:"./state"`
	// SecureCookies should only be disabled for local development over plain HTTP.
	SecureCookies bool `env:"DUNR_SECURE_COOKIES" envDefault:"true"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	profiles := profile.NewRepository(db)
	plans := plan.NewRepository(db, logger)

	var generator plangen.Generator = demo.Generator{Seed: demo.Seed}
	if cfg.OpenAIAPIKey != "" {
		generator = plangen.NewClient(cfg.OpenAIAPIKey, logger)
	} else {
		logger.LogAttrs(ctx, slog.LevelWarn, "no OpenAI API key, using offline generator")
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db, cfg.SecureCookies),
		profiles:       profiles,
		plans:          plans,
		planService:    plangen.NewService(profiles, plans, generator, logger),
		demoStore:      demo.NewStore(cfg.StateDir, logger),
		markdown:       goldmark.New(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.planService.Run(ctx)
	})
	g.Go(func() error {
		return app.serve(ctx, cfg.Addr)
	})

	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run application")
	}

	return nil
}

func initializeSessionManager(db *sqlite.Database, secureCookies bool) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour)
	sessionManager.Lifetime = 30 * 24 * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = secureCookies
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()

	// Missing .env is fine, the environment may be fully set already.
	_ = godotenv.Load()

	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
