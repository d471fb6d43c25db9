package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dunr-app/dunr/internal/demo"
	"github.com/dunr-app/dunr/internal/e2etest"
	"github.com/dunr-app/dunr/internal/logging"
	"github.com/dunr-app/dunr/internal/testhelpers"
)

// TestDemoFlow logs in as the demo rider and walks the read-only surface.
func TestDemoFlow(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := client.Login(ctx, demo.Email); err != nil {
		return fmt.Errorf("login demo rider: %w", err)
	}

	for _, path := range []string{
		"/api/profile",
		"/api/dashboard",
		"/api/sessions",
		"/api/races",
	} {
		status, err := client.GetJSON(ctx, path, &struct{}{})
		if err != nil {
			return fmt.Errorf("get %s: %w", path, err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("get %s: unexpected status code %d", path, status)
		}
	}

	if err := client.Logout(ctx); err != nil {
		return fmt.Errorf("logout demo rider: %w", err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = TestDemoFlow(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing demo flow", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
