package main

import (
	"testing"

	"github.com/dunr-app/dunr/internal/e2etest"
	"github.com/dunr-app/dunr/internal/testhelpers"
)

func testLookupEnv(t *testing.T) func(string) (string, bool) {
	stateDir := t.TempDir()
	return func(key string) (string, bool) {
		switch key {
		case "DUNR_SQLITE_URL":
			return ":memory:", true
		case "DUNR_ADDR":
			return "localhost:0", true
		case "DUNR_STATE_DIR":
			return stateDir, true
		case "DUNR_SECURE_COOKIES":
			return "false", true
		default:
			return "", false
		}
	}
}

func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv(t), run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	return server
}
