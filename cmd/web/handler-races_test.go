package main

import (
	"net/http"
	"testing"

	"github.com/dunr-app/dunr/internal/races"
	"github.com/google/go-cmp/cmp"
)

func Test_application_races(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	t.Run("catalogue is public", func(t *testing.T) {
		var resp struct {
			Races []races.Race `json:"races"`
		}
		status, err := client.GetJSON(ctx, "/api/races", &resp)
		if err != nil {
			t.Fatalf("Failed to get races: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("want status 200, got %d", status)
		}
		if diff := cmp.Diff(races.All(), resp.Races); diff != "" {
			t.Errorf("catalogue mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single race by id", func(t *testing.T) {
		var race races.Race
		status, err := client.GetJSON(ctx, "/api/races/morocco-2026", &race)
		if err != nil {
			t.Fatalf("Failed to get race: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("want status 200, got %d", status)
		}
		if race.ID != "morocco-2026" {
			t.Errorf("want race morocco-2026, got %q", race.ID)
		}
	})

	t.Run("unknown race is 404", func(t *testing.T) {
		status, err := client.GetJSON(ctx, "/api/races/atacama-2026", &struct{}{})
		if err != nil {
			t.Fatalf("Failed to get race: %v", err)
		}
		if status != http.StatusNotFound {
			t.Errorf("want status 404, got %d", status)
		}
	})
}
