package main

import (
	"net/http"
	"testing"

	"github.com/dunr-app/dunr/internal/demo"
)

func Test_application_login(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	t.Run("rejects missing email", func(t *testing.T) {
		var resp struct {
			Fields map[string]string `json:"fields"`
		}
		status, err := client.PostJSON(ctx, "/api/auth/login", map[string]string{"email": ""}, &resp)
		if err != nil {
			t.Fatalf("Failed to post login: %v", err)
		}
		if status != http.StatusUnprocessableEntity {
			t.Errorf("want status 422, got %d", status)
		}
		if resp.Fields["email"] == "" {
			t.Error("expected a field error for email")
		}
	})

	t.Run("new user is not onboarded", func(t *testing.T) {
		var resp loginResponse
		status, err := client.PostJSON(ctx, "/api/auth/login", map[string]string{"email": "rider@example.com"}, &resp)
		if err != nil {
			t.Fatalf("Failed to post login: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("want status 200, got %d", status)
		}
		if resp.UserID == "" {
			t.Error("expected a user id")
		}
		if resp.Onboarded {
			t.Error("expected a fresh user to not be onboarded")
		}
	})

	t.Run("same email keeps the same user", func(t *testing.T) {
		var first, second loginResponse
		if _, err := client.PostJSON(ctx, "/api/auth/login", map[string]string{"email": "rider@example.com"}, &first); err != nil {
			t.Fatalf("Failed to post login: %v", err)
		}
		if _, err := client.PostJSON(ctx, "/api/auth/login", map[string]string{"email": "rider@example.com"}, &second); err != nil {
			t.Fatalf("Failed to post login: %v", err)
		}
		if first.UserID != second.UserID {
			t.Errorf("want stable user id, got %q and %q", first.UserID, second.UserID)
		}
	})

	t.Run("logout ends the session", func(t *testing.T) {
		if err := client.Login(ctx, "rider@example.com"); err != nil {
			t.Fatalf("Failed to login: %v", err)
		}
		if err := client.Logout(ctx); err != nil {
			t.Fatalf("Failed to logout: %v", err)
		}
		status, err := client.GetJSON(ctx, "/api/profile", &struct{}{})
		if err != nil {
			t.Fatalf("Failed to get profile: %v", err)
		}
		if status != http.StatusUnauthorized {
			t.Errorf("want status 401 after logout, got %d", status)
		}
	})
}

func Test_application_demoLogin(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	var resp loginResponse
	status, err := client.PostJSON(ctx, "/api/auth/login", map[string]string{"email": demo.Email}, &resp)
	if err != nil {
		t.Fatalf("Failed to post login: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("want status 200, got %d", status)
	}
	if resp.UserID != demo.UserID {
		t.Errorf("want demo user id %q, got %q", demo.UserID, resp.UserID)
	}
	if !resp.Onboarded {
		t.Error("expected the demo rider to be onboarded")
	}

	// The demo rider comes with a seeded plan.
	var sessions struct {
		Sessions []struct {
			ID string `json:"id"`
		} `json:"sessions"`
	}
	if status, err = client.GetJSON(ctx, "/api/sessions", &sessions); err != nil {
		t.Fatalf("Failed to get sessions: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("want status 200, got %d", status)
	}
	if len(sessions.Sessions) == 0 {
		t.Error("expected the demo rider to have seeded sessions")
	}
}
