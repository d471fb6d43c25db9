package plangen

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dunr-app/dunr/internal/plan"
	"github.com/dunr-app/dunr/internal/testhelpers"
	"github.com/jarcoal/httpmock"
	"github.com/openai/openai-go/v3/option"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

// newMockedClient builds a Client whose HTTP traffic is served by the given
// transport.
func newMockedClient(t *testing.T, transport *httpmock.MockTransport) *Client {
	t.Helper()

	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	return NewClient("test-key", logger,
		option.WithHTTPClient(&http.Client{Transport: transport}),
		option.WithMaxRetries(0))
}

// completionResponse wraps week templates into a chat completion payload.
func completionResponse(t *testing.T, templates []WeekTemplate) string {
	t.Helper()

	content, err := json.Marshal(map[string]any{"weeks": templates})
	if err != nil {
		t.Fatalf("marshal templates: %v", err)
	}

	body, err := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": string(content),
				},
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     321,
			"completion_tokens": 1234,
			"total_tokens":      1555,
		},
	})
	if err != nil {
		t.Fatalf("marshal completion: %v", err)
	}

	return string(body)
}

func TestClient_GenerateWeeks(t *testing.T) {
	t.Parallel()

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, completionsURL,
		httpmock.NewStringResponder(http.StatusOK, completionResponse(t, testTemplates(4))).
			HeaderSet(http.Header{"Content-Type": []string{"application/json"}}))

	client := newMockedClient(t, transport)

	req := testRequest("morocco-2026", plan.Date(2026, time.January, 14))
	weeks, err := client.GenerateWeeks(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateWeeks: %v", err)
	}

	if len(weeks) != 5 {
		t.Fatalf("want 5 representative weeks, got %d", len(weeks))
	}
	if weeks[0].Phase != PhaseBase {
		t.Errorf("want base phase first, got %q", weeks[0].Phase)
	}
	if transport.GetTotalCallCount() != 1 {
		t.Errorf("want a single API call, got %d", transport.GetTotalCallCount())
	}
}

func TestClient_GenerateWeeks_rejectsInvalidOutput(t *testing.T) {
	t.Parallel()

	// The model answers with a slot outside the rider's training days.
	templates := testTemplates(4)
	templates[0].Sessions[0].Slot = 9

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, completionsURL,
		httpmock.NewStringResponder(http.StatusOK, completionResponse(t, templates)))

	client := newMockedClient(t, transport)

	req := testRequest("morocco-2026", plan.Date(2026, time.January, 14))
	if _, err := client.GenerateWeeks(context.Background(), req); err == nil {
		t.Error("want validation error for bad model output, got nil")
	}
}

func TestClient_GenerateWeeks_apiError(t *testing.T) {
	t.Parallel()

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, completionsURL,
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"error":{"message":"overloaded"}}`))

	client := newMockedClient(t, transport)

	req := testRequest("morocco-2026", plan.Date(2026, time.January, 14))
	if _, err := client.GenerateWeeks(context.Background(), req); err == nil {
		t.Error("want error from failing API, got nil")
	}
}
