package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dunr-app/dunr/internal/errors"
)

// maxRequestBody bounds JSON request bodies. The largest legitimate payload
// is a profile update, well under a kilobyte.
const maxRequestBody = 64 * 1024

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "write response", slog.Any("error", err))
	}
}

func (app *application) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		app.errorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	// Reject trailing garbage after the JSON document.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		app.errorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, map[string]string{"error": message})
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "not found")
}

func (app *application) validationError(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	app.writeJSON(w, r, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

// parseDateQuery reads an optional "date" query parameter. A missing
// parameter falls back to today; a malformed one is a client error.
func (app *application) parseDateQuery(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return time.Now().UTC(), true
	}
	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		app.errorResponse(w, r, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
