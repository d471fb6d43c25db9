package export_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/apognu/gocal"
	"github.com/dunr-app/dunr/internal/export"
	"github.com/dunr-app/dunr/internal/plan"
	"github.com/google/go-cmp/cmp"
)

func exportSessions() []plan.Session {
	return []plan.Session{
		{
			ID:                 "11111111-1111-1111-1111-111111111111",
			Date:               plan.Date(2026, time.February, 9),
			WeekNumber:         1,
			Type:               plan.TypeEndurance,
			PlannedDurationMin: 75,
			PlannedDistanceKm:  32.5,
			IntensityZone:      2,
			Description:        "Steady zone 2, keep cadence high",
		},
		{
			ID:                 "22222222-2222-2222-2222-222222222222",
			Date:               plan.Date(2026, time.February, 14),
			WeekNumber:         1,
			Type:               plan.TypeLong,
			PlannedDurationMin: 180,
			PlannedDistanceKm:  85,
			IntensityZone:      3,
			Description:        "Long ride; fuel every 45 min, test race nutrition",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	if err := export.WriteCSV(&out, exportSessions()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}

	want := [][]string{
		{"date", "weekday", "week", "type", "planned_duration_min", "planned_distance_km", "intensity_zone", "description"},
		{"2026-02-09", "Monday", "1", "endurance", "75", "32.5", "2", "Steady zone 2, keep cadence high"},
		{"2026-02-14", "Saturday", "1", "long", "180", "85.0", "3", "Long ride; fuel every 45 min, test race nutrition"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_empty(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	if err := export.WriteCSV(&out, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("want header only, got %d records", len(records))
	}
}

func TestWriteICal_roundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	var out strings.Builder
	if err := export.WriteICal(&out, exportSessions(), now); err != nil {
		t.Fatalf("WriteICal: %v", err)
	}

	parser := gocal.NewParser(strings.NewReader(out.String()))
	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	parser.Start, parser.End = &start, &end
	if err := parser.Parse(); err != nil {
		t.Fatalf("parse calendar: %v", err)
	}

	if len(parser.Events) != 2 {
		t.Fatalf("want 2 events, got %d", len(parser.Events))
	}

	first := parser.Events[0]
	if first.Uid != "11111111-1111-1111-1111-111111111111@dunr.app" {
		t.Errorf("want UID derived from session id, got %q", first.Uid)
	}
	if first.Summary != "Endurance ride (75 min)" {
		t.Errorf("want summary from type and duration, got %q", first.Summary)
	}
	if first.Start == nil || first.Start.Format(time.DateOnly) != "2026-02-09" {
		t.Errorf("want all-day event on 2026-02-09, got %v", first.Start)
	}

	second := parser.Events[1]
	if !strings.Contains(second.Description, "test race nutrition") {
		t.Errorf("want coaching text in description, got %q", second.Description)
	}
}

func TestWriteICal_structure(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	var out strings.Builder
	if err := export.WriteICal(&out, exportSessions(), now); err != nil {
		t.Fatalf("WriteICal: %v", err)
	}

	doc := out.String()
	if !strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(doc, "END:VCALENDAR\r\n") {
		t.Error("want calendar wrapped in VCALENDAR with CRLF line endings")
	}
	if !strings.Contains(doc, "DTSTART;VALUE=DATE:20260209\r\n") {
		t.Error("want all-day DTSTART for the first session")
	}
	if !strings.Contains(doc, "DTEND;VALUE=DATE:20260210\r\n") {
		t.Error("want exclusive DTEND on the following day")
	}
	// Reserved characters in the description are escaped.
	if !strings.Contains(doc, `Long ride\; fuel every 45 min\, test race nutrition`) {
		t.Error("want semicolons and commas escaped in DESCRIPTION")
	}
}
