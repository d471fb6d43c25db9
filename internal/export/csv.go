// Package export renders a training plan as CSV and iCalendar.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dunr-app/dunr/internal/plan"
)

var csvHeader = []string{
	"date", "weekday", "week", "type", "planned_duration_min",
	"planned_distance_km", "intensity_zone", "description",
}

// WriteCSV writes the sessions as a CSV document in the order given.
func WriteCSV(w io.Writer, sessions []plan.Session) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range sessions {
		record := []string{
			s.Date.Format(time.DateOnly),
			s.Weekday().String(),
			strconv.Itoa(s.WeekNumber),
			string(s.Type),
			strconv.Itoa(s.PlannedDurationMin),
			strconv.FormatFloat(s.PlannedDistanceKm, 'f', 1, 64),
			strconv.Itoa(s.IntensityZone),
			s.Description,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record %s: %w", s.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
