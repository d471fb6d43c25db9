// Package races holds the static catalogue of supported events.
package races

import "time"

// Race is a multi-stage desert event a rider can train towards.
type Race struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	TotalDistanceKm int    `json:"totalDistanceKm"`
	Stages          int    `json:"stages"`
	Difficulty      string `json:"difficulty"`
}

// All returns the catalogue in display order.
func All() []Race {
	return catalogue
}

// ByID returns the race with the given id, falling back to the first entry of
// the catalogue when the id is unknown so that stale profiles keep working.
func ByID(id string) Race {
	for _, race := range catalogue {
		if race.ID == id {
			return race
		}
	}

	return catalogue[0]
}

// StartDate parses the race date. The catalogue is static so the date is
// known to be valid.
func (r Race) StartDate() time.Time {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		panic(err)
	}

	return date
}

var catalogue = []Race{
	{
		ID:              "morocco-2026",
		Name:            "Škoda Morocco Titan Desert",
		Location:        "Morocco",
		Date:            "2026-04-26",
		TotalDistanceKm: 600,
		Stages:          6,
		Difficulty:      "extreme",
	},
	{
		ID:              "almeria-2026",
		Name:            "Titan Desert Almería",
		Location:        "Almería, Spain",
		Date:            "2026-10-01",
		TotalDistanceKm: 350,
		Stages:          5,
		Difficulty:      "high",
	},
}
