package main

import (
	"net/http"

	"github.com/dunr-app/dunr/internal/races"
)

func (app *application) raceListGET(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, map[string]any{"races": races.All()})
}

func (app *application) raceGET(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, race := range races.All() {
		if race.ID == id {
			app.writeJSON(w, r, http.StatusOK, race)
			return
		}
	}
	app.notFound(w, r)
}
