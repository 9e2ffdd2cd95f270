package handlers

import (
	"net/http"
	"strconv"
	"time"

	"cycleledger/cycle"
	"cycleledger/services"
)

// GetCycles returns the navigation window: one future cycle, the current
// cycle, the configured number of past cycles and the overall pseudo-cycle.
func GetCycles(w http.ResponseWriter, r *http.Request) {
	settings, err := loadSettings()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	past := cycle.DefaultPastCycles
	if p := r.URL.Query().Get("past"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "past must be a non-negative integer"})
			return
		}
		past = n
	}

	today := time.Now().UTC()
	entries := cycle.Window(settings.CycleStartDay, today, past)
	respondJSON(w, http.StatusOK, entries)
}

// GetCycleSummary aggregates one cycle window for the dashboard. Omitting
// start and end (or passing the overall pseudo-cycle) means all time.
func GetCycleSummary(w http.ResponseWriter, r *http.Request) {
	settings, err := loadSettings()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == cycle.OverallValue {
		start, end = "", ""
	}
	if (start == "") != (end == "") {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "start and end must be provided together"})
		return
	}

	summary, err := services.BuildCycleSummary(start, end, settings.Currency)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
