package handlers

import (
	"net/http"

	"cycleledger/database"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := database.DB.Ping(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
