package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"cycleledger/database"
	"cycleledger/models"
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// loadSettings reads the singleton settings row, falling back to defaults
// when the row is missing so reads never fail on a fresh database.
func loadSettings() (*models.Settings, error) {
	var s models.Settings
	err := database.DB.QueryRow(
		"SELECT id, cycle_start_day, currency FROM settings LIMIT 1",
	).Scan(&s.ID, &s.CycleStartDay, &s.Currency)
	if err == sql.ErrNoRows {
		return &models.Settings{CycleStartDay: 1, Currency: "USD"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := loadSettings()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// UpdateSettings is the write boundary where cycle_start_day is validated;
// the cycle math itself assumes a valid value.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s models.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if s.CycleStartDay < 1 || s.CycleStartDay > 31 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "cycle start day must be between 1 and 31"})
		return
	}
	if !currencyCode.MatchString(s.Currency) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "currency must be a 3-letter ISO code"})
		return
	}

	var count int
	if err := database.DB.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		respondServiceError(w, err)
		return
	}

	var err error
	if count == 0 {
		s.ID = uuid.NewString()
		_, err = database.DB.Exec(
			"INSERT INTO settings (id, cycle_start_day, currency) VALUES (?, ?, ?)",
			s.ID, s.CycleStartDay, s.Currency)
	} else {
		_, err = database.DB.Exec(
			"UPDATE settings SET cycle_start_day = ?, currency = ?",
			s.CycleStartDay, s.Currency)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, s)
}
