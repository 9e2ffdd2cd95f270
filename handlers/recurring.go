package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"cycleledger/models"
	"cycleledger/services"
)

// recurringResponse augments a rule with whether it is currently due, so
// the list view can light up its Pay button without re-deriving dates.
type recurringResponse struct {
	models.RecurringTransaction
	Due bool `json:"due"`
}

func GetRecurringTransactions(w http.ResponseWriter, r *http.Request) {
	rules, err := services.GetRecurringTransactions()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	resp := make([]recurringResponse, 0, len(rules))
	for i := range rules {
		resp = append(resp, recurringResponse{
			RecurringTransaction: rules[i],
			Due:                  services.IsDue(&rules[i], today),
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

func AddRecurringTransaction(w http.ResponseWriter, r *http.Request) {
	var rule models.RecurringTransaction
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := services.CreateRecurringTransaction(&rule); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rule)
}

func DeleteRecurringTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := services.DeleteRecurringTransaction(id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type executeRequest struct {
	Amount *float64 `json:"amount,omitempty"`
	Date   string   `json:"date,omitempty"`
}

// ExecuteRecurringTransaction is the "Pay" action: it materializes the rule
// into real transactions and advances the schedule.
func ExecuteRecurringTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req executeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	created, err := services.ExecuteRecurringTransaction(id, req.Amount, req.Date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}
