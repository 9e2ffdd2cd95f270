package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"cycleledger/database"
	"cycleledger/models"
	"cycleledger/services"
)

func GetDebts(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(`
		SELECT id, name, total_amount, current_balance, interest_rate,
		       minimum_payment, due_date, start_date, notes, created_at
		FROM debts
		ORDER BY created_at DESC
	`)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer rows.Close()

	debts := []models.Debt{}
	for rows.Next() {
		var d models.Debt
		var dueDate, startDate, notes sql.NullString
		err := rows.Scan(&d.ID, &d.Name, &d.TotalAmount, &d.CurrentBalance,
			&d.InterestRate, &d.MinimumPayment, &dueDate, &startDate, &notes, &d.CreatedAt)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if dueDate.Valid {
			d.DueDate = &dueDate.String
		}
		if startDate.Valid {
			d.StartDate = &startDate.String
		}
		d.Notes = notes.String
		debts = append(debts, d)
	}

	respondJSON(w, http.StatusOK, debts)
}

func AddDebt(w http.ResponseWriter, r *http.Request) {
	var d models.Debt
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := services.CreateDebt(&d); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, d)
}

func UpdateDebt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var d models.Debt
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := services.UpdateDebt(id, &d); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, d)
}

func DeleteDebt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := services.DeleteDebt(id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type payDebtRequest struct {
	AccountID   string  `json:"accountId"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func PayDebt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req payDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := services.PayDebt(id, req.AccountID, req.Amount, req.Date, req.Description); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "payment recorded"})
}
