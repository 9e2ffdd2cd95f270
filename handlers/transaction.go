package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"cycleledger/database"
	"cycleledger/models"
	"cycleledger/services"
)

func GetTransactions(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, account_id, type, category, description, amount, date, created_at
		FROM transactions
		WHERE 1=1
	`
	args := []interface{}{}

	if accountID := r.URL.Query().Get("account_id"); accountID != "" {
		query += " AND account_id = ?"
		args = append(args, accountID)
	}
	if txType := r.URL.Query().Get("type"); txType != "" {
		query += " AND type = ?"
		args = append(args, txType)
	}
	if category := r.URL.Query().Get("category"); category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	if start := r.URL.Query().Get("start_date"); start != "" {
		query += " AND date >= ?"
		args = append(args, start)
	}
	if end := r.URL.Query().Get("end_date"); end != "" {
		query += " AND date <= ?"
		args = append(args, end)
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		transactions = append(transactions, *t)
	}

	respondJSON(w, http.StatusOK, transactions)
}

func GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	row := database.DB.QueryRow(`
		SELECT id, account_id, type, category, description, amount, date, created_at
		FROM transactions
		WHERE id = ?
	`, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		respondServiceError(w, fmt.Errorf("transaction %s: %w", id, services.ErrNotFound))
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

func AddTransaction(w http.ResponseWriter, r *http.Request) {
	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := services.AddTransaction(&t); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

func DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := services.DeleteTransaction(id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type transferRequest struct {
	FromAccountID string  `json:"fromAccountId"`
	ToAccountID   string  `json:"toAccountId"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
}

func TransferFunds(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	legs, err := services.Transfer(req.FromAccountID, req.ToAccountID, req.Amount, req.Date, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, legs)
}

type txScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row txScanner) (*models.Transaction, error) {
	var t models.Transaction
	var description sql.NullString
	err := row.Scan(&t.ID, &t.AccountID, &t.Type, &t.Category, &description,
		&t.Amount, &t.Date, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	return &t, nil
}
