package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"cycleledger/database"
	"cycleledger/models"
	"cycleledger/services"
)

func GetAccounts(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(`
		SELECT id, name, type, balance
		FROM accounts
		ORDER BY CASE type WHEN 'main' THEN 0 ELSE 1 END, name ASC
	`)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Balance); err != nil {
			respondServiceError(w, err)
			return
		}
		accounts = append(accounts, a)
	}

	respondJSON(w, http.StatusOK, accounts)
}

func AddAccount(w http.ResponseWriter, r *http.Request) {
	var a models.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if a.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}
	if a.Type == "" {
		a.Type = models.AccountTypeCustom
	}
	if !models.ValidAccountType(a.Type) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid account type %q", a.Type)})
		return
	}

	// There is exactly one main account; it is created by the seed.
	if a.Type == models.AccountTypeMain {
		var count int
		if err := database.DB.QueryRow("SELECT COUNT(*) FROM accounts WHERE type = 'main'").Scan(&count); err != nil {
			respondServiceError(w, err)
			return
		}
		if count > 0 {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "a main account already exists"})
			return
		}
	}

	a.ID = uuid.NewString()
	_, err := database.DB.Exec(
		"INSERT INTO accounts (id, name, type, balance) VALUES (?, ?, ?, ?)",
		a.ID, a.Name, a.Type, a.Balance)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, a)
}

func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var accountType string
	err := database.DB.QueryRow("SELECT type FROM accounts WHERE id = ?", id).Scan(&accountType)
	if err != nil {
		respondServiceError(w, fmt.Errorf("account %s: %w", id, services.ErrNotFound))
		return
	}
	if accountType == models.AccountTypeMain {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "cannot delete the main account"})
		return
	}

	// Deleting an account under a live ledger would orphan its history.
	var refs int
	err = database.DB.QueryRow(`
		SELECT (SELECT COUNT(*) FROM transactions WHERE account_id = ?)
		     + (SELECT COUNT(*) FROM recurring_transactions WHERE account_id = ? OR to_account_id = ?)
	`, id, id, id).Scan(&refs)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if refs > 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "account still has transactions or recurring rules"})
		return
	}

	if _, err := database.DB.Exec("DELETE FROM accounts WHERE id = ?", id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
