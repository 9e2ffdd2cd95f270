package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cycleledger/database"
	"cycleledger/models"
)

// balanceDelta is the signed effect of a transaction on its account.
func balanceDelta(txType string, amount float64) float64 {
	if txType == models.TypeExpense {
		return -amount
	}
	return amount
}

// AddTransaction validates a direct entry, inserts the row and applies its
// balance effect inside one database transaction. Direct expense entry
// requires sufficient balance; the recurring engine deliberately bypasses
// this check by using the tx-scoped helpers.
func AddTransaction(t *models.Transaction) error {
	if err := validateTransaction(t); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date == "" {
		t.Date = time.Now().UTC().Format(models.DateLayout)
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	balance, err := accountBalanceTx(tx, t.AccountID)
	if err != nil {
		return err
	}
	if t.Type == models.TypeExpense && balance < t.Amount {
		return fmt.Errorf("%w: account %s has %.2f, need %.2f",
			ErrInsufficientBalance, t.AccountID, balance, t.Amount)
	}

	if err := insertTransactionTx(tx, t); err != nil {
		return err
	}
	if err := applyBalanceTx(tx, t.AccountID, balanceDelta(t.Type, t.Amount)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction and reverses its exact original
// balance effect, regardless of anything that happened to the account since.
func DeleteTransaction(id string) error {
	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var accountID, txType string
	var amount float64
	err = tx.QueryRow(
		"SELECT account_id, type, amount FROM transactions WHERE id = ?", id,
	).Scan(&accountID, &txType, &amount)
	if err == sql.ErrNoRows {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load transaction: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM transactions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if err := applyBalanceTx(tx, accountID, -balanceDelta(txType, amount)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Transfer moves funds between two accounts as two mirrored legs, both
// inserted and both balances updated in a single commit.
func Transfer(sourceID, destID string, amount float64, date, description string) ([]models.Transaction, error) {
	if sourceID == "" || destID == "" {
		return nil, fmt.Errorf("%w: source and destination accounts are required", ErrValidation)
	}
	if sourceID == destID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if date == "" {
		date = time.Now().UTC().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sourceName, sourceBalance, err := accountTx(tx, sourceID)
	if err != nil {
		return nil, err
	}
	destName, _, err := accountTx(tx, destID)
	if err != nil {
		return nil, err
	}
	if sourceBalance < amount {
		return nil, fmt.Errorf("%w: account %s has %.2f, need %.2f",
			ErrInsufficientBalance, sourceID, sourceBalance, amount)
	}

	suffix := ""
	if description != "" {
		suffix = " (" + description + ")"
	}
	legs := []models.Transaction{
		{
			ID:          uuid.NewString(),
			AccountID:   sourceID,
			Type:        models.TypeExpense,
			Category:    models.CategoryTransfer,
			Description: "Transfer to " + destName + suffix,
			Amount:      amount,
			Date:        date,
		},
		{
			ID:          uuid.NewString(),
			AccountID:   destID,
			Type:        models.TypeIncome,
			Category:    models.CategoryTransfer,
			Description: "Transfer from " + sourceName + suffix,
			Amount:      amount,
			Date:        date,
		},
	}

	for i := range legs {
		if err := insertTransactionTx(tx, &legs[i]); err != nil {
			return nil, err
		}
		if err := applyBalanceTx(tx, legs[i].AccountID, balanceDelta(legs[i].Type, legs[i].Amount)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}

	log.Info().
		Str("source", sourceID).
		Str("dest", destID).
		Float64("amount", amount).
		Msg("transfer completed")
	return legs, nil
}

func validateTransaction(t *models.Transaction) error {
	if t.AccountID == "" {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	if !models.ValidTransactionType(t.Type) {
		return fmt.Errorf("%w: invalid transaction type %q", ErrValidation, t.Type)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if t.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if t.Date != "" {
		if _, err := time.Parse(models.DateLayout, t.Date); err != nil {
			return fmt.Errorf("%w: invalid date %q", ErrValidation, t.Date)
		}
	}
	return nil
}

func insertTransactionTx(tx *sql.Tx, t *models.Transaction) error {
	_, err := tx.Exec(`
		INSERT INTO transactions (id, account_id, type, category, description, amount, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.AccountID, t.Type, t.Category, t.Description, t.Amount, t.Date)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// applyBalanceTx shifts an account balance by delta. The row update and the
// transaction insert it accompanies share one sql.Tx, so a failure of
// either leaves neither visible.
func applyBalanceTx(tx *sql.Tx, accountID string, delta float64) error {
	res, err := tx.Exec("UPDATE accounts SET balance = balance + ? WHERE id = ?", delta, accountID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check balance update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	return nil
}

func accountBalanceTx(tx *sql.Tx, id string) (float64, error) {
	var balance float64
	err := tx.QueryRow("SELECT balance FROM accounts WHERE id = ?", id).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load account: %w", err)
	}
	return balance, nil
}

func accountTx(tx *sql.Tx, id string) (string, float64, error) {
	var name string
	var balance float64
	err := tx.QueryRow("SELECT name, balance FROM accounts WHERE id = ?", id).Scan(&name, &balance)
	if err == sql.ErrNoRows {
		return "", 0, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to load account: %w", err)
	}
	return name, balance, nil
}
