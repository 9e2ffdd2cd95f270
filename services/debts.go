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

// CreateDebt persists a new debt.
func CreateDebt(d *models.Debt) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if d.TotalAmount <= 0 {
		return fmt.Errorf("%w: total amount must be positive", ErrValidation)
	}
	if d.CurrentBalance < 0 || d.CurrentBalance > d.TotalAmount {
		return fmt.Errorf("%w: current balance must be between 0 and the total amount", ErrValidation)
	}

	d.ID = uuid.NewString()
	_, err := database.DB.Exec(`
		INSERT INTO debts (id, name, total_amount, current_balance, interest_rate,
		                   minimum_payment, due_date, start_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Name, d.TotalAmount, d.CurrentBalance, d.InterestRate,
		d.MinimumPayment, d.DueDate, d.StartDate, d.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

// UpdateDebt overwrites every editable field of the debt.
func UpdateDebt(id string, d *models.Debt) error {
	res, err := database.DB.Exec(`
		UPDATE debts
		SET name = ?, total_amount = ?, current_balance = ?, interest_rate = ?,
		    minimum_payment = ?, due_date = ?, start_date = ?, notes = ?
		WHERE id = ?
	`, d.Name, d.TotalAmount, d.CurrentBalance, d.InterestRate,
		d.MinimumPayment, d.DueDate, d.StartDate, d.Notes, id)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check debt update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("debt %s: %w", id, ErrNotFound)
	}
	d.ID = id
	return nil
}

// DeleteDebt removes the debt; payment transactions already recorded stay
// in the ledger.
func DeleteDebt(id string) error {
	res, err := database.DB.Exec("DELETE FROM debts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check debt delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("debt %s: %w", id, ErrNotFound)
	}
	return nil
}

// PayDebt records a payment: an expense transaction against the paying
// account and a decrement of the debt balance, committed as one unit.
func PayDebt(debtID, accountID string, amount float64, date, description string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if date == "" {
		date = time.Now().UTC().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var debtName string
	err = tx.QueryRow("SELECT name FROM debts WHERE id = ?", debtID).Scan(&debtName)
	if err == sql.ErrNoRows {
		return fmt.Errorf("debt %s: %w", debtID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load debt: %w", err)
	}

	balance, err := accountBalanceTx(tx, accountID)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: account %s has %.2f, need %.2f",
			ErrInsufficientBalance, accountID, balance, amount)
	}

	if description == "" {
		description = "Payment for " + debtName
	}
	payment := models.Transaction{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Type:        models.TypeExpense,
		Category:    models.CategoryDebtPayment,
		Description: description,
		Amount:      amount,
		Date:        date,
	}
	if err := insertTransactionTx(tx, &payment); err != nil {
		return err
	}
	if err := applyBalanceTx(tx, accountID, balanceDelta(payment.Type, amount)); err != nil {
		return err
	}

	_, err = tx.Exec("UPDATE debts SET current_balance = current_balance - ? WHERE id = ?", amount, debtID)
	if err != nil {
		return fmt.Errorf("failed to update debt balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payment: %w", err)
	}

	log.Info().Str("debt", debtID).Float64("amount", amount).Msg("debt payment recorded")
	return nil
}
