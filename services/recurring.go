package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cycleledger/cycle"
	"cycleledger/database"
	"cycleledger/models"
)

// CreateRecurringTransaction validates and persists a new rule. The first
// due date is always the start date.
func CreateRecurringTransaction(r *models.RecurringTransaction) error {
	if r.AccountID == "" {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	if !models.ValidRecurringType(r.Type) {
		return fmt.Errorf("%w: invalid rule type %q", ErrValidation, r.Type)
	}
	if !cycle.Unit(r.IntervalUnit).Valid() {
		return fmt.Errorf("%w: invalid interval unit %q", ErrValidation, r.IntervalUnit)
	}
	if r.IntervalValue < 1 {
		return fmt.Errorf("%w: interval value must be at least 1", ErrValidation)
	}
	if r.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if _, err := cycle.ParseDate(r.StartDate); err != nil {
		return fmt.Errorf("%w: invalid start date %q", ErrValidation, r.StartDate)
	}
	if r.EndDate != nil {
		if _, err := cycle.ParseDate(*r.EndDate); err != nil {
			return fmt.Errorf("%w: invalid end date %q", ErrValidation, *r.EndDate)
		}
	}

	if r.Type == models.TypeTransfer {
		if r.ToAccountID == nil || *r.ToAccountID == "" {
			return fmt.Errorf("%w: transfer rules need a destination account", ErrValidation)
		}
		if *r.ToAccountID == r.AccountID {
			return fmt.Errorf("%w: cannot transfer to the same account", ErrValidation)
		}
	} else {
		r.ToAccountID = nil
	}

	if err := accountExists(r.AccountID); err != nil {
		return err
	}
	if r.ToAccountID != nil {
		if err := accountExists(*r.ToAccountID); err != nil {
			return err
		}
	}

	r.ID = uuid.NewString()
	r.NextRunDate = r.StartDate
	r.IsActive = true

	_, err := database.DB.Exec(`
		INSERT INTO recurring_transactions
			(id, account_id, to_account_id, type, category, description, amount,
			 interval_unit, interval_value, start_date, next_run_date, end_date, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.AccountID, r.ToAccountID, r.Type, r.Category, r.Description, r.Amount,
		r.IntervalUnit, r.IntervalValue, r.StartDate, r.NextRunDate, r.EndDate, r.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert recurring transaction: %w", err)
	}
	return nil
}

// IsDue reports whether the rule should fire on the given day. A rule whose
// next run date has passed its end date is expired and never due.
func IsDue(r *models.RecurringTransaction, today time.Time) bool {
	if !r.IsActive {
		return false
	}
	next, err := cycle.ParseDate(r.NextRunDate)
	if err != nil {
		return false
	}
	if r.EndDate != nil {
		if end, err := cycle.ParseDate(*r.EndDate); err == nil && next.After(end) {
			return false
		}
	}
	return !next.After(today)
}

// ExecuteRecurringTransaction materializes the rule into concrete
// transactions dated effectiveDate and advances the schedule. The new next
// run date is computed from the rule's previous next run date, never from
// effectiveDate, so paying early or late does not shift future due dates.
// Materialized rows, balance updates and the schedule advance commit as one
// unit. Source balance is not checked: scheduled obligations proceed even
// into a negative balance.
func ExecuteRecurringTransaction(id string, overrideAmount *float64, effectiveDate string) ([]models.Transaction, error) {
	if effectiveDate == "" {
		effectiveDate = time.Now().UTC().Format(models.DateLayout)
	} else if _, err := cycle.ParseDate(effectiveDate); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, effectiveDate)
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rule, err := ruleTx(tx, id)
	if err != nil {
		return nil, err
	}

	next, err := cycle.ParseDate(rule.NextRunDate)
	if err != nil {
		return nil, fmt.Errorf("rule %s has invalid next run date %q", id, rule.NextRunDate)
	}
	if rule.EndDate != nil {
		if end, perr := cycle.ParseDate(*rule.EndDate); perr == nil && next.After(end) {
			return nil, fmt.Errorf("rule %s: %w", id, ErrRuleExpired)
		}
	}

	amount := 0.0
	switch {
	case rule.Amount != nil:
		amount = *rule.Amount
	case overrideAmount != nil:
		amount = *overrideAmount
	default:
		return nil, fmt.Errorf("%w: rule has no fixed amount, provide one", ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	var created []models.Transaction
	if rule.Type == models.TypeTransfer {
		sourceName, _, err := accountTx(tx, rule.AccountID)
		if err != nil {
			return nil, err
		}
		destName, _, err := accountTx(tx, *rule.ToAccountID)
		if err != nil {
			return nil, err
		}
		created = []models.Transaction{
			{
				ID:          uuid.NewString(),
				AccountID:   rule.AccountID,
				Type:        models.TypeExpense,
				Category:    models.CategoryTransfer,
				Description: "Recurring Transfer to " + destName + " (" + rule.Description + ")",
				Amount:      amount,
				Date:        effectiveDate,
			},
			{
				ID:          uuid.NewString(),
				AccountID:   *rule.ToAccountID,
				Type:        models.TypeIncome,
				Category:    models.CategoryTransfer,
				Description: "Recurring Transfer from " + sourceName + " (" + rule.Description + ")",
				Amount:      amount,
				Date:        effectiveDate,
			},
		}
	} else {
		created = []models.Transaction{
			{
				ID:          uuid.NewString(),
				AccountID:   rule.AccountID,
				Type:        rule.Type,
				Category:    rule.Category,
				Description: "Recurring: " + rule.Description,
				Amount:      amount,
				Date:        effectiveDate,
			},
		}
	}

	for i := range created {
		if err := insertTransactionTx(tx, &created[i]); err != nil {
			return nil, err
		}
		if err := applyBalanceTx(tx, created[i].AccountID, balanceDelta(created[i].Type, created[i].Amount)); err != nil {
			return nil, err
		}
	}

	advanced := cycle.Advance(next, cycle.Unit(rule.IntervalUnit), rule.IntervalValue)
	_, err = tx.Exec(`
		UPDATE recurring_transactions
		SET next_run_date = ?, last_run_date = ?
		WHERE id = ?
	`, cycle.FormatDate(advanced), effectiveDate, id)
	if err != nil {
		return nil, fmt.Errorf("failed to advance schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit execution: %w", err)
	}

	log.Info().
		Str("rule", id).
		Str("nextRunDate", cycle.FormatDate(advanced)).
		Float64("amount", amount).
		Msg("recurring transaction executed")
	return created, nil
}

// DeleteRecurringTransaction removes the rule. Transactions it already
// materialized are untouched.
func DeleteRecurringTransaction(id string) error {
	res, err := database.DB.Exec("DELETE FROM recurring_transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete recurring transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recurring transaction %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetRecurringTransactions lists all rules ordered by next run date.
func GetRecurringTransactions() ([]models.RecurringTransaction, error) {
	rows, err := database.DB.Query(`
		SELECT id, account_id, to_account_id, type, category, description, amount,
		       interval_unit, interval_value, start_date, next_run_date,
		       last_run_date, end_date, is_active, created_at
		FROM recurring_transactions
		ORDER BY next_run_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transactions: %w", err)
	}
	defer rows.Close()

	var rules []models.RecurringTransaction
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

// DueRecurringTransactions returns the active rules due on the given day,
// end-date expiry already filtered out.
func DueRecurringTransactions(today time.Time) ([]models.RecurringTransaction, error) {
	rules, err := GetRecurringTransactions()
	if err != nil {
		return nil, err
	}
	var due []models.RecurringTransaction
	for _, r := range rules {
		if IsDue(&r, today) {
			due = append(due, r)
		}
	}
	return due, nil
}

func accountExists(id string) error {
	var one int
	err := database.DB.QueryRow("SELECT 1 FROM accounts WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	return nil
}

func ruleTx(tx *sql.Tx, id string) (*models.RecurringTransaction, error) {
	row := tx.QueryRow(`
		SELECT id, account_id, to_account_id, type, category, description, amount,
		       interval_unit, interval_value, start_date, next_run_date,
		       last_run_date, end_date, is_active, created_at
		FROM recurring_transactions
		WHERE id = ?
	`, id)
	r, err := scanRule(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recurring transaction %s: %w", id, ErrNotFound)
	}
	return r, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*models.RecurringTransaction, error) {
	var r models.RecurringTransaction
	var toAccount, lastRun, endDate sql.NullString
	var amount sql.NullFloat64
	var description sql.NullString
	err := row.Scan(&r.ID, &r.AccountID, &toAccount, &r.Type, &r.Category, &description,
		&amount, &r.IntervalUnit, &r.IntervalValue, &r.StartDate, &r.NextRunDate,
		&lastRun, &endDate, &r.IsActive, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recurring transaction: %w", err)
	}
	r.Description = description.String
	if toAccount.Valid {
		r.ToAccountID = &toAccount.String
	}
	if amount.Valid {
		r.Amount = &amount.Float64
	}
	if lastRun.Valid {
		r.LastRunDate = &lastRun.String
	}
	if endDate.Valid {
		r.EndDate = &endDate.String
	}
	return &r, nil
}
