package migrations

import "database/sql"

// AddTransactionIndexes speeds up the cycle-window date filters and the
// per-account listings.
func AddTransactionIndexes(db *sql.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
