package database

import "database/sql"

// CreateTables creates every table the tracker persists. All statements are
// idempotent; ordered schema changes beyond this baseline live in the
// migrations package.
func CreateTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('main', 'saving', 'custom')),
			balance REAL NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL REFERENCES accounts(id),
			type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			category TEXT NOT NULL,
			description TEXT,
			amount REAL NOT NULL,
			date TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('income', 'expense'))
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_type
			ON categories(LOWER(name), type);`,
		`CREATE TABLE IF NOT EXISTS recurring_transactions (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL REFERENCES accounts(id),
			to_account_id TEXT REFERENCES accounts(id),
			type TEXT NOT NULL CHECK (type IN ('income', 'expense', 'transfer')),
			category TEXT NOT NULL,
			description TEXT,
			amount REAL,
			interval_unit TEXT NOT NULL CHECK (interval_unit IN ('day', 'week', 'month', 'year')),
			interval_value INTEGER NOT NULL DEFAULT 1,
			start_date TEXT NOT NULL,
			next_run_date TEXT NOT NULL,
			last_run_date TEXT,
			end_date TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_recurring_next_run
			ON recurring_transactions(next_run_date) WHERE is_active = 1;`,
		`CREATE TABLE IF NOT EXISTS debts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			total_amount REAL NOT NULL,
			current_balance REAL NOT NULL,
			interest_rate REAL NOT NULL DEFAULT 0,
			minimum_payment REAL NOT NULL DEFAULT 0,
			due_date TEXT,
			start_date TEXT,
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			id TEXT PRIMARY KEY,
			cycle_start_day INTEGER NOT NULL DEFAULT 1,
			currency TEXT NOT NULL DEFAULT 'USD'
		);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
