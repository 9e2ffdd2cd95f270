package migrations

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"cycleledger/models"
)

// SeedDefaults makes a fresh database usable: one settings row, one main
// account, and the starter category set.
func SeedDefaults(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return fmt.Errorf("failed to count settings: %w", err)
	}
	if count == 0 {
		_, err := db.Exec(
			"INSERT INTO settings (id, cycle_start_day, currency) VALUES (?, ?, ?)",
			uuid.NewString(), 1, "USD")
		if err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if count == 0 {
		_, err := db.Exec(
			"INSERT INTO accounts (id, name, type, balance) VALUES (?, ?, ?, ?)",
			uuid.NewString(), "Main Account", models.AccountTypeMain, 0.0)
		if err != nil {
			return fmt.Errorf("failed to seed main account: %w", err)
		}
	}

	defaultCategories := []struct {
		name string
		typ  string
	}{
		{"Salary", models.TypeIncome},
		{"Freelance", models.TypeIncome},
		{"Investments", models.TypeIncome},
		{"Other Income", models.TypeIncome},
		{"Housing", models.TypeExpense},
		{"Food", models.TypeExpense},
		{"Transportation", models.TypeExpense},
		{"Utilities", models.TypeExpense},
		{"Entertainment", models.TypeExpense},
		{"Healthcare", models.TypeExpense},
		{"Shopping", models.TypeExpense},
		{"Other", models.TypeExpense},
	}
	for _, c := range defaultCategories {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO categories (id, name, type) VALUES (?, ?, ?)",
			uuid.NewString(), c.name, c.typ)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.name, err)
		}
	}

	return nil
}
