package services

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"cycleledger/database"
	"cycleledger/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.CreateTables(db))
	database.DB = db
	t.Cleanup(func() { db.Close() })
}

func seedAccount(t *testing.T, id, name string, balance float64) {
	t.Helper()
	_, err := database.DB.Exec(
		"INSERT INTO accounts (id, name, type, balance) VALUES (?, ?, ?, ?)",
		id, name, models.AccountTypeCustom, balance)
	require.NoError(t, err)
}

func accountBalance(t *testing.T, id string) float64 {
	t.Helper()
	var balance float64
	err := database.DB.QueryRow("SELECT balance FROM accounts WHERE id = ?", id).Scan(&balance)
	require.NoError(t, err)
	return balance
}

func transactionCount(t *testing.T) int {
	t.Helper()
	var count int
	err := database.DB.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	require.NoError(t, err)
	return count
}
