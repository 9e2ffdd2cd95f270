package handlers

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"

	"cycleledger/database"
	"cycleledger/models"
)

// withPathVars injects mux path variables when a handler is called outside
// a router.
func withPathVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

// setupTestDB points the package at a fresh in-memory database with the
// full schema.
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.CreateTables(db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	database.DB = db
	t.Cleanup(func() { db.Close() })
}

func seedTestAccount(t *testing.T, id, name string, balance float64) {
	t.Helper()
	_, err := database.DB.Exec(
		"INSERT INTO accounts (id, name, type, balance) VALUES (?, ?, ?, ?)",
		id, name, models.AccountTypeCustom, balance)
	if err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
}

func seedTestSettings(t *testing.T, cycleStartDay int, currency string) {
	t.Helper()
	_, err := database.DB.Exec(
		"INSERT INTO settings (id, cycle_start_day, currency) VALUES (?, ?, ?)",
		"settings-1", cycleStartDay, currency)
	if err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
}
