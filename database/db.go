package database

import (
	"database/sql"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDB opens the sqlite database and creates the schema. The path comes
// from DB_PATH; tests set TEST_DB=1 to get an in-memory database.
func InitDB() error {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./cycleledger.db"
	}
	if os.Getenv("TEST_DB") == "1" {
		dbPath = ":memory:"
	}

	// Connection parameters to better handle concurrent requests.
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000&_foreign_keys=on"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if _, err = db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err = db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}

	if err = db.Ping(); err != nil {
		return err
	}

	if err = CreateTables(db); err != nil {
		return err
	}

	DB = db
	return nil
}
