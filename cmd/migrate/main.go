package main

import (
	"database/sql"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"cycleledger/database"
	"cycleledger/migrations"
)

var dbPath string

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tool",
		Long:  `Runs schema migrations and seeds against the ledger database.`,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database (overrides DB_PATH)")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			db := openDB()
			if err := migrations.RunMigrations(db); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
			log.Info().Msg("migrations completed")
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed default settings, main account and categories",
		Run: func(cmd *cobra.Command, args []string) {
			db := openDB()
			if err := migrations.SeedDefaults(db); err != nil {
				log.Fatal().Err(err).Msg("failed to seed defaults")
			}
			log.Info().Msg("seeding completed")
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop all data and rebuild the schema",
		Run: func(cmd *cobra.Command, args []string) {
			db := openDB()
			tables := []string{
				"transactions", "recurring_transactions", "debts",
				"categories", "accounts", "settings", "migrations",
			}
			for _, table := range tables {
				if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
					log.Fatal().Err(err).Str("table", table).Msg("failed to drop table")
				}
			}
			if err := database.CreateTables(db); err != nil {
				log.Fatal().Err(err).Msg("failed to recreate schema")
			}
			if err := migrations.RunMigrations(db); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
			log.Info().Msg("database reset completed")
		},
	}

	rootCmd.AddCommand(upCmd, seedCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() *sql.DB {
	if dbPath != "" {
		os.Setenv("DB_PATH", dbPath)
	}
	if err := database.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	return database.DB
}
