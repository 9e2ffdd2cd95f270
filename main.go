package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cycleledger/config"
	"cycleledger/database"
	"cycleledger/handlers"
	"cycleledger/middleware"
	"cycleledger/migrations"
	"cycleledger/services"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "Run migrations and exit")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if isDevelopmentMode() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg := config.Load()

	if err := database.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	log.Info().Msg("running migrations")
	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if *migrateOnly {
		log.Info().Msg("migrations completed, exiting")
		return
	}

	if cfg.SchedulerEnabled {
		log.Info().Dur("interval", cfg.SchedulerInterval).Msg("starting recurring scheduler")
		services.StartScheduler(cfg.SchedulerInterval)
	}

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)
	r.Use(middleware.RequestLogger)

	// Routes are mounted both bare and under /api so older clients keep
	// working.
	registerRoutes(r)
	registerRoutes(r.PathPrefix("/api").Subrouter())

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + cfg.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Info().Str("port", cfg.Port).Msg("starting server")
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

func isDevelopmentMode() bool {
	env := os.Getenv("ENV")
	return env == "" || env == "development" || env == "dev"
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Accounts
	r.HandleFunc("/accounts", handlers.GetAccounts).Methods("GET")
	r.HandleFunc("/accounts", handlers.AddAccount).Methods("POST")
	r.HandleFunc("/accounts/{id}", handlers.DeleteAccount).Methods("DELETE")

	// Transactions
	r.HandleFunc("/transactions", handlers.GetTransactions).Methods("GET")
	r.HandleFunc("/transactions", handlers.AddTransaction).Methods("POST")
	r.HandleFunc("/transactions/{id}", handlers.GetTransaction).Methods("GET")
	r.HandleFunc("/transactions/{id}", handlers.DeleteTransaction).Methods("DELETE")
	r.HandleFunc("/transfers", handlers.TransferFunds).Methods("POST")

	// Categories
	r.HandleFunc("/categories", handlers.GetCategories).Methods("GET")
	r.HandleFunc("/categories", handlers.AddCategory).Methods("POST")
	r.HandleFunc("/categories/{id}", handlers.DeleteCategory).Methods("DELETE")

	// Recurring transactions
	r.HandleFunc("/recurring", handlers.GetRecurringTransactions).Methods("GET")
	r.HandleFunc("/recurring", handlers.AddRecurringTransaction).Methods("POST")
	r.HandleFunc("/recurring/{id}", handlers.DeleteRecurringTransaction).Methods("DELETE")
	r.HandleFunc("/recurring/{id}/execute", handlers.ExecuteRecurringTransaction).Methods("POST")

	// Debts
	r.HandleFunc("/debts", handlers.GetDebts).Methods("GET")
	r.HandleFunc("/debts", handlers.AddDebt).Methods("POST")
	r.HandleFunc("/debts/{id}", handlers.UpdateDebt).Methods("PUT")
	r.HandleFunc("/debts/{id}", handlers.DeleteDebt).Methods("DELETE")
	r.HandleFunc("/debts/{id}/pay", handlers.PayDebt).Methods("POST")

	// Settings
	r.HandleFunc("/settings", handlers.GetSettings).Methods("GET")
	r.HandleFunc("/settings", handlers.UpdateSettings).Methods("PUT")

	// Cycles and reports
	r.HandleFunc("/cycles", handlers.GetCycles).Methods("GET")
	r.HandleFunc("/cycles/summary", handlers.GetCycleSummary).Methods("GET")
	r.HandleFunc("/reports/summary", handlers.GetCycleSummary).Methods("GET")
}
