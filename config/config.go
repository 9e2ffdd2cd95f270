package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBPath            string
	AllowOrigins      string
	PastCycles        int
	SchedulerEnabled  bool
	SchedulerInterval time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Load reads configuration from the environment, with .env as a fallback
// for local development.
func Load() *Config {
	_ = godotenv.Load(".env")
	return &Config{
		Port:              getenv("PORT", "8080"),
		DBPath:            getenv("DB_PATH", "./cycleledger.db"),
		AllowOrigins:      getenv("CORS_ALLOWED_ORIGINS", ""),
		PastCycles:        atoi("PAST_CYCLES", 11),
		SchedulerEnabled:  getbool("SCHEDULER_ENABLED", false),
		SchedulerInterval: time.Duration(atoi("SCHEDULER_INTERVAL_MINUTES", 60)) * time.Minute,
	}
}
