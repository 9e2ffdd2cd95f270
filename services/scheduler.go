package services

import (
	"time"

	"github.com/rs/zerolog/log"

	"cycleledger/models"
)

// StartScheduler starts the optional push-model loop that executes due
// recurring rules without user interaction. It is off by default; the core
// engine stays pull-based and the loop only calls the same IsDue/Execute
// primitives the HTTP surface uses.
func StartScheduler(interval time.Duration) {
	log.Info().Dur("interval", interval).Msg("starting recurring transaction scheduler")
	go runSchedulerLoop(interval)
}

func runSchedulerLoop(interval time.Duration) {
	for {
		runDueRules(time.Now().UTC())
		time.Sleep(interval)
	}
}

func runDueRules(now time.Time) {
	due, err := DueRecurringTransactions(now)
	if err != nil {
		log.Error().Err(err).Msg("failed to list due recurring transactions")
		return
	}

	for _, rule := range due {
		// Variable-amount rules need a user-provided amount and can only
		// be fired manually.
		if rule.Amount == nil {
			log.Warn().Str("rule", rule.ID).Msg("skipping due variable-amount rule")
			continue
		}
		date := now.Format(models.DateLayout)
		if _, err := ExecuteRecurringTransaction(rule.ID, nil, date); err != nil {
			log.Error().Err(err).Str("rule", rule.ID).Msg("failed to execute recurring transaction")
		}
	}
}
