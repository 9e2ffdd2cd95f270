package models

import "time"

// RecurringTransaction is a template that materializes concrete transactions
// when executed. Amount is nil for variable-amount rules, which require an
// amount at execution time. ToAccountID is set only for transfer rules.
type RecurringTransaction struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"accountId"`
	ToAccountID   *string   `json:"toAccountId,omitempty"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Amount        *float64  `json:"amount,omitempty"`
	IntervalUnit  string    `json:"intervalUnit"`
	IntervalValue int       `json:"intervalValue"`
	StartDate     string    `json:"startDate"`
	NextRunDate   string    `json:"nextRunDate"`
	LastRunDate   *string   `json:"lastRunDate,omitempty"`
	EndDate       *string   `json:"endDate,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}
