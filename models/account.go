package models

// Account holds a running balance that is mutated incrementally by the
// ledger; it is never recomputed from the transaction history.
type Account struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}
