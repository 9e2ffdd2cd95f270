package models

import "time"

type Debt struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TotalAmount    float64   `json:"totalAmount"`
	CurrentBalance float64   `json:"currentBalance"`
	InterestRate   float64   `json:"interestRate"`
	MinimumPayment float64   `json:"minimumPayment"`
	DueDate        *string   `json:"dueDate,omitempty"`
	StartDate      *string   `json:"startDate,omitempty"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
}
