package models

// Transaction and recurring rule types
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Account types
const (
	AccountTypeMain   = "main"
	AccountTypeSaving = "saving"
	AccountTypeCustom = "custom"
)

// Categories assigned by the system rather than the user
const (
	CategoryTransfer    = "Transfer"
	CategoryDebtPayment = "Debt Payment"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

func ValidRecurringType(t string) bool {
	return t == TypeIncome || t == TypeExpense || t == TypeTransfer
}

func ValidAccountType(t string) bool {
	return t == AccountTypeMain || t == AccountTypeSaving || t == AccountTypeCustom
}
