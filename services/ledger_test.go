package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cycleledger/models"
)

func TestAddTransactionAppliesBalanceEffect(t *testing.T) {
	setupTestDB(t)
	seedAccount(t, "acc-1", "Checking", 100)

	err := AddTransaction(&models.Transaction{
		AccountID: "acc-1",
		Type:      models.TypeIncome,
		Category:  "Salary",
		Amount:    250,
		Date:      "2024-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 350.0, accountBalance(t, "acc-1"))

	err = AddTransaction(&models.Transaction{
		AccountID: "acc-1",
		Type:      models.TypeExpense,
		Category:  "Food",
		Amount:    50,
		Date:      "2024-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, accountBalance(t, "acc-1"))
}

func TestDeleteTransactionRestoresBalanceExactly(t *testing.T) {
	setupTestDB(t)
	seedAccount(t, "acc-1", "Checking", 100)

	tx := models.Transaction{
		AccountID: "acc-1",
		Type:      models.TypeExpense,
		Category:  "Food",
		Amount:    50,
		Date:      "2024-06-01",
	}
	require.NoError(t, AddTransaction(&tx))
	require.Equal(t, 50.0, accountBalance(t, "acc-1"))

	require.NoError(t, DeleteTransaction(tx.ID))
	assert.Equal(t, 100.0, accountBalance(t, "acc-1"))
	assert.Equal(t, 0, transactionCount(t))
}

func TestDeleteTransactionReversalIsOrderIndependent(t *testing.T) {
	setupTestDB(t)
	seedAccount(t, "acc-1", "Checking", 100)

	expense := models.Transaction{
		AccountID: "acc-1",
		Type:      models.TypeExpense,
		Category:  "Food",
		Amount:    50,
		Date:      "2024-06-01",
	}
	require.NoError(t, AddTransaction(&expense))

	// The account moves on before the expense is deleted.
	income := models.Transaction{
		AccountID: "acc-1",
		Type:      models.TypeIncome,
		Category:  "Salary",
		Amount:    30,
		Date:      "2024-06-02",
	}
	require.NoError(t, AddTransaction(&income))
	require.Equal(t, 80.0, accountBalance(t, "acc-1"))

	require.NoError(t, DeleteTransaction(expense.ID))
	assert.Equal(t, 130.0, accountBalance(t, "acc-1"))
}

func TestAddTransactionValidation(t *testing.T) {
	setupTestDB(t)
	seedAccount(t, "acc-1", "Checking", 100)

	tests := []struct {
		name string
		tx   models.Transaction
		want error
	}{
		{"missing account", models.Transaction{Type: models.TypeIncome, Category: "Salary", Amount: 10}, ErrValidation},
		{"zero amount", models.Transaction{AccountID: "acc-1", Type: models.TypeIncome, Category: "Salary", Amount: 0}, ErrValidation},
		{"negative amount", models.Transaction{AccountID: "acc-1", Type: models.TypeExpense, Category: "Food", Amount: -5}, ErrValidation},
		{"bad type", models.Transaction{AccountID: "acc-1", Type: "transfer", Category: "Food", Amount: 10}, ErrValidation},
		{"missing category", models.Transaction{AccountID: "acc-1", Type: models.TypeIncome, Amount: 10}, ErrValidation},
		{"bad date", models.Transaction{AccountID: "acc-1", Type: models.TypeIncome, Category: "Salary", Amount: 10, Date: "06/01/2024"}, ErrValidation},
		{"unknown account", models.Transaction{AccountID: "ghost", Type: models.TypeIncome, Category: "Salary", Amount: 10}, ErrNotFound},
		{"insufficient balance", models.Transaction{AccountID: "acc-1", Type: models.TypeExpense, Category: "Food", Amount: 500}, ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AddTransaction(&tt.tx)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// None of the rejected entries may have touched the ledger.
	assert.Equal(t, 0, transactionCount(t))
	assert.Equal(t, 100.0, accountBalance(t, "acc-1"))
}

func TestDeleteTransactionUnknownID(t *testing.T) {
	setupTestDB(t)
	seedAccount(t, "acc-1", "Checking", 100)

	err := DeleteTransaction("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 100.0, accountBalance(t, "acc-1"))
}

func TestTransferSymmetry(t *testing.T) {
	setupTestDB(t)
	seedAccount(t, "acc-a", "Checking", 200)
	seedAccount(t, "acc-b", "Savings", 50)

	legs, err := Transfer("acc-a", "acc-b", 100, "2024-06-15", "monthly stash")
	require.NoError(t, err)
	require.Len(t, legs, 2)

	assert.Equal(t, 100.0, accountBalance(t, "acc-a"))
	assert.Equal(t, 150.0, accountBalance(t, "acc-b"))

	assert.Equal(t, models.TypeExpense, legs[0].Type)
	assert.Equal(t, "acc-a", legs[0].AccountID)
	assert.Equal(t, models.TypeIncome, legs[1].Type)
	assert.Equal(t, "acc-b", legs[1].AccountID)
	for _, leg := range legs {
		assert.Equal(t, models.CategoryTransfer, leg.Category)
		assert.Equal(t, "2024-06-15", leg.Date)
		assert.Equal(t, 100.0, leg.Amount)
	}
	assert.Equal(t, 2, transactionCount(t))
}

func TestTransferValidation(t *testing.T) {
	setupTestDB(t)
	seedAccount(t, "acc-a", "Checking", 200)

	_, err := Transfer("acc-a", "acc-a", 50, "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Transfer("acc-a", "ghost", 50, "", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Transfer("acc-a", "acc-a2", 0, "", "")
	assert.ErrorIs(t, err, ErrValidation)

	// A failed transfer must not leave a dangling leg or balance change.
	assert.Equal(t, 0, transactionCount(t))
	assert.Equal(t, 200.0, accountBalance(t, "acc-a"))
}

func TestTransferInsufficientBalance(t *testing.T) {
	setupTestDB(t)
	seedAccount(t, "acc-a", "Checking", 30)
	seedAccount(t, "acc-b", "Savings", 0)

	_, err := Transfer("acc-a", "acc-b", 100, "2024-06-15", "")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 30.0, accountBalance(t, "acc-a"))
	assert.Equal(t, 0.0, accountBalance(t, "acc-b"))
	assert.Equal(t, 0, transactionCount(t))
}
