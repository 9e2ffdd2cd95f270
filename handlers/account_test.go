package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cycleledger/database"
	"cycleledger/models"
)

func TestAddAccountDefaultsToCustomType(t *testing.T) {
	setupTestDB(t)

	w := postJSON(t, AddAccount, "/accounts", models.Account{Name: "Vacation Fund", Balance: 50})
	require.Equal(t, http.StatusCreated, w.Code)

	var a models.Account
	require.NoError(t, json.NewDecoder(w.Body).Decode(&a))
	assert.Equal(t, models.AccountTypeCustom, a.Type)
	assert.NotEmpty(t, a.ID)
}

func TestAddAccountSingleMain(t *testing.T) {
	setupTestDB(t)

	w := postJSON(t, AddAccount, "/accounts", models.Account{Name: "Main", Type: models.AccountTypeMain})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, AddAccount, "/accounts", models.Account{Name: "Second Main", Type: models.AccountTypeMain})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddAccountValidation(t *testing.T) {
	setupTestDB(t)

	w := postJSON(t, AddAccount, "/accounts", models.Account{Name: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, AddAccount, "/accounts", models.Account{Name: "X", Type: "checking"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAccountsMainFirst(t *testing.T) {
	setupTestDB(t)
	seedTestAccount(t, "acc-z", "Zeta", 0)
	_, err := database.DB.Exec(
		"INSERT INTO accounts (id, name, type, balance) VALUES (?, ?, ?, ?)",
		"acc-main", "Main Account", models.AccountTypeMain, 0)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	GetAccounts(w, httptest.NewRequest("GET", "/accounts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var accounts []models.Account
	require.NoError(t, json.NewDecoder(w.Body).Decode(&accounts))
	require.Len(t, accounts, 2)
	assert.Equal(t, "acc-main", accounts[0].ID)
}

func TestDeleteAccountGuards(t *testing.T) {
	setupTestDB(t)
	_, err := database.DB.Exec(
		"INSERT INTO accounts (id, name, type, balance) VALUES (?, ?, ?, ?)",
		"acc-main", "Main Account", models.AccountTypeMain, 0)
	require.NoError(t, err)
	seedTestAccount(t, "acc-used", "Used", 1000)
	seedTestAccount(t, "acc-free", "Free", 0)

	_, err = database.DB.Exec(`
		INSERT INTO transactions (id, account_id, type, category, amount, date)
		VALUES ('tx-1', 'acc-used', 'expense', 'Food', 10, '2024-06-01')`)
	require.NoError(t, err)

	del := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/accounts/"+id, nil)
		req = withPathVars(req, map[string]string{"id": id})
		w := httptest.NewRecorder()
		DeleteAccount(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, del("acc-main").Code)
	assert.Equal(t, http.StatusBadRequest, del("acc-used").Code)
	assert.Equal(t, http.StatusOK, del("acc-free").Code)
	assert.Equal(t, http.StatusNotFound, del("acc-free").Code)
}
