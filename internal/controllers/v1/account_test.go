package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/ledgerbook/backend/internal/controllers/v1"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/ledgerbook/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func createTestAccount(t *testing.T, a v1.AccountEditable, expectedStatus ...int) v1.AccountResponse {
	if a.Name == "" {
		a.Name = uuid.NewString()
	}

	if a.Type == "" {
		a.Type = ledger.KindDebit
	}

	if a.Ledger == "" {
		a.Ledger = "Personal"
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{a})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.AccountResponse{}
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	tests := []struct {
		name    string
		account v1.AccountEditable
		status  int
	}{
		{"Debit", v1.AccountEditable{Name: "Checking", Type: ledger.KindDebit}, http.StatusCreated},
		{"Lowercase type", v1.AccountEditable{Name: "Wallet", Type: "cash"}, http.StatusCreated},
		{"Unknown type", v1.AccountEditable{Name: "Shoebox", Type: "Mattress"}, http.StatusBadRequest},
		{"Reserved ledger", v1.AccountEditable{Name: "Anything", Ledger: "All"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			createTestAccount(t, tt.account, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsCreateRegistersLedger() {
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Ledger: "Business"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ledgers", "")
	var response v1.LedgerListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Business", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestAccountsDuplicateName() {
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Ledger: "Personal"})
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Ledger: "Personal"}, http.StatusBadRequest)
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Ledger: "Business"})
}

func (suite *TestSuiteStandard) TestAccountsStatementFieldsOnlyForCredit() {
	limit := decimalFromString("1000")

	a := createTestAccount(suite.T(), v1.AccountEditable{Type: ledger.KindSavings, CreditLimit: &limit})
	suite.Assert().Nil(a.Data.CreditLimit)
	suite.Assert().Nil(a.Data.AvailableCredit)

	c := createTestAccount(suite.T(), v1.AccountEditable{Type: ledger.KindCredit, CreditLimit: &limit})
	suite.Require().NotNil(c.Data.CreditLimit)
	suite.Assert().True(c.Data.CreditLimit.Equal(limit))
	suite.Require().NotNil(c.Data.AvailableCredit)
	suite.Assert().True(c.Data.AvailableCredit.Equal(limit))
}

func (suite *TestSuiteStandard) TestAccountsList() {
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Description: "Main bank", Ledger: "Personal"})
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Visa", Type: ledger.KindCredit, Ledger: "Personal"})
	createTestAccount(suite.T(), v1.AccountEditable{Name: "Business checking", Ledger: "Business"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Ledger", "ledger=personal", 2},
		{"Ledger All", "ledger=All", 3},
		{"Type", "type=Credit", 1},
		{"Name", "name=checking", 2},
		{"Search", "search=bank", 1},
		{"Limit", "limit=1", 1},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts?type=Mattress", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsGetSingle() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Existing Account", a.Data.ID.String(), http.StatusOK},
		{"No Account with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "notaUUID", http.StatusBadRequest},
		{"Balance", a.Data.ID.String() + "/balance", http.StatusOK},
		{"Balance invalid time", a.Data.ID.String() + "/balance?time=yesterday", http.StatusBadRequest},
		{"Balance no Account", uuid.New().String() + "/balance", http.StatusNotFound},
		{"Register", a.Data.ID.String() + "/register", http.StatusOK},
		{"Register no Account", uuid.New().String() + "/register", http.StatusNotFound},
		{"Register invalid ID", "notaUUID/register", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.path), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsBalance() {
	opening := decimalFromString("1000")
	a := createTestAccount(suite.T(), v1.AccountEditable{OpeningBalance: opening})

	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Type: ledger.TypeExpense, Amount: decimalFromString("200"), Date: date(2025, 5, 10)})
	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Type: ledger.TypeIncome, Amount: decimalFromString("500"), Date: date(2025, 5, 20)})

	tests := []struct {
		time     string
		expected string
	}{
		{"2025-05-01", "1000"},
		{"2025-05-10", "800"},
		{"2025-05-15T00:00:00Z", "800"},
		{"2025-05-20", "1300"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.time, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("%s?time=%s", a.Data.Links.Balance, tt.time), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AccountBalanceResponse
			test.DecodeResponse(t, &r, &response)
			assert.True(t, response.Data.Balance.Equal(decimalFromString(tt.expected)), "Balance is %s, expected %s", response.Data.Balance, tt.expected)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, a.Data.Links.Self, "")
	var account v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &account)
	suite.Assert().True(account.Data.Balance.Equal(decimalFromString("1300")), "Balance is %s", account.Data.Balance)
}

func (suite *TestSuiteStandard) TestAccountsCreditBalance() {
	limit := decimalFromString("5000")
	checking := createTestAccount(suite.T(), v1.AccountEditable{OpeningBalance: decimalFromString("1000")})
	visa := createTestAccount(suite.T(), v1.AccountEditable{Type: ledger.KindCredit, CreditLimit: &limit})

	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: visa.Data.ID, Amount: decimalFromString("300"), Date: date(2025, 5, 3)})
	createTestTransfer(suite.T(), v1.TransferEditable{FromAccountID: checking.Data.ID, ToAccountID: visa.Data.ID, Amount: decimalFromString("100")})

	r := test.Request(suite.T(), http.MethodGet, visa.Data.Links.Balance, "")
	var balance v1.AccountBalanceResponse
	test.DecodeResponse(suite.T(), &r, &balance)

	suite.Assert().True(balance.Data.Balance.Equal(decimalFromString("200")), "Balance is %s", balance.Data.Balance)
	suite.Require().NotNil(balance.Data.AvailableCredit)
	suite.Assert().True(balance.Data.AvailableCredit.Equal(decimalFromString("4800")), "Available credit is %s", balance.Data.AvailableCredit)

	r = test.Request(suite.T(), http.MethodGet, checking.Data.Links.Balance, "")
	test.DecodeResponse(suite.T(), &r, &balance)
	suite.Assert().True(balance.Data.Balance.Equal(decimalFromString("900")), "Balance is %s", balance.Data.Balance)
	suite.Assert().Nil(balance.Data.AvailableCredit)
}

func (suite *TestSuiteStandard) TestAccountsRegister() {
	a := createTestAccount(suite.T(), v1.AccountEditable{OpeningBalance: decimalFromString("100")})

	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Type: ledger.TypeIncome, Amount: decimalFromString("50"), Date: date(2025, 3, 2)})
	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Type: ledger.TypeExpense, Amount: decimalFromString("30"), Date: date(2025, 3, 1)})

	r := test.Request(suite.T(), http.MethodGet, a.Data.Links.Register, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountRegisterResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(ledger.TypeExpense, response.Data[0].Transaction.Type)
	suite.Assert().True(response.Data[0].Balance.Equal(decimalFromString("70")), "Balance is %s", response.Data[0].Balance)
	suite.Assert().True(response.Data[1].Balance.Equal(decimalFromString("120")), "Balance is %s", response.Data[1].Balance)
}

func (suite *TestSuiteStandard) TestAccountsRegisterSingleTransaction() {
	a := createTestAccount(suite.T(), v1.AccountEditable{OpeningBalance: decimalFromString("100")})
	other := createTestAccount(suite.T(), v1.AccountEditable{})

	income := createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Type: ledger.TypeIncome, Amount: decimalFromString("50"), Date: date(2025, 3, 2)})
	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Type: ledger.TypeExpense, Amount: decimalFromString("30"), Date: date(2025, 3, 1)})
	foreign := createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: other.Data.ID, Amount: decimalFromString("5")})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s?transaction=%s", a.Data.Links.Register, income.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountRegisterResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(income.Data.ID, response.Data[0].Transaction.ID)
	suite.Assert().True(response.Data[0].Balance.Equal(decimalFromString("120")), "Balance is %s", response.Data[0].Balance)

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"Transaction of another account", fmt.Sprintf("%s?transaction=%s", a.Data.Links.Register, foreign.Data.ID), http.StatusNotFound},
		{"Unknown transaction", fmt.Sprintf("%s?transaction=%s", a.Data.Links.Register, uuid.New()), http.StatusNotFound},
		{"Invalid transaction ID", fmt.Sprintf("%s?transaction=notaUUID", a.Data.Links.Register), http.StatusBadRequest},
		{"Unknown account", fmt.Sprintf("http://example.com/v1/accounts/%s/register?transaction=%s", uuid.New(), income.Data.ID), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsUpdate() {
	a := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Description: "Main", Ledger: "Personal"})
	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Amount: decimalFromString("10")})

	r := test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, map[string]any{"ledger": "Business"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Business", updated.Data.Ledger)
	suite.Assert().Equal("Main", updated.Data.Description, "Fields missing in the body must not change")

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?ledger=Business", "")
	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	suite.Assert().Len(transactions.Data, 1)

	r = test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, map[string]any{"name": ""})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, `{ "name": 2 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsDelete() {
	a := createTestAccount(suite.T(), v1.AccountEditable{})
	b := createTestAccount(suite.T(), v1.AccountEditable{})
	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, Amount: decimalFromString("10")})
	createTestTransfer(suite.T(), v1.TransferEditable{FromAccountID: a.Data.ID, ToAccountID: b.Data.ID, Amount: decimalFromString("5")})

	r := test.Request(suite.T(), http.MethodDelete, a.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	suite.Assert().Len(transactions.Data, 0, "Transactions referencing the account must be deleted")

	r = test.Request(suite.T(), http.MethodDelete, a.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	suite.CloseDB()

	createTestAccount(suite.T(), v1.AccountEditable{}, http.StatusInternalServerError)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.AccountListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s/balance", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
