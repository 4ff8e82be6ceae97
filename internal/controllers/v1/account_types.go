package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/shopspring/decimal"
)

type AccountEditable struct {
	Name             string             `json:"name" example:"Checking" default:""`                                         // Name of the account
	Description      string             `json:"description" example:"Main bank account" default:""`                         // A longer description for the account
	Type             ledger.AccountKind `json:"type" example:"Debit" enums:"Debit,Credit,Savings,Investments,Cash"`         // Type of the account. Credit accounts track debt.
	OpeningBalance   decimal.Decimal    `json:"openingBalance" example:"1200.5" default:"0" multipleOf:"0.00000001"`        // Balance of the account before any transactions were recorded
	AsOfDate         *time.Time         `json:"asOfDate" example:"2025-01-01T00:00:00Z"`                                    // Date of the opening balance. Defaults to now.
	Ledger           string             `json:"ledger" example:"Personal"`                                                  // Ledger group the account belongs to
	Notes            string             `json:"notes" example:"Joint account" default:""`                                   // Notes
	CreditLimit      *decimal.Decimal   `json:"creditLimit" example:"5000" multipleOf:"0.00000001"`                         // Credit limit. Only for credit accounts.
	StatementBalance *decimal.Decimal   `json:"statementBalance" example:"812.4" multipleOf:"0.00000001"`                   // Balance of the last statement. Only for credit accounts.
	BillingDate      *time.Time         `json:"billingDate" example:"2025-05-20T00:00:00Z"`                                 // Date of the last statement. Only for credit accounts.
	DueDate          *time.Time         `json:"dueDate" example:"2025-06-10T00:00:00Z"`                                     // Payment due date. Only for credit accounts.
}

// model returns the database resource for the editable fields
func (editable AccountEditable) model() models.Account {
	account := models.Account{
		Name:             editable.Name,
		Description:      editable.Description,
		Kind:             editable.Type,
		OpeningBalance:   editable.OpeningBalance,
		LedgerGroup:      editable.Ledger,
		Notes:            editable.Notes,
		CreditLimit:      editable.CreditLimit,
		StatementBalance: editable.StatementBalance,
		BillingDate:      editable.BillingDate,
		DueDate:          editable.DueDate,
	}

	if editable.AsOfDate != nil {
		account.AsOfDate = *editable.AsOfDate
	}

	return account
}

func accountEditable(model models.Account) AccountEditable {
	asOf := model.AsOfDate

	return AccountEditable{
		Name:             model.Name,
		Description:      model.Description,
		Type:             model.Kind,
		OpeningBalance:   model.OpeningBalance,
		AsOfDate:         &asOf,
		Ledger:           model.LedgerGroup,
		Notes:            model.Notes,
		CreditLimit:      model.CreditLimit,
		StatementBalance: model.StatementBalance,
		BillingDate:      model.BillingDate,
		DueDate:          model.DueDate,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                     // The account itself
	Balance      string `json:"balance" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/balance"`          // Balance of the account at a specific time
	Register     string `json:"register" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2/register"`        // Transactions of the account with running balances
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions filed under the account
}

// Account is the API v1 representation of an Account.
type Account struct {
	models.DefaultModel
	AccountEditable
	Balance         decimal.Decimal  `json:"balance" example:"734.2"`          // Balance of the account today
	AvailableCredit *decimal.Decimal `json:"availableCredit" example:"4265.8"` // Credit limit minus balance. Only for credit accounts with a limit.
	Links           AccountLinks     `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) (Account, error) {
	url := c.GetString(string(models.DBContextURL))

	balance, _, err := service().Balance(model.ID, now())
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel:    model.DefaultModel,
		AccountEditable: accountEditable(model),
		Balance:         balance.Balance,
		AvailableCredit: balance.AvailableCredit,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Balance:      fmt.Sprintf("%s/v1/accounts/%s/balance", url, model.ID),
			Register:     fmt.Sprintf("%s/v1/accounts/%s/register", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AccountResponse `json:"data"`                                                          // List of created accounts
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	Name        string `form:"name" filterField:"false"`        // Fuzzy filter for the account name
	Description string `form:"description" filterField:"false"` // Fuzzy filter for the description
	Kind        string `form:"type"`                            // By account type
	Ledger      string `form:"ledger" filterField:"false"`      // By ledger group
	Search      string `form:"search" filterField:"false"`      // By string in name or description
	Offset      uint   `form:"offset" filterField:"false"`      // The offset of the first Account returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`       // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() (models.Account, error) {
	if f.Kind == "" {
		return models.Account{}, nil
	}

	kind, err := ledger.ParseAccountKind(f.Kind)
	if err != nil {
		return models.Account{}, err
	}

	return models.Account{Kind: kind}, nil
}

type AccountBalance struct {
	ID              uuid.UUID        `json:"id" example:"95018a69-758b-46c6-8bab-db70d9614f9d"` // ID of the account
	Time            time.Time        `json:"time" example:"2025-05-31T00:00:00Z"`               // The balance includes all transactions up to the end of this day
	Balance         decimal.Decimal  `json:"balance" example:"2735.17"`                         // Balance of the account
	AvailableCredit *decimal.Decimal `json:"availableCredit" example:"2264.83"`                 // Credit limit minus balance. Only for credit accounts with a limit.
}

type AccountBalanceResponse struct {
	Data  *AccountBalance `json:"data"`                                                          // Balance of the account
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RegisterEntry struct {
	Transaction ReportTransaction `json:"transaction"`               // The transaction
	Balance     decimal.Decimal   `json:"balance" example:"1150.25"` // Balance of the account immediately after the transaction
}

type RegisterQuery struct {
	Transaction string `form:"transaction"` // Only return the entry of this transaction
}

type AccountRegisterResponse struct {
	Data  []RegisterEntry `json:"data"`                                                          // Transactions in ascending order with running balances
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
