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

type TransactionEditable struct {
	AccountID        uuid.UUID              `json:"accountId" example:"bd0a4a79-2b0f-4f86-9b7d-0c1d1a4ac2a8"`                  // ID of the account the transaction is filed under
	Type             ledger.TransactionType `json:"type" example:"expense" enums:"expense,income" default:"expense"`           // Type of the transaction
	ParentCategory   string                 `json:"parentCategory" example:"Food" default:""`                                  // Category
	SubCategory      string                 `json:"subCategory" example:"Groceries" default:""`                                // Subcategory
	Description      string                 `json:"description" example:"Weekly shopping" default:""`                          // Description
	Payee            string                 `json:"payee" example:"Corner store" default:""`                                   // Payee
	Notes            string                 `json:"notes" example:"Paid with card" default:""`                                 // Notes
	Date             time.Time              `json:"date" example:"2025-05-10T12:00:00Z"`                                       // Date of the transaction. Defaults to now.
	Amount           decimal.Decimal        `json:"amount" example:"42.17" minimum:"0.00000001" multipleOf:"0.00000001"`       // Amount. The sign is derived from the type.
	IsOpeningBalance bool                   `json:"isOpeningBalance" example:"false" default:"false"`                          // Marks the transaction that records the opening balance. Excluded from reports.
}

// model returns the database resource for the editable fields
func (editable TransactionEditable) model() models.Transaction {
	kind := editable.Type
	if kind == "" {
		kind = ledger.TypeExpense
	}

	return models.Transaction{
		AccountID:        editable.AccountID,
		Type:             kind,
		ParentCategory:   editable.ParentCategory,
		SubCategory:      editable.SubCategory,
		Description:      editable.Description,
		Payee:            editable.Payee,
		Notes:            editable.Notes,
		Date:             editable.Date,
		Amount:           editable.Amount,
		IsOpeningBalance: editable.IsOpeningBalance,
	}
}

// validate rejects transfers, they are created with the transfers endpoint.
func (editable TransactionEditable) validate() error {
	if editable.Type == "" {
		return nil
	}

	kind, err := ledger.ParseTransactionType(string(editable.Type))
	if err != nil {
		return err
	}

	if kind == ledger.TypeTransfer {
		return errTransactionTypeInvalid
	}

	return nil
}

func transactionEditable(model models.Transaction) TransactionEditable {
	return TransactionEditable{
		AccountID:        model.AccountID,
		Type:             model.Type,
		ParentCategory:   model.ParentCategory,
		SubCategory:      model.SubCategory,
		Description:      model.Description,
		Payee:            model.Payee,
		Notes:            model.Notes,
		Date:             model.Date,
		Amount:           model.Amount,
		IsOpeningBalance: model.IsOpeningBalance,
	}
}

type TransactionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/bd0a4a79-2b0f-4f86-9b7d-0c1d1a4ac2a8"`  // The account the transaction is filed under
}

// Transaction is the API v1 representation of a Transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Ledger        string           `json:"ledger" example:"Personal"`                                    // Ledger group, always the group of the account
	FromAccountID *uuid.UUID       `json:"fromAccountId" example:"bd0a4a79-2b0f-4f86-9b7d-0c1d1a4ac2a8"` // Source account. Only for transfers.
	ToAccountID   *uuid.UUID       `json:"toAccountId" example:"f1c8e7a0-3c4e-4f0a-9d53-0a4c2c5f6b11"`   // Destination account. Only for transfers.
	TransferID    *uuid.UUID       `json:"transferId" example:"5c0f1b7e-8a9d-4c1e-a2f3-6b7d8e9f0a1b"`    // Shared by both legs of a transfer
	Links         TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel:        model.DefaultModel,
		TransactionEditable: transactionEditable(model),
		Ledger:              model.LedgerGroup,
		FromAccountID:       model.FromAccountID,
		ToAccountID:         model.ToAccountID,
		TransferID:          model.TransferID,
		Links: TransactionLinks{
			Self:    fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	AccountID      string `form:"account"`   // By ID of the account the transaction is filed under
	Type           string `form:"type"`      // By type
	ParentCategory string `form:"category"`  // By parent category, ignoring case
	Ledger         string `form:"ledger"`    // By ledger group
	FromDate       string `form:"fromDate"`  // Transactions at and after this date
	UntilDate      string `form:"untilDate"` // Transactions before the end of this day
	Search         string `form:"search"`    // Glob for description and payee, e.g. "*coffee*". Plain text matches anywhere.
	Offset         uint   `form:"offset"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit          int    `form:"limit"`     // Maximum number of Transactions to return. Defaults to 50.
}

type TransactionBucket struct {
	Date         time.Time           `json:"date" example:"2025-05-10T00:00:00Z"` // Start of the day or month
	Label        string              `json:"label" example:"Sat, May 10"`         // Display label
	Transactions []ReportTransaction `json:"transactions"`                        // Transactions in the bucket, newest first
}

type TransactionGroupedResponse struct {
	Data  []TransactionBucket `json:"data"`                                                          // Buckets, newest first
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransferEditable struct {
	FromAccountID  uuid.UUID       `json:"fromAccountId" example:"bd0a4a79-2b0f-4f86-9b7d-0c1d1a4ac2a8"`      // Account the money is sent from
	ToAccountID    uuid.UUID       `json:"toAccountId" example:"f1c8e7a0-3c4e-4f0a-9d53-0a4c2c5f6b11"`        // Account the money is sent to
	Amount         decimal.Decimal `json:"amount" example:"250" minimum:"0.00000001" multipleOf:"0.00000001"` // Amount of the transfer
	Date           *time.Time      `json:"date" example:"2025-05-10T12:00:00Z"`                               // Date of the transfer. Defaults to now.
	Description    string          `json:"description" example:"Monthly saving" default:""`                   // Description
	Notes          string          `json:"notes" example:"" default:""`                                       // Notes
	ParentCategory string          `json:"parentCategory" example:"Savings" default:""`                       // Category
	SubCategory    string          `json:"subCategory" example:"" default:""`                                 // Subcategory
}

func (editable TransferEditable) model() models.Transfer {
	transfer := models.Transfer{
		FromAccountID:  editable.FromAccountID,
		ToAccountID:    editable.ToAccountID,
		Amount:         editable.Amount,
		Description:    editable.Description,
		Notes:          editable.Notes,
		ParentCategory: editable.ParentCategory,
		SubCategory:    editable.SubCategory,
	}

	if editable.Date != nil {
		transfer.Date = *editable.Date
	}

	return transfer
}

type TransferResponse struct {
	Data  []Transaction `json:"data"`                                                          // The outgoing and the incoming leg of the transfer
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
