package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/internal/models"
)

type LedgerEditable struct {
	Name     string `json:"name" example:"Personal" default:""` // Name of the ledger
	Position int    `json:"position" example:"1" default:"0"`  // Position of the ledger in lists
}

// model returns the database resource for the editable fields
func (editable LedgerEditable) model() models.Ledger {
	return models.Ledger{
		Name:     editable.Name,
		Position: editable.Position,
	}
}

type LedgerLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/ledgers/3b1ea324-d438-4419-882a-2fc91d71772f"` // The ledger itself
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts?ledger=Personal"`                 // Accounts of the ledger
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?ledger=Personal"`         // Transactions of the ledger
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets?ledger=Personal"`                   // Budgets of the ledger
	Summary      string `json:"summary" example:"https://example.com/api/v1/summary?ledger=Personal"`                   // Dashboard summary of the ledger
}

// Ledger is the API v1 representation of a Ledger.
type Ledger struct {
	models.DefaultModel
	LedgerEditable
	Links LedgerLinks `json:"links"`
}

func newLedger(c *gin.Context, model models.Ledger) Ledger {
	url := c.GetString(string(models.DBContextURL))

	return Ledger{
		DefaultModel: model.DefaultModel,
		LedgerEditable: LedgerEditable{
			Name:     model.Name,
			Position: model.Position,
		},
		Links: LedgerLinks{
			Self:         fmt.Sprintf("%s/v1/ledgers/%s", url, model.ID),
			Accounts:     fmt.Sprintf("%s/v1/accounts?ledger=%s", url, queryEscape(model.Name)),
			Transactions: fmt.Sprintf("%s/v1/transactions?ledger=%s", url, queryEscape(model.Name)),
			Budgets:      fmt.Sprintf("%s/v1/budgets?ledger=%s", url, queryEscape(model.Name)),
			Summary:      fmt.Sprintf("%s/v1/summary?ledger=%s", url, queryEscape(model.Name)),
		},
	}
}

type LedgerListResponse struct {
	Data  []Ledger `json:"data"`                                                          // List of ledgers
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LedgerCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []LedgerResponse `json:"data"`                                                          // List of created ledgers
}

func (l *LedgerCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	l.Data = append(l.Data, LedgerResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LedgerResponse struct {
	Data  *Ledger `json:"data"`                                                          // Data for the ledger
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
