package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/shopspring/decimal"
)

type BudgetEditable struct {
	ParentCategory  string             `json:"parentCategory" example:"Food" default:""`                                               // Category of the budget
	SubCategory     string             `json:"subCategory" example:"Groceries" default:""`                                             // Subcategory. Empty for the category level budget.
	Description     string             `json:"description" example:"Weekly groceries" default:""`                                      // Description
	Type            ledger.BudgetType  `json:"type" example:"Expense" enums:"Expense,Income" default:"Expense"`                        // Expense budgets count expenses, income budgets count income
	AllocatedAmount decimal.Decimal    `json:"allocatedAmount" example:"400" default:"0" multipleOf:"0.00000001"`                      // Allocation per cycle. Derived from the subcategories for category level budgets.
	Ledger          string             `json:"ledger" example:"Personal" default:""`                                                   // Ledger group. Budgets without a ledger group count transactions of all groups.
	Cycle           ledger.BudgetCycle `json:"cycle" example:"Monthly" default:"Monthly"`                                              // Budget cycle
	StartDate       *time.Time         `json:"startDate" example:"2025-01-01T00:00:00Z"`                                               // Start of the first cycle. Defaults to the start of the calendar period.
}

// model returns the database resource for the editable fields
func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		ParentCategory:  editable.ParentCategory,
		SubCategory:     editable.SubCategory,
		Description:     editable.Description,
		Type:            editable.Type,
		AllocatedAmount: editable.AllocatedAmount,
		LedgerGroup:     editable.Ledger,
		Cycle:           editable.Cycle,
		StartDate:       editable.StartDate,
	}
}

func budgetEditable(model models.Budget) BudgetEditable {
	return BudgetEditable{
		ParentCategory:  model.ParentCategory,
		SubCategory:     model.SubCategory,
		Description:     model.Description,
		Type:            model.Type,
		AllocatedAmount: model.AllocatedAmount,
		Ledger:          model.LedgerGroup,
		Cycle:           model.Cycle,
		StartDate:       model.StartDate,
	}
}

type BudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The budget itself
}

// Budget is the API v1 representation of a Budget.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	SpentAmount decimal.Decimal `json:"spentAmount" example:"123.45"` // Amount spent in the current cycle
	Links       BudgetLinks     `json:"links"`
}

// newBudget returns the API representation of a budget. The spent amount
// is computed from txs for the cycle containing now.
func newBudget(c *gin.Context, model models.Budget, txs []ledger.Transaction, now time.Time) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel:   model.DefaultModel,
		BudgetEditable: budgetEditable(model),
		SpentAmount:    ledger.BudgetSpent(model.LedgerBudget(), txs, now),
		Links: BudgetLinks{
			Self: fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                          // List of created budgets
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	ParentCategory string `form:"category" filterField:"false"`    // By parent category, ignoring case
	SubCategory    string `form:"subCategory" filterField:"false"` // By subcategory, ignoring case
	Type           string `form:"type"`                            // By budget type
	Ledger         string `form:"ledger" filterField:"false"`      // By ledger group
	Time           string `form:"time" filterField:"false"`        // Reference time for the spent amount. Defaults to now.
	Offset         uint   `form:"offset" filterField:"false"`      // The offset of the first Budget returned. Defaults to 0.
	Limit          int    `form:"limit" filterField:"false"`       // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() (models.Budget, error) {
	if f.Type == "" {
		return models.Budget{}, nil
	}

	kind, err := ledger.ParseBudgetType(f.Type)
	if err != nil {
		return models.Budget{}, err
	}

	return models.Budget{Type: kind}, nil
}
