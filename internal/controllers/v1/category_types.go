package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/shopspring/decimal"
)

type CategoryEditable struct {
	Name   string `json:"name" example:"Food" default:""`       // Name of the category
	Ledger string `json:"ledger" example:"Personal" default:""` // Ledger group the category belongs to
}

// model returns the database resource for the editable fields
func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:        editable.Name,
		LedgerGroup: editable.Ledger,
	}
}

type CategoryLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                        // The category itself
	Subcategories string `json:"subcategories" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f/subcategories"` // Subcategories of the category
	Transactions  string `json:"transactions" example:"https://example.com/api/v1/transactions?category=Food&ledger=Personal"`                     // Transactions in the category
}

// Category is the API v1 representation of a Category.
type Category struct {
	models.DefaultModel
	CategoryEditable
	SpentAmount decimal.Decimal `json:"spentAmount" example:"512.3"` // Sum of all expenses in the category
	Links       CategoryLinks   `json:"links"`
}

// newCategory returns the API representation of a category. The spent
// amount is computed from the transactions in txs that belong to the
// ledger group of the category.
func newCategory(c *gin.Context, model models.Category, txs []ledger.Transaction) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:   model.Name,
			Ledger: model.LedgerGroup,
		},
		SpentAmount: ledger.CategorySpent(ledger.FilterGroup(txs, model.LedgerGroup), model.Name, ""),
		Links: CategoryLinks{
			Self:          fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Subcategories: fmt.Sprintf("%s/v1/categories/%s/subcategories", url, model.ID),
			Transactions:  fmt.Sprintf("%s/v1/transactions?category=%s&ledger=%s", url, queryEscape(model.Name), queryEscape(model.LedgerGroup)),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []CategoryResponse `json:"data"`                                                          // List of created categories
}

func (r *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // Fuzzy filter for the category name
	Ledger string `form:"ledger" filterField:"false"` // By ledger group
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

type SubcategoryEditable struct {
	Name string `json:"name" example:"Groceries" default:""` // Name of the subcategory
}

// Subcategory is the API v1 representation of a Subcategory.
type Subcategory struct {
	models.DefaultModel
	SubcategoryEditable
	CategoryID  uuid.UUID       `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the parent category
	SpentAmount decimal.Decimal `json:"spentAmount" example:"240.1"`                               // Sum of all expenses in the subcategory
}

func newSubcategory(model models.Subcategory, category models.Category, txs []ledger.Transaction) Subcategory {
	return Subcategory{
		DefaultModel:        model.DefaultModel,
		SubcategoryEditable: SubcategoryEditable{Name: model.Name},
		CategoryID:          model.CategoryID,
		SpentAmount:         ledger.CategorySpent(ledger.FilterGroup(txs, category.LedgerGroup), category.Name, model.Name),
	}
}

type SubcategoryListResponse struct {
	Data  []Subcategory `json:"data"`                                                          // Subcategories, sorted by name
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SubcategoryCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SubcategoryResponse `json:"data"`                                                          // List of created subcategories
}

func (r *SubcategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, SubcategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SubcategoryResponse struct {
	Data  *Subcategory `json:"data"`                                                          // Data for the subcategory
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
