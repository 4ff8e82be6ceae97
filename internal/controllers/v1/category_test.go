package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/ledgerbook/backend/internal/controllers/v1"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/ledgerbook/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestCategory(t *testing.T, c v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	if c.Ledger == "" {
		c.Ledger = "Personal"
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{c})
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.CategoryResponse{}
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Ledger: "Personal"})
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Ledger: "personal"}, http.StatusBadRequest)
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Ledger: "Business"})
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Travel", Ledger: "All"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoriesList() {
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Ledger: "Personal"})
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Bills", Ledger: "Personal"})
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Office supplies", Ledger: "Business"})

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"All", "", []string{"Bills", "Food", "Office supplies"}},
		{"Ledger", "ledger=PERSONAL", []string{"Bills", "Food"}},
		{"Name", "name=o", []string{"Food", "Office supplies"}},
		{"Limit", "limit=1", []string{"Bills"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0)
			for _, c := range response.Data {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesSpent() {
	a := createTestAccount(suite.T(), v1.AccountEditable{Ledger: "Personal"})
	b := createTestAccount(suite.T(), v1.AccountEditable{Ledger: "Business"})
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Ledger: "Personal"})

	r := test.Request(suite.T(), http.MethodPost, food.Data.Links.Subcategories, []v1.SubcategoryEditable{{Name: "Groceries"}, {Name: "Dining"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, ParentCategory: "Food", SubCategory: "Groceries", Amount: decimalFromString("50"), Date: date(2025, 1, 10)})
	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.Data.ID, ParentCategory: "Food", SubCategory: "Dining", Amount: decimalFromString("20"), Date: date(2025, 5, 12)})
	createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: b.Data.ID, ParentCategory: "Food", Amount: decimalFromString("15")})

	r = test.Request(suite.T(), http.MethodGet, food.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var category v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &category)
	suite.Assert().True(category.Data.SpentAmount.Equal(decimalFromString("70")), "Spent amount is %s", category.Data.SpentAmount)

	r = test.Request(suite.T(), http.MethodGet, food.Data.Links.Subcategories, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var subcategories v1.SubcategoryListResponse
	test.DecodeResponse(suite.T(), &r, &subcategories)
	suite.Require().Len(subcategories.Data, 2)
	suite.Assert().Equal("Dining", subcategories.Data[0].Name)
	suite.Assert().Equal(food.Data.ID, subcategories.Data[0].CategoryID)
	suite.Assert().True(subcategories.Data[0].SpentAmount.Equal(decimalFromString("20")), "Spent amount is %s", subcategories.Data[0].SpentAmount)
	suite.Assert().True(subcategories.Data[1].SpentAmount.Equal(decimalFromString("50")), "Spent amount is %s", subcategories.Data[1].SpentAmount)
}

func (suite *TestSuiteStandard) TestCategoriesSubcategoriesInvalid() {
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})

	r := test.Request(suite.T(), http.MethodPost, food.Data.Links.Subcategories, []v1.SubcategoryEditable{{Name: "Groceries"}, {Name: " "}, {Name: "Groceries"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.SubcategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 3)
	suite.Assert().NotNil(response.Data[0].Data)
	suite.Assert().Equal(models.ErrSubcategoryNameEmpty.Error(), *response.Data[1].Error)
	suite.Assert().Equal(models.ErrSubcategoryNameNotUnique.Error(), *response.Data[2].Error)

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/categories/%s/subcategories", uuid.New()), []v1.SubcategoryEditable{{Name: "Groceries"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})

	r := test.Request(suite.T(), http.MethodPost, food.Data.Links.Subcategories, []v1.SubcategoryEditable{{Name: "Groceries"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, food.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, food.Data.Links.Subcategories, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The name can be used again
	createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food"})
}

func (suite *TestSuiteStandard) TestCategoriesGetSingle() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		path   string
		status int
		method string
	}{
		{"GET Existing Category", c.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Category with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"GET Subcategories Invalid ID", "notaUUID/subcategories", http.StatusBadRequest, http.MethodGet},
		{"PATCH not allowed", c.Data.ID.String(), http.StatusMethodNotAllowed, http.MethodPatch},
		{"DELETE No Category with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/categories/%s", tt.path), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	suite.CloseDB()

	createTestCategory(suite.T(), v1.CategoryEditable{}, http.StatusInternalServerError)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}
