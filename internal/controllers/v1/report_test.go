package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/ledgerbook/backend/internal/controllers/v1"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createReportFixtures creates two ledgers with accounts, transactions
// and budgets.
func createReportFixtures(t *testing.T) {
	limit := decimalFromString("5000")

	checking := createTestAccount(t, v1.AccountEditable{Name: "Checking", Ledger: "Personal", OpeningBalance: decimalFromString("1000")})
	visa := createTestAccount(t, v1.AccountEditable{Name: "Visa", Type: ledger.KindCredit, Ledger: "Personal", CreditLimit: &limit})
	business := createTestAccount(t, v1.AccountEditable{Name: "Business", Ledger: "Business", OpeningBalance: decimalFromString("500")})

	createTestTransaction(t, v1.TransactionEditable{AccountID: checking.Data.ID, Type: ledger.TypeIncome, ParentCategory: "Salary", Amount: decimalFromString("3000"), Date: date(2025, 5, 1)})
	createTestTransaction(t, v1.TransactionEditable{AccountID: checking.Data.ID, ParentCategory: "Bills", SubCategory: "Electricity", Description: "Power", Amount: decimalFromString("100"), Date: date(2025, 5, 5)})
	createTestTransaction(t, v1.TransactionEditable{AccountID: visa.Data.ID, ParentCategory: "Food", SubCategory: "Groceries", Amount: decimalFromString("200"), Date: date(2025, 5, 10)})
	createTestTransaction(t, v1.TransactionEditable{AccountID: checking.Data.ID, ParentCategory: "Food", Amount: decimalFromString("50"), Date: date(2025, 4, 15)})
	createTestTransaction(t, v1.TransactionEditable{AccountID: checking.Data.ID, ParentCategory: "Insurance", Amount: decimalFromString("75"), Date: date(2025, 6, 3)})
	createTestTransaction(t, v1.TransactionEditable{AccountID: checking.Data.ID, Type: ledger.TypeIncome, Description: "Opening balance", Amount: decimalFromString("999"), Date: date(2025, 5, 2), IsOpeningBalance: true})
	createTestTransaction(t, v1.TransactionEditable{AccountID: business.Data.ID, ParentCategory: "Utility bills", Amount: decimalFromString("40"), Date: date(2025, 5, 6)})

	createTestBudget(t, v1.BudgetEditable{ParentCategory: "Food", SubCategory: "Groceries", Ledger: "Personal", AllocatedAmount: decimalFromString("300")})
	createTestBudget(t, v1.BudgetEditable{ParentCategory: "Bills", Ledger: "Personal", AllocatedAmount: decimalFromString("200")})
}

func (suite *TestSuiteStandard) TestReportsSummary() {
	createReportFixtures(suite.T())

	tests := []struct {
		query    string
		expected map[string]string
	}{
		{
			"ledger=Personal&time=2025-05-20",
			map[string]string{
				"totalAssets":          "4849",
				"totalLiabilities":     "200",
				"netWorth":             "4649",
				"totalAllocatedBudget": "800",
				"spentThisMonth":       "300",
				"spentPercentage":      "0.375",
				"remainingBudget":      "500",
				"monthIncome":          "3000",
				"monthExpense":         "300",
				"monthBills":           "100",
			},
		},
		{
			"time=2025-05-20",
			map[string]string{
				"totalAssets":  "5309",
				"netWorth":     "5109",
				"monthExpense": "340",
				"monthBills":   "140",
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/summary?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SummaryResponse
			test.DecodeResponse(t, &r, &response)

			values := map[string]decimal.Decimal{
				"totalAssets":          response.Data.TotalAssets,
				"totalLiabilities":     response.Data.TotalLiabilities,
				"netWorth":             response.Data.NetWorth,
				"totalAllocatedBudget": response.Data.TotalAllocatedBudget,
				"spentThisMonth":       response.Data.SpentThisMonth,
				"spentPercentage":      response.Data.SpentPercentage,
				"remainingBudget":      response.Data.RemainingBudget,
				"monthIncome":          response.Data.MonthIncome,
				"monthExpense":         response.Data.MonthExpense,
				"monthBills":           response.Data.MonthBills,
			}

			for key, expected := range tt.expected {
				assert.True(t, values[key].Equal(decimalFromString(expected)), "%s is %s, expected %s", key, values[key], expected)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestReportsSummaryDefaults() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(ledger.AllGroups, response.Data.Ledger)
	suite.Assert().True(response.Data.NetWorth.IsZero())
	suite.Assert().True(response.Data.SpentPercentage.IsZero())
}

func (suite *TestSuiteStandard) TestReportsTrend() {
	createReportFixtures(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/trend?ledger=Personal&time=2025-05-20&months=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthSummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("2025-05", response.Data[0].Month)
	suite.Assert().Equal("May 2025", response.Data[0].Label)
	suite.Assert().True(response.Data[0].Income.Equal(decimalFromString("3000")), "Income is %s", response.Data[0].Income)
	suite.Assert().True(response.Data[0].Expense.Equal(decimalFromString("300")), "Expense is %s", response.Data[0].Expense)
	suite.Assert().True(response.Data[0].Balance.Equal(decimalFromString("2700")), "Balance is %s", response.Data[0].Balance)

	suite.Assert().Equal("2025-04", response.Data[1].Month)
	suite.Assert().True(response.Data[1].Expense.Equal(decimalFromString("50")), "Expense is %s", response.Data[1].Expense)
	suite.Assert().True(response.Data[1].Balance.Equal(decimalFromString("-50")), "Balance is %s", response.Data[1].Balance)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/trend?time=2025-05-20", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, ledger.DefaultMonths)
}

func (suite *TestSuiteStandard) TestReportsForecast() {
	createReportFixtures(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/forecast?ledger=Personal&time=2025-05-20&months=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthSummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("2025-05", response.Data[0].Month)
	suite.Assert().Equal("2025-06", response.Data[1].Month)
	suite.Assert().Equal("Jun 2025", response.Data[1].Label)
	suite.Assert().True(response.Data[1].Expense.Equal(decimalFromString("75")), "Expense is %s", response.Data[1].Expense)
}

func (suite *TestSuiteStandard) TestReportsBills() {
	createReportFixtures(suite.T())

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills?time=2025-05-20", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BillsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data.Bills, 2)
	suite.Assert().Equal("Utility bills", response.Data.Bills[0].ParentCategory, "Bills must be sorted newest first")
	suite.Assert().Equal("Bills", response.Data.Bills[1].ParentCategory)
	suite.Assert().True(response.Data.Total.Equal(decimalFromString("140")), "Total is %s", response.Data.Total)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills?time=2025-05-20&ledger=personal", "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data.Bills, 1)
	suite.Assert().Equal("Power", response.Data.Bills[0].Description)
}

func (suite *TestSuiteStandard) TestReportsInvalidQuery() {
	tests := []string{
		"summary?time=someday",
		"trend?months=0",
		"trend?months=121",
		"forecast?months=three",
		"forecast?time=2025-02-30",
		"bills?time=20250520",
	}

	for _, path := range tests {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/%s", path), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestReportsDBClosed() {
	suite.CloseDB()

	for _, path := range []string{"summary", "trend", "forecast", "bills"} {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/%s", path), "")
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
