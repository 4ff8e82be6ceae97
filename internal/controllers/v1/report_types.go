package v1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/shopspring/decimal"
)

type ReportTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/9a1b8b7e-4f77-4b36-b5d0-87c2c7f2b6a1"` // The transaction itself
}

// ReportTransaction is the read-only representation of a transaction
// in computed results.
type ReportTransaction struct {
	ID               uuid.UUID              `json:"id" example:"9a1b8b7e-4f77-4b36-b5d0-87c2c7f2b6a1"`
	AccountID        uuid.UUID              `json:"accountId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Type             ledger.TransactionType `json:"type" example:"expense"`
	ParentCategory   string                 `json:"parentCategory" example:"Bills"`
	SubCategory      string                 `json:"subCategory" example:"Electricity"`
	Description      string                 `json:"description" example:"Power bill May"`
	Payee            string                 `json:"payee" example:"City Power"`
	Date             time.Time              `json:"date" example:"2025-05-12T00:00:00Z"`
	Amount           decimal.Decimal        `json:"amount" example:"-84.2"`
	Ledger           string                 `json:"ledger" example:"Personal"`
	IsOpeningBalance bool                   `json:"isOpeningBalance" example:"false"`
	Links            ReportTransactionLinks `json:"links"`
}

func newReportTransaction(c *gin.Context, t ledger.Transaction) ReportTransaction {
	url := c.GetString(string(models.DBContextURL))

	return ReportTransaction{
		ID:               t.ID,
		AccountID:        t.AccountID,
		Type:             t.Type,
		ParentCategory:   t.ParentCategory,
		SubCategory:      t.SubCategory,
		Description:      t.Description,
		Payee:            t.Payee,
		Date:             t.Date,
		Amount:           t.Amount,
		Ledger:           t.LedgerGroup,
		IsOpeningBalance: t.IsOpeningBalance,
		Links: ReportTransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, t.ID),
		},
	}
}

// Summary is the dashboard of a ledger group.
type Summary struct {
	Ledger               string          `json:"ledger" example:"Personal"`            // Ledger group, "All" for all groups
	Time                 time.Time       `json:"time" example:"2025-05-31T00:00:00Z"` // Reference time
	TotalAssets          decimal.Decimal `json:"totalAssets" example:"12000"`          // Sum of the balances of all asset accounts
	TotalLiabilities     decimal.Decimal `json:"totalLiabilities" example:"850"`       // Sum of the balances of all liability accounts
	NetWorth             decimal.Decimal `json:"netWorth" example:"11150"`             // Assets minus liabilities
	TotalAllocatedBudget decimal.Decimal `json:"totalAllocatedBudget" example:"1500"`  // Sum of all expense budget allocations
	SpentThisMonth       decimal.Decimal `json:"spentThisMonth" example:"640"`         // Expenses of the current month
	SpentPercentage      decimal.Decimal `json:"spentPercentage" example:"0.4267"`     // Spent this month as a fraction of the allocated budget, at most 1
	RemainingBudget      decimal.Decimal `json:"remainingBudget" example:"860"`        // Allocated budget minus spent this month
	MonthIncome          decimal.Decimal `json:"monthIncome" example:"3200"`           // Income of the current month
	MonthExpense         decimal.Decimal `json:"monthExpense" example:"640"`           // Expenses of the current month
	MonthBills           decimal.Decimal `json:"monthBills" example:"210"`             // Bills of the current month
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`                                                               // Data for the summary
	Error *string  `json:"error" example:"the time parameter must be a date (YYYY-MM-DD)"` // The error, if any occurred
}

// MonthSummary is the income and expense sum of a calendar month.
type MonthSummary struct {
	Month   string          `json:"month" example:"2025-05"`  // Month as YYYY-MM
	Label   string          `json:"label" example:"May 2025"` // Human readable month
	Income  decimal.Decimal `json:"income" example:"3200"`    // Income of the month
	Expense decimal.Decimal `json:"expense" example:"2400"`   // Expenses of the month
	Balance decimal.Decimal `json:"balance" example:"800"`    // Income minus expenses
}

func newMonthSummaries(months []ledger.MonthSummary) []MonthSummary {
	data := make([]MonthSummary, 0, len(months))
	for _, m := range months {
		data = append(data, MonthSummary{
			Month:   m.Month.String(),
			Label:   m.Label,
			Income:  m.Income,
			Expense: m.Expense,
			Balance: m.Balance,
		})
	}

	return data
}

type MonthSummaryResponse struct {
	Data  []MonthSummary `json:"data"`                                                                // Months, ordered as requested
	Error *string        `json:"error" example:"the months parameter must be a number between 1 and 120"` // The error, if any occurred
}

// MonthQuery selects the ledger group, reference time and number of
// months of a trend or forecast.
type MonthQuery struct {
	QueryScope
	Months string `form:"months" example:"6"` // Number of months, defaults to 3
}

// months parses the number of months.
func (q MonthQuery) months() (int, error) {
	if q.Months == "" {
		return ledger.DefaultMonths, nil
	}

	n, err := strconv.Atoi(q.Months)
	if err != nil || n < 1 || n > 120 {
		return 0, errInvalidMonths
	}

	return n, nil
}

// Bills are the transactions of the current month that count as bills.
type Bills struct {
	Total decimal.Decimal     `json:"total" example:"210"` // Sum of the bill amounts
	Bills []ReportTransaction `json:"bills"`               // The bills, newest first
}

type BillsResponse struct {
	Data  *Bills  `json:"data"`                                                               // Data for the bills
	Error *string `json:"error" example:"the time parameter must be a date (YYYY-MM-DD)"` // The error, if any occurred
}
