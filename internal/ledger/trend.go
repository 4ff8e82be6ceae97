package ledger

import (
	"time"

	"github.com/ledgerbook/backend/internal/types"
	"github.com/shopspring/decimal"
)

// DefaultMonths is the number of months in a trend or forecast.
const DefaultMonths = 3

// MonthSummary is the income and expense sum of one calendar month.
type MonthSummary struct {
	Month   types.Month
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Trend summarizes the month of now and the n-1 months before it, newest first.
//
// Transactions dated after the end of today are ignored.
func Trend(txs []Transaction, now time.Time, n int) []MonthSummary {
	cutoff := types.StartOfDay(now, now.Location()).AddDate(0, 0, 1)
	return months(txs, now, n, -1, &cutoff)
}

// Forecast summarizes the month of now and the n-1 months after it,
// including future-dated transactions.
func Forecast(txs []Transaction, now time.Time, n int) []MonthSummary {
	return months(txs, now, n, 1, nil)
}

func months(txs []Transaction, now time.Time, n, step int, cutoff *time.Time) []MonthSummary {
	if n <= 0 {
		n = DefaultMonths
	}

	txs = Dedup(txs)
	current := types.MonthOf(now)

	out := make([]MonthSummary, 0, n)
	for i := 0; i < n; i++ {
		month := current.AddDate(0, i*step)
		s := MonthSummary{
			Month: month,
			Label: month.Label(),
		}

		for _, t := range txs {
			if t.IsOpeningBalance || !month.Contains(t.Date) {
				continue
			}

			if cutoff != nil && !t.Date.Before(*cutoff) {
				continue
			}

			switch t.Type {
			case TypeIncome:
				s.Income = s.Income.Add(t.Amount)
			case TypeExpense:
				s.Expense = s.Expense.Add(t.Amount.Abs())
			}
		}

		s.Balance = s.Income.Sub(s.Expense)
		out = append(out, s)
	}

	return out
}
