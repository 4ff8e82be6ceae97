package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// DefaultBillsPattern matches the parent categories that count as bills.
const DefaultBillsPattern = "*bill*"

var one = decimal.NewFromInt(1)

// SummaryInput is the snapshot a Summary is computed from.
type SummaryInput struct {
	Group               string                      // Ledger group, or "All"
	Accounts            []Account                   // Accounts of any group
	AccountTransactions map[uuid.UUID][]Transaction // Transactions filed under each account
	Transactions        []Transaction               // Merged transactions of the group, may contain duplicates
	Budgets             []Budget                    // Budgets of any group
	Now                 time.Time                   // Reference time, its location defines days and months
}

type Summary struct {
	TotalAssets          decimal.Decimal
	TotalLiabilities     decimal.Decimal
	NetWorth             decimal.Decimal
	TotalAllocatedBudget decimal.Decimal
	SpentThisMonth       decimal.Decimal
	SpentPercentage      decimal.Decimal
	RemainingBudget      decimal.Decimal
}

// Summarize computes the net worth and budget utilization of a ledger group.
func Summarize(in SummaryInput) Summary {
	var s Summary

	for _, a := range in.Accounts {
		if !SameGroup(in.Group, a.LedgerGroup) {
			continue
		}

		balance := BalanceAsOf(a, in.AccountTransactions[a.ID], in.Now)
		if a.Kind.CreditLike() {
			s.TotalLiabilities = s.TotalLiabilities.Add(balance.Abs())
		} else {
			s.TotalAssets = s.TotalAssets.Add(balance)
		}
	}
	s.NetWorth = s.TotalAssets.Sub(s.TotalLiabilities)

	s.TotalAllocatedBudget = TotalAllocated(in.Budgets, in.Group)

	month := types.MonthOf(in.Now)
	for _, t := range Dedup(FilterGroup(in.Transactions, in.Group)) {
		if t.Type == TypeExpense && !t.IsOpeningBalance && month.Contains(t.Date) {
			s.SpentThisMonth = s.SpentThisMonth.Add(t.Amount.Abs())
		}
	}

	s.SpentPercentage = SpentPercentage(s.SpentThisMonth, s.TotalAllocatedBudget)
	s.RemainingBudget = decimal.Max(decimal.Zero, s.TotalAllocatedBudget.Sub(s.SpentThisMonth))

	return s
}

// SpentPercentage returns spent divided by total, capped at 1.
//
// It is 0 when total is not positive.
func SpentPercentage(spent, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}

	if spent.GreaterThanOrEqual(total) {
		return one
	}

	return spent.Div(total)
}

// TotalAllocated sums the allocations of every budget row in the group,
// category level rows included.
func TotalAllocated(budgets []Budget, group string) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		if SameGroup(group, b.LedgerGroup) {
			total = total.Add(b.AllocatedAmount)
		}
	}

	return total
}

// MonthTotals are the income and expense sums of a calendar month.
type MonthTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Bills   decimal.Decimal
}

// Totals sums income, expenses and bills of the month of now.
//
// Expenses are bills when their parent category matches billsPattern,
// a case insensitive glob.
func Totals(txs []Transaction, now time.Time, billsPattern string) MonthTotals {
	var totals MonthTotals
	month := types.MonthOf(now)

	for _, t := range Dedup(txs) {
		if t.IsOpeningBalance || !month.Contains(t.Date) {
			continue
		}

		switch t.Type {
		case TypeIncome:
			totals.Income = totals.Income.Add(t.Amount.Abs())
		case TypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount.Abs())
			if IsBill(t, billsPattern) {
				totals.Bills = totals.Bills.Add(t.Amount.Abs())
			}
		}
	}

	return totals
}

// IsBill reports whether the transaction is an expense in a bills category.
func IsBill(t Transaction, pattern string) bool {
	if t.Type != TypeExpense {
		return false
	}

	if pattern == "" {
		pattern = DefaultBillsPattern
	}

	return glob.Glob(strings.ToLower(pattern), strings.ToLower(t.ParentCategory))
}

// Bills returns the bills of the month of now, newest first.
func Bills(txs []Transaction, now time.Time, pattern string) []Transaction {
	month := types.MonthOf(now)

	bills := make([]Transaction, 0)
	for _, t := range Dedup(txs) {
		if !t.IsOpeningBalance && month.Contains(t.Date) && IsBill(t, pattern) {
			bills = append(bills, t)
		}
	}

	slices.SortStableFunc(bills, compareDescending)
	return bills
}
