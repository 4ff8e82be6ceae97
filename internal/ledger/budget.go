package ledger

import (
	"time"

	"github.com/ledgerbook/backend/internal/types"
	"github.com/shopspring/decimal"
)

// CycleWindow returns the half-open window [from, to) of the budget cycle
// that contains now.
//
// Weeks start on Monday. Cycles spanning several weeks or months are
// anchored at start. Without a start date, multi-week cycles are anchored
// at the current week and multi-month cycles at January of the current year.
func CycleWindow(cycle BudgetCycle, start *time.Time, now time.Time) (from, to time.Time) {
	loc := now.Location()
	today := types.StartOfDay(now, loc)
	month := types.MonthOf(today)

	switch cycle {
	case CycleDaily:
		return today, today.AddDate(0, 0, 1)

	case CycleWeekly:
		from = weekStart(today)
		return from, from.AddDate(0, 0, 7)

	case CycleEvery2Weeks, CycleEvery4Weeks:
		period := 14
		if cycle == CycleEvery4Weeks {
			period = 28
		}

		anchor := weekStart(today)
		if start != nil {
			anchor = types.StartOfDay(*start, loc)
		}

		k := floorDiv(dayNumber(today)-dayNumber(anchor), period)
		from = anchor.AddDate(0, 0, k*period)
		return from, from.AddDate(0, 0, period)

	case CycleSemimonthly:
		middle := month.Start().AddDate(0, 0, 15)
		if today.Before(middle) {
			return month.Start(), middle
		}
		return middle, month.End()

	case CycleEvery2Months, CycleEvery3Months, CycleEvery4Months, CycleEvery6Months:
		n := map[BudgetCycle]int{
			CycleEvery2Months: 2,
			CycleEvery3Months: 3,
			CycleEvery4Months: 4,
			CycleEvery6Months: 6,
		}[cycle]

		anchor := types.NewMonth(today.Year(), time.January, loc)
		if start != nil {
			anchor = types.MonthOf(start.In(loc))
		}

		k := floorDiv(monthNumber(month)-monthNumber(anchor), n)
		first := anchor.AddDate(0, k*n)
		return first.Start(), first.AddDate(0, n).Start()

	case CycleYearly:
		first := types.NewMonth(today.Year(), time.January, loc)
		return first.Start(), first.AddDate(1, 0).Start()
	}

	return month.Start(), month.End()
}

// BudgetSpent sums the transactions that count against the budget in the
// cycle window containing now.
//
// Expense budgets sum expenses, income budgets sum income. A budget without
// a subcategory counts every transaction of its category. A budget without
// a ledger group counts transactions of all groups.
func BudgetSpent(b Budget, txs []Transaction, now time.Time) decimal.Decimal {
	from, to := CycleWindow(b.Cycle, b.StartDate, now)

	want := TypeExpense
	if b.Type == BudgetIncome {
		want = TypeIncome
	}

	spent := decimal.Zero
	for _, t := range Dedup(txs) {
		if t.Type != want || t.IsOpeningBalance {
			continue
		}

		if b.LedgerGroup != "" && !SameGroup(b.LedgerGroup, t.LedgerGroup) {
			continue
		}

		if !inCategory(t, b.ParentCategory, b.SubCategory) {
			continue
		}

		if t.Date.Before(from) || !t.Date.Before(to) {
			continue
		}

		spent = spent.Add(t.Amount.Abs())
	}

	return spent
}

// WithSpent returns copies of the budgets with SpentAmount set for the cycle
// window containing now.
func WithSpent(budgets []Budget, txs []Transaction, now time.Time) []Budget {
	out := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		b.SpentAmount = BudgetSpent(b, txs, now)
		out = append(out, b)
	}

	return out
}

// CategorySpent sums the expenses of a category, or of one of its
// subcategories when sub is not empty.
func CategorySpent(txs []Transaction, parent, sub string) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range Dedup(txs) {
		if t.Type == TypeExpense && inCategory(t, parent, sub) {
			spent = spent.Add(t.Amount.Abs())
		}
	}

	return spent
}

// RollupAllocation sums the allocations of all subcategory budgets of a
// category in exactly the given ledger group.
func RollupAllocation(budgets []Budget, parent, group string) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		if b.SubCategory == "" || NormalizeGroup(b.LedgerGroup) != NormalizeGroup(group) {
			continue
		}

		if NormalizeGroup(b.ParentCategory) == NormalizeGroup(parent) {
			total = total.Add(b.AllocatedAmount)
		}
	}

	return total
}

func inCategory(t Transaction, parent, sub string) bool {
	if NormalizeGroup(t.ParentCategory) != NormalizeGroup(parent) {
		return false
	}

	return sub == "" || NormalizeGroup(t.SubCategory) == NormalizeGroup(sub)
}

func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// dayNumber counts calendar days since the Unix epoch, ignoring the location offset.
func dayNumber(day time.Time) int {
	y, m, d := day.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func monthNumber(m types.Month) int {
	t := m.Start()
	return t.Year()*12 + int(t.Month()) - 1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
