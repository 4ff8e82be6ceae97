// Package ledger computes balances, aggregates and month trends for
// accounts, transactions and budgets.
//
// All functions in this package are pure. They operate on snapshots that
// callers obtain from a Store and never retain or mutate their input.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownAccountKind     = errors.New("unknown account type")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrUnknownBudgetType      = errors.New("unknown budget type")
	ErrUnknownBudgetCycle     = errors.New("unknown budget cycle")
	ErrUnknownGroupMode       = errors.New("unknown grouping mode")
)

// AccountKind is the type of an account.
//
// Only Credit changes the sign semantics of transactions, all other
// kinds are debit-like.
type AccountKind string

const (
	KindDebit       AccountKind = "Debit"
	KindCredit      AccountKind = "Credit"
	KindSavings     AccountKind = "Savings"
	KindInvestments AccountKind = "Investments"
	KindCash        AccountKind = "Cash"
)

var accountKinds = []AccountKind{KindDebit, KindCredit, KindSavings, KindInvestments, KindCash}

// AccountKinds returns all known account kinds.
func AccountKinds() []AccountKind {
	return append([]AccountKind(nil), accountKinds...)
}

// ParseAccountKind parses an account kind, ignoring case and surrounding whitespace.
func ParseAccountKind(s string) (AccountKind, error) {
	for _, k := range accountKinds {
		if strings.EqualFold(strings.TrimSpace(s), string(k)) {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownAccountKind, s)
}

// CreditLike reports whether the balance of the account represents debt.
func (k AccountKind) CreditLike() bool {
	return k == KindCredit
}

// TransactionType is the variant of a transaction.
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// ParseTransactionType parses a transaction type, ignoring case and surrounding whitespace.
func ParseTransactionType(s string) (TransactionType, error) {
	for _, t := range []TransactionType{TypeExpense, TypeIncome, TypeTransfer} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
}

type BudgetType string

const (
	BudgetExpense BudgetType = "Expense"
	BudgetIncome  BudgetType = "Income"
)

func ParseBudgetType(s string) (BudgetType, error) {
	for _, t := range []BudgetType{BudgetExpense, BudgetIncome} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBudgetType, s)
}

// BudgetCycle is the period a budget allocation applies to.
type BudgetCycle string

const (
	CycleMonthly      BudgetCycle = "Monthly"
	CycleEvery2Months BudgetCycle = "Every 2 months"
	CycleEvery3Months BudgetCycle = "Every 3 months"
	CycleEvery4Months BudgetCycle = "Every 4 months"
	CycleEvery6Months BudgetCycle = "Every 6 months"
	CycleYearly       BudgetCycle = "Yearly"
	CycleWeekly       BudgetCycle = "Weekly"
	CycleEvery2Weeks  BudgetCycle = "Every 2 weeks"
	CycleEvery4Weeks  BudgetCycle = "Every 4 weeks"
	CycleDaily        BudgetCycle = "Daily"
	CycleSemimonthly  BudgetCycle = "Semimonthly"
)

var budgetCycles = []BudgetCycle{
	CycleMonthly,
	CycleEvery2Months,
	CycleEvery3Months,
	CycleEvery4Months,
	CycleEvery6Months,
	CycleYearly,
	CycleWeekly,
	CycleEvery2Weeks,
	CycleEvery4Weeks,
	CycleDaily,
	CycleSemimonthly,
}

// BudgetCycles returns all budget cycles in the order they are offered to users.
func BudgetCycles() []BudgetCycle {
	return append([]BudgetCycle(nil), budgetCycles...)
}

// ParseBudgetCycle parses a budget cycle, ignoring case and surrounding whitespace.
func ParseBudgetCycle(s string) (BudgetCycle, error) {
	for _, c := range budgetCycles {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBudgetCycle, s)
}

type Account struct {
	ID             uuid.UUID
	Name           string
	Description    string
	Kind           AccountKind
	OpeningBalance decimal.Decimal
	AsOfDate       time.Time
	LedgerGroup    string
	Notes          string

	// Only set for credit accounts
	CreditLimit      *decimal.Decimal
	StatementBalance *decimal.Decimal
	BillingDate      *time.Time
	DueDate          *time.Time
}

// Transaction is a single record filed under an account.
//
// A transfer is stored as two records, one filed under each account,
// that share FromAccountID and ToAccountID.
type Transaction struct {
	ID               uuid.UUID
	ParentCategory   string
	SubCategory      string
	Description      string
	Payee            string
	Notes            string
	Date             time.Time
	Amount           decimal.Decimal
	AccountID        uuid.UUID
	Type             TransactionType
	IsOpeningBalance bool
	LedgerGroup      string
	FromAccountID    *uuid.UUID
	ToAccountID      *uuid.UUID
}

type Budget struct {
	ID              uuid.UUID
	ParentCategory  string
	SubCategory     string // empty for the category level row
	Description     string
	Type            BudgetType
	AllocatedAmount decimal.Decimal
	SpentAmount     decimal.Decimal // derived
	LedgerGroup     string
	Cycle           BudgetCycle
	StartDate       *time.Time
}
