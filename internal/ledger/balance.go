package ledger

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Contribution returns the signed change a transaction makes to the balance
// of an account.
//
// The stored sign of the amount is ignored, only its magnitude is used:
//
//	kind        expense  income  transfer out  transfer in
//	debit-like  -        +       -             +
//	credit      +        -       -             -
//
// An incoming transfer reduces the balance of a credit account, it is
// treated as a payment towards the debt.
//
// Transactions filed under a different account contribute zero.
func Contribution(account Account, t Transaction) decimal.Decimal {
	if t.AccountID != account.ID {
		return decimal.Zero
	}

	amount := t.Amount.Abs()
	credit := account.Kind.CreditLike()

	switch t.Type {
	case TypeExpense:
		if credit {
			return amount
		}
		return amount.Neg()

	case TypeIncome:
		if credit {
			return amount.Neg()
		}
		return amount

	case TypeTransfer:
		if t.FromAccountID != nil && *t.FromAccountID == account.ID {
			return amount.Neg()
		}

		if t.ToAccountID != nil && *t.ToAccountID == account.ID {
			if credit {
				return amount.Neg()
			}
			return amount
		}
	}

	return decimal.Zero
}

// BalanceAsOf returns the balance of the account including every transaction
// dated on or before the day of cutoff.
//
// Days are determined in the location of cutoff.
func BalanceAsOf(account Account, txs []Transaction, cutoff time.Time) decimal.Decimal {
	lastDay := types.StartOfDay(cutoff, cutoff.Location())

	balance := account.OpeningBalance
	for _, t := range Dedup(txs) {
		if types.StartOfDay(t.Date, cutoff.Location()).After(lastDay) {
			continue
		}
		balance = balance.Add(Contribution(account, t))
	}

	return balance
}

// RegisterEntry is a transaction with the balance of its account
// immediately after it.
type RegisterEntry struct {
	Transaction Transaction
	Balance     decimal.Decimal
}

// Register returns every transaction of the account in ascending order
// together with the running balance.
func Register(account Account, txs []Transaction) []RegisterEntry {
	sorted := sortAscending(txs)
	entries := make([]RegisterEntry, 0, len(sorted))

	balance := account.OpeningBalance
	for _, t := range sorted {
		if t.AccountID != account.ID {
			continue
		}

		balance = balance.Add(Contribution(account, t))
		entries = append(entries, RegisterEntry{Transaction: t, Balance: balance})
	}

	return entries
}

// RunningBalance returns the balance of the account immediately after the
// transaction with the given id.
//
// The second return value is false if the transaction is not part of txs.
func RunningBalance(account Account, txs []Transaction, id uuid.UUID) (decimal.Decimal, bool) {
	balance := account.OpeningBalance
	for _, t := range sortAscending(txs) {
		balance = balance.Add(Contribution(account, t))
		if t.ID == id {
			return balance, true
		}
	}

	return decimal.Zero, false
}

// AvailableCredit returns the credit limit minus the balance.
//
// It is only defined for credit accounts with a limit.
func AvailableCredit(account Account, balance decimal.Decimal) (decimal.Decimal, bool) {
	if !account.Kind.CreditLike() || account.CreditLimit == nil {
		return decimal.Zero, false
	}

	return account.CreditLimit.Sub(balance), true
}

// sortAscending returns the deduplicated transactions sorted by date,
// then id.
func sortAscending(txs []Transaction) []Transaction {
	sorted := Dedup(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})

	return sorted
}
