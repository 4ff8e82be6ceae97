package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service reads snapshots from a Store and runs the engines on them.
//
// The only errors it returns are errors of the Store.
type Service struct {
	Store        Store
	BillsPattern string
}

func NewService(store Store, billsPattern string) Service {
	if billsPattern == "" {
		billsPattern = DefaultBillsPattern
	}

	return Service{
		Store:        store,
		BillsPattern: billsPattern,
	}
}

type AccountBalance struct {
	Account         Account
	Balance         decimal.Decimal
	AvailableCredit *decimal.Decimal // only for credit accounts with a limit
}

// Balance returns the balance of an account as of the day of asOf.
//
// The boolean is false when the account does not exist.
func (s Service) Balance(id uuid.UUID, asOf time.Time) (AccountBalance, bool, error) {
	account, ok, err := s.Store.Account(id)
	if err != nil || !ok {
		return AccountBalance{}, ok, err
	}

	txs, err := s.Store.AccountTransactions(id)
	if err != nil {
		return AccountBalance{}, false, err
	}

	b := AccountBalance{
		Account: account,
		Balance: BalanceAsOf(account, txs, asOf),
	}

	if available, ok := AvailableCredit(account, b.Balance); ok {
		b.AvailableCredit = &available
	}

	return b, true, nil
}

// Register returns the transactions of an account with running balances.
func (s Service) Register(id uuid.UUID) (Account, []RegisterEntry, bool, error) {
	account, ok, err := s.Store.Account(id)
	if err != nil || !ok {
		return Account{}, nil, ok, err
	}

	txs, err := s.Store.AccountTransactions(id)
	if err != nil {
		return Account{}, nil, false, err
	}

	return account, Register(account, txs), true, nil
}

// RunningBalance returns a single transaction of an account with the balance
// of the account immediately after it.
//
// The second return value is false if the account does not exist or the
// transaction is not filed under it.
func (s Service) RunningBalance(accountID, transactionID uuid.UUID) (RegisterEntry, bool, error) {
	account, ok, err := s.Store.Account(accountID)
	if err != nil || !ok {
		return RegisterEntry{}, ok, err
	}

	txs, err := s.Store.AccountTransactions(accountID)
	if err != nil {
		return RegisterEntry{}, false, err
	}

	for _, t := range txs {
		if t.ID != transactionID || t.AccountID != accountID {
			continue
		}

		balance, ok := RunningBalance(account, txs, transactionID)
		return RegisterEntry{Transaction: t, Balance: balance}, ok, nil
	}

	return RegisterEntry{}, false, nil
}

// Dashboard is the summary of a ledger group together with the totals of
// the current month.
type Dashboard struct {
	Summary
	Month MonthTotals
}

func (s Service) Summary(group string, now time.Time) (Dashboard, error) {
	accounts, err := s.Store.Accounts()
	if err != nil {
		return Dashboard{}, err
	}

	perAccount := make(map[uuid.UUID][]Transaction)
	for _, a := range accounts {
		if !SameGroup(group, a.LedgerGroup) {
			continue
		}

		txs, err := s.Store.AccountTransactions(a.ID)
		if err != nil {
			return Dashboard{}, err
		}
		perAccount[a.ID] = txs
	}

	txs, err := s.Store.LedgerTransactions(group)
	if err != nil {
		return Dashboard{}, err
	}

	budgets, err := s.Store.Budgets()
	if err != nil {
		return Dashboard{}, err
	}

	summary := Summarize(SummaryInput{
		Group:               group,
		Accounts:            accounts,
		AccountTransactions: perAccount,
		Transactions:        txs,
		Budgets:             budgets,
		Now:                 now,
	})

	return Dashboard{
		Summary: summary,
		Month:   Totals(FilterGroup(txs, group), now, s.BillsPattern),
	}, nil
}

func (s Service) Trend(group string, now time.Time, n int) ([]MonthSummary, error) {
	txs, err := s.groupTransactions(group)
	if err != nil {
		return nil, err
	}

	return Trend(txs, now, n), nil
}

func (s Service) Forecast(group string, now time.Time, n int) ([]MonthSummary, error) {
	txs, err := s.groupTransactions(group)
	if err != nil {
		return nil, err
	}

	return Forecast(txs, now, n), nil
}

func (s Service) Grouped(group string, mode GroupMode, loc *time.Location) ([]Bucket, error) {
	txs, err := s.groupTransactions(group)
	if err != nil {
		return nil, err
	}

	return GroupTransactions(txs, mode, loc), nil
}

// Bills returns the bills of the current month and their total.
func (s Service) Bills(group string, now time.Time) ([]Transaction, decimal.Decimal, error) {
	txs, err := s.groupTransactions(group)
	if err != nil {
		return nil, decimal.Zero, err
	}

	bills := Bills(txs, now, s.BillsPattern)

	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(b.Amount.Abs())
	}

	return bills, total, nil
}

// Budgets returns the budgets of a ledger group with their spent amount
// for the current cycle.
func (s Service) Budgets(group string, now time.Time) ([]Budget, error) {
	budgets, err := s.Store.Budgets()
	if err != nil {
		return nil, err
	}

	txs, err := s.Store.LedgerTransactions(AllGroups)
	if err != nil {
		return nil, err
	}

	scoped := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		if SameGroup(group, b.LedgerGroup) {
			scoped = append(scoped, b)
		}
	}

	return WithSpent(scoped, txs, now), nil
}

func (s Service) Ledgers() ([]string, error) {
	return s.Store.Ledgers()
}

// groupTransactions returns the deduplicated transactions of a ledger group.
func (s Service) groupTransactions(group string) ([]Transaction, error) {
	txs, err := s.Store.LedgerTransactions(group)
	if err != nil {
		return nil, err
	}

	return Dedup(FilterGroup(txs, group)), nil
}
