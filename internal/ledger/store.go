package ledger

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the read contract the engines depend on.
//
// Every call returns a point-in-time copy. Callers may keep and modify the
// returned values without affecting the store.
type Store interface {
	Accounts() ([]Account, error)
	Account(id uuid.UUID) (Account, bool, error)
	AccountTransactions(accountID uuid.UUID) ([]Transaction, error)

	// LedgerTransactions returns the transactions of a ledger group, or of
	// all groups for "All". The list may contain the same transaction more
	// than once.
	LedgerTransactions(group string) ([]Transaction, error)

	Budgets() ([]Budget, error)
	Ledgers() ([]string, error)
}

// MemoryStore is a Store that keeps everything in memory.
type MemoryStore struct {
	mu           sync.RWMutex
	accounts     []Account
	transactions []Transaction
	budgets      []Budget
	ledgers      []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddAccount adds the account and registers its ledger group.
func (m *MemoryStore) AddAccount(a Account) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts = append(m.accounts, cloneAccount(a))
	m.addLedger(a.LedgerGroup)
}

func (m *MemoryStore) AddTransactions(txs ...Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range txs {
		m.transactions = append(m.transactions, cloneTransaction(t))
		m.addLedger(t.LedgerGroup)
	}
}

func (m *MemoryStore) AddBudgets(budgets ...Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range budgets {
		m.budgets = append(m.budgets, cloneBudget(b))
	}
}

func (m *MemoryStore) addLedger(name string) {
	if name == "" {
		return
	}

	for _, l := range m.ledgers {
		if NormalizeGroup(l) == NormalizeGroup(name) {
			return
		}
	}
	m.ledgers = append(m.ledgers, name)
}

func (m *MemoryStore) Accounts() ([]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, cloneAccount(a))
	}
	return out, nil
}

func (m *MemoryStore) Account(id uuid.UUID) (Account, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.accounts {
		if a.ID == id {
			return cloneAccount(a), true, nil
		}
	}
	return Account{}, false, nil
}

func (m *MemoryStore) AccountTransactions(accountID uuid.UUID) ([]Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Transaction, 0)
	for _, t := range m.transactions {
		if t.AccountID == accountID {
			out = append(out, cloneTransaction(t))
		}
	}
	return out, nil
}

// LedgerTransactions merges the transactions of the group with the
// transactions filed under the accounts of the group. Transactions matching
// both are returned twice.
func (m *MemoryStore) LedgerTransactions(group string) ([]Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	accounts := make(map[uuid.UUID]bool)
	for _, a := range m.accounts {
		if SameGroup(group, a.LedgerGroup) {
			accounts[a.ID] = true
		}
	}

	out := make([]Transaction, 0)
	for _, t := range m.transactions {
		if SameGroup(group, t.LedgerGroup) {
			out = append(out, cloneTransaction(t))
		}
	}

	for _, t := range m.transactions {
		if accounts[t.AccountID] {
			out = append(out, cloneTransaction(t))
		}
	}

	return out, nil
}

func (m *MemoryStore) Budgets() ([]Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Budget, 0, len(m.budgets))
	for _, b := range m.budgets {
		out = append(out, cloneBudget(b))
	}
	return out, nil
}

func (m *MemoryStore) Ledgers() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string{}, m.ledgers...), nil
}

func cloneAccount(a Account) Account {
	a.CreditLimit = cloneDecimal(a.CreditLimit)
	a.StatementBalance = cloneDecimal(a.StatementBalance)
	if a.BillingDate != nil {
		d := *a.BillingDate
		a.BillingDate = &d
	}
	if a.DueDate != nil {
		d := *a.DueDate
		a.DueDate = &d
	}
	return a
}

func cloneTransaction(t Transaction) Transaction {
	if t.FromAccountID != nil {
		id := *t.FromAccountID
		t.FromAccountID = &id
	}
	if t.ToAccountID != nil {
		id := *t.ToAccountID
		t.ToAccountID = &id
	}
	return t
}

func cloneBudget(b Budget) Budget {
	if b.StartDate != nil {
		d := *b.StartDate
		b.StartDate = &d
	}
	return b
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
