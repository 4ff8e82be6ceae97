package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/ledger"
	"gorm.io/gorm"
)

// Store reads ledger snapshots from the database.
type Store struct {
	DB *gorm.DB
}

var _ ledger.Store = Store{}

func NewStore(db *gorm.DB) Store {
	return Store{DB: db}
}

func (s Store) Accounts() ([]ledger.Account, error) {
	var accounts []Account
	err := s.DB.Order("name ASC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.LedgerAccount())
	}
	return out, nil
}

func (s Store) Account(id uuid.UUID) (ledger.Account, bool, error) {
	var account Account
	err := s.DB.First(&account, id).Error
	if errors.Is(err, ErrResourceNotFound) {
		return ledger.Account{}, false, nil
	}
	if err != nil {
		return ledger.Account{}, false, err
	}

	return account.LedgerAccount(), true, nil
}

func (s Store) AccountTransactions(accountID uuid.UUID) ([]ledger.Transaction, error) {
	var transactions []Transaction
	err := s.DB.Where(&Transaction{AccountID: accountID}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return ledgerTransactions(transactions), nil
}

// LedgerTransactions returns the transactions filed under the group
// followed by all transactions of the accounts in the group. The result
// contains most transactions twice.
func (s Store) LedgerTransactions(group string) ([]ledger.Transaction, error) {
	var transactions []Transaction
	err := s.DB.Order("date DESC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	if ledger.IsAllGroups(group) {
		return ledgerTransactions(transactions), nil
	}

	var accounts []Account
	err = s.DB.Select("id", "ledger_group").Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	inGroup := make(map[uuid.UUID]bool)
	for _, a := range accounts {
		if ledger.SameGroup(group, a.LedgerGroup) {
			inGroup[a.ID] = true
		}
	}

	var grouped, byAccount []Transaction
	for _, t := range transactions {
		if ledger.SameGroup(group, t.LedgerGroup) {
			grouped = append(grouped, t)
		}

		if inGroup[t.AccountID] {
			byAccount = append(byAccount, t)
		}
	}

	return ledgerTransactions(append(grouped, byAccount...)), nil
}

func (s Store) Budgets() ([]ledger.Budget, error) {
	var budgets []Budget
	err := s.DB.Order("parent_category ASC, sub_category ASC").Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Budget, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, b.LedgerBudget())
	}
	return out, nil
}

func (s Store) Ledgers() ([]string, error) {
	var ledgers []Ledger
	err := s.DB.Order("position ASC, name ASC").Find(&ledgers).Error
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ledgers))
	for _, l := range ledgers {
		names = append(names, l.Name)
	}
	return names, nil
}

func ledgerTransactions(transactions []Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, t.LedgerTransaction())
	}
	return out
}
