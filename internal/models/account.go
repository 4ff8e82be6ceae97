package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an asset account, e.g. a bank account, or a
// liability, e.g. a credit card.
type Account struct {
	DefaultModel
	Name             string `gorm:"uniqueIndex:account_ledger_name"`
	Description      string
	Kind             ledger.AccountKind
	OpeningBalance   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AsOfDate         time.Time
	LedgerGroup      string `gorm:"uniqueIndex:account_ledger_name"`
	Notes            string
	CreditLimit      *decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	StatementBalance *decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	BillingDate      *time.Time
	DueDate          *time.Time
}

func (Account) Self() string {
	return "Account"
}

func (a *Account) BeforeSave(tx *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)

	if a.Name == "" {
		return ErrAccountNameEmpty
	}

	group, err := validateGroup(tx, a.LedgerGroup)
	if err != nil {
		return err
	}
	a.LedgerGroup = group

	kind, err := ledger.ParseAccountKind(string(a.Kind))
	if err != nil {
		return err
	}
	a.Kind = kind

	if a.AsOfDate.IsZero() {
		a.AsOfDate = time.Now()
	}
	a.AsOfDate = a.AsOfDate.In(time.UTC)

	// Statement details only exist for credit-like accounts
	if !kind.CreditLike() {
		a.CreditLimit = nil
		a.StatementBalance = nil
		a.BillingDate = nil
		a.DueDate = nil
	}

	return nil
}

// AfterSave registers the ledger of the account and keeps the ledger of
// all transactions filed under the account in sync.
func (a *Account) AfterSave(tx *gorm.DB) error {
	err := registerLedger(tx, a.LedgerGroup)
	if err != nil {
		return err
	}

	return tx.Session(&gorm.Session{NewDB: true}).
		Model(&Transaction{}).
		Where("account_id = ? AND ledger_group <> ?", a.ID, a.LedgerGroup).
		UpdateColumn("ledger_group", a.LedgerGroup).Error
}

// BeforeDelete deletes all transactions filed under or referencing the
// account.
func (a *Account) BeforeDelete(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		return nil
	}

	return tx.Session(&gorm.Session{NewDB: true}).
		Where("account_id = ? OR from_account_id = ? OR to_account_id = ?", a.ID, a.ID, a.ID).
		Delete(&Transaction{}).Error
}

// AfterFind normalizes the timestamps to UTC.
func (a *Account) AfterFind(tx *gorm.DB) error {
	err := a.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	a.AsOfDate = a.AsOfDate.In(time.UTC)
	return nil
}

// LedgerAccount returns the account as used for balance calculations.
func (a Account) LedgerAccount() ledger.Account {
	return ledger.Account{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		Kind:             a.Kind,
		OpeningBalance:   a.OpeningBalance,
		AsOfDate:         a.AsOfDate,
		LedgerGroup:      a.LedgerGroup,
		Notes:            a.Notes,
		CreditLimit:      a.CreditLimit,
		StatementBalance: a.StatementBalance,
		BillingDate:      a.BillingDate,
		DueDate:          a.DueDate,
	}
}
