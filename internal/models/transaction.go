package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single expense, income or one leg of a transfer.
type Transaction struct {
	DefaultModel
	ParentCategory   string
	SubCategory      string
	Description      string
	Payee            string
	Notes            string
	Date             time.Time `gorm:"index"`
	Amount           decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AccountID        uuid.UUID
	Account          Account
	Type             ledger.TransactionType
	IsOpeningBalance bool
	LedgerGroup      string `gorm:"index"`
	FromAccountID    *uuid.UUID
	ToAccountID      *uuid.UUID
	TransferID       *uuid.UUID `gorm:"index"` // shared by both legs of a transfer
}

func (Transaction) Self() string {
	return "Transaction"
}

// BeforeSave normalizes the transaction.
//
// The sign of the amount is derived from the type. The ledger group always
// is the group of the account the transaction is filed under.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	db := tx.Session(&gorm.Session{NewDB: true})

	t.ParentCategory = strings.TrimSpace(t.ParentCategory)
	t.SubCategory = strings.TrimSpace(t.SubCategory)
	t.Description = strings.TrimSpace(t.Description)
	t.Payee = strings.TrimSpace(t.Payee)

	kind, err := ledger.ParseTransactionType(string(t.Type))
	if err != nil {
		return err
	}
	t.Type = kind

	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	t.Date = t.Date.In(time.UTC)

	var account Account
	err = db.First(&account, t.AccountID).Error
	if err != nil {
		return fmt.Errorf("no existing account with specified accountId: %w", err)
	}
	t.LedgerGroup = account.LedgerGroup

	switch kind {
	case ledger.TypeExpense:
		t.Amount = t.Amount.Abs().Neg()
		t.FromAccountID = nil
		t.ToAccountID = nil
	case ledger.TypeIncome:
		t.Amount = t.Amount.Abs()
		t.FromAccountID = nil
		t.ToAccountID = nil
	case ledger.TypeTransfer:
		return t.normalizeTransfer(db)
	}

	return nil
}

func (t *Transaction) normalizeTransfer(db *gorm.DB) error {
	if t.FromAccountID == nil || t.ToAccountID == nil {
		return ErrTransferLegInvalid
	}

	if *t.FromAccountID == *t.ToAccountID {
		return ErrTransferSameAccount
	}

	if t.Amount.IsZero() {
		return ErrTransferAmountZero
	}

	var other uuid.UUID
	switch t.AccountID {
	case *t.FromAccountID:
		t.Amount = t.Amount.Abs().Neg()
		other = *t.ToAccountID
	case *t.ToAccountID:
		t.Amount = t.Amount.Abs()
		other = *t.FromAccountID
	default:
		return ErrTransferLegInvalid
	}

	err := db.First(&Account{}, other).Error
	if err != nil {
		return fmt.Errorf("no existing account for the other side of the transfer: %w", err)
	}

	return nil
}

func (t *Transaction) AfterSave(tx *gorm.DB) error {
	return registerLedger(tx, t.LedgerGroup)
}

// AfterDelete removes the other leg of a transfer.
func (t *Transaction) AfterDelete(tx *gorm.DB) error {
	if t.Type != ledger.TypeTransfer || t.TransferID == nil {
		return nil
	}

	return tx.Session(&gorm.Session{NewDB: true}).
		Where("transfer_id = ? AND id <> ?", *t.TransferID, t.ID).
		Delete(&Transaction{}).Error
}

// AfterFind normalizes the timestamps to UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// LedgerTransaction returns the transaction as used for balance calculations.
func (t Transaction) LedgerTransaction() ledger.Transaction {
	return ledger.Transaction{
		ID:               t.ID,
		ParentCategory:   t.ParentCategory,
		SubCategory:      t.SubCategory,
		Description:      t.Description,
		Payee:            t.Payee,
		Notes:            t.Notes,
		Date:             t.Date,
		Amount:           t.Amount,
		AccountID:        t.AccountID,
		Type:             t.Type,
		IsOpeningBalance: t.IsOpeningBalance,
		LedgerGroup:      t.LedgerGroup,
		FromAccountID:    t.FromAccountID,
		ToAccountID:      t.ToAccountID,
	}
}

// Transfer describes a movement of money between two accounts.
type Transfer struct {
	FromAccountID  uuid.UUID
	ToAccountID    uuid.UUID
	Amount         decimal.Decimal
	Date           time.Time
	Description    string
	Notes          string
	ParentCategory string
	SubCategory    string
}

// CreateTransfer creates both legs of a transfer in one database
// transaction. The outgoing leg is returned first.
func CreateTransfer(db *gorm.DB, transfer Transfer) ([]Transaction, error) {
	if transfer.FromAccountID == transfer.ToAccountID {
		return nil, ErrTransferSameAccount
	}

	if transfer.Amount.IsZero() {
		return nil, ErrTransferAmountZero
	}

	if transfer.Date.IsZero() {
		transfer.Date = time.Now()
	}

	from := transfer.FromAccountID
	to := transfer.ToAccountID
	transferID := uuid.New()

	legs := []Transaction{
		{AccountID: from},
		{AccountID: to},
	}

	err := transaction(db, func(tx *gorm.DB) error {
		for i := range legs {
			legs[i].ParentCategory = transfer.ParentCategory
			legs[i].SubCategory = transfer.SubCategory
			legs[i].Description = transfer.Description
			legs[i].Notes = transfer.Notes
			legs[i].Date = transfer.Date
			legs[i].Amount = transfer.Amount
			legs[i].Type = ledger.TypeTransfer
			legs[i].FromAccountID = &from
			legs[i].ToAccountID = &to
			legs[i].TransferID = &transferID

			err := tx.Create(&legs[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return legs, nil
}
