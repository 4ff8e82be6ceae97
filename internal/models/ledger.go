package models

import (
	"fmt"
	"strings"

	"github.com/ledgerbook/backend/internal/ledger"
	"gorm.io/gorm"
)

// Ledger is a named group that accounts, transactions, categories and
// budgets belong to.
type Ledger struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Position int
}

func (Ledger) Self() string {
	return "Ledger"
}

func (l *Ledger) BeforeSave(tx *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)

	if l.Name == "" {
		return ErrLedgerNameEmpty
	}

	if ledger.IsAllGroups(l.Name) {
		return ErrLedgerNameReserved
	}

	var ledgers []Ledger
	err := tx.Session(&gorm.Session{NewDB: true}).Find(&ledgers).Error
	if err != nil {
		return err
	}

	for _, other := range ledgers {
		if other.ID != l.ID && ledger.NormalizeGroup(other.Name) == ledger.NormalizeGroup(l.Name) {
			return ErrLedgerNameNotUnique
		}
	}

	return nil
}

// BeforeCreate appends new ledgers to the end of the list.
func (l *Ledger) BeforeCreate(tx *gorm.DB) error {
	err := l.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if l.Position != 0 {
		return nil
	}

	var count int64
	err = tx.Session(&gorm.Session{NewDB: true}).Model(&Ledger{}).Count(&count).Error
	if err != nil {
		return err
	}

	l.Position = int(count)
	return nil
}

// BeforeDelete refuses to delete ledgers that still have accounts and
// removes categories and budgets of the ledger.
func (l *Ledger) BeforeDelete(tx *gorm.DB) error {
	db := tx.Session(&gorm.Session{NewDB: true})

	var accounts []Account
	err := db.Select("ledger_group").Find(&accounts).Error
	if err != nil {
		return err
	}

	for _, account := range accounts {
		if ledger.NormalizeGroup(account.LedgerGroup) == ledger.NormalizeGroup(l.Name) {
			return ErrLedgerHasAccounts
		}
	}

	var categories []Category
	err = db.Find(&categories).Error
	if err != nil {
		return err
	}

	for _, category := range categories {
		if ledger.NormalizeGroup(category.LedgerGroup) != ledger.NormalizeGroup(l.Name) {
			continue
		}

		err = db.Delete(&category).Error
		if err != nil {
			return err
		}
	}

	var budgets []Budget
	err = db.Find(&budgets).Error
	if err != nil {
		return err
	}

	for _, budget := range budgets {
		if ledger.NormalizeGroup(budget.LedgerGroup) != ledger.NormalizeGroup(l.Name) {
			continue
		}

		err = db.Delete(&Budget{}, budget.ID).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// Rename renames the ledger and moves all resources filed under the old
// name to the new one.
func (l *Ledger) Rename(db *gorm.DB, name string) error {
	return transaction(db, func(tx *gorm.DB) error {
		old := l.Name
		l.Name = name

		err := tx.Save(l).Error
		if err != nil {
			l.Name = old
			return err
		}

		for _, model := range []Model{&Account{}, &Transaction{}, &Budget{}, &Category{}} {
			err = tx.Model(model).
				Where("LOWER(TRIM(ledger_group)) = ?", strings.ToLower(strings.TrimSpace(old))).
				UpdateColumn("ledger_group", l.Name).Error
			if err != nil {
				l.Name = old
				return fmt.Errorf("moving %s resources: %w", model.Self(), err)
			}
		}

		return nil
	})
}

// registerLedger makes sure that a ledger with the given name exists.
func registerLedger(tx *gorm.DB, name string) error {
	if strings.TrimSpace(name) == "" || ledger.IsAllGroups(name) {
		return nil
	}

	db := tx.Session(&gorm.Session{NewDB: true})

	var ledgers []Ledger
	err := db.Find(&ledgers).Error
	if err != nil {
		return err
	}

	for _, l := range ledgers {
		if ledger.NormalizeGroup(l.Name) == ledger.NormalizeGroup(name) {
			return nil
		}
	}

	return db.Create(&Ledger{Name: name, Position: len(ledgers)}).Error
}

// validateGroup trims the group name and checks that it can be used to
// file resources under. Names of existing ledgers are returned with the
// spelling of the ledger.
func validateGroup(tx *gorm.DB, group string) (string, error) {
	group = strings.TrimSpace(group)

	if group == "" {
		return "", ErrLedgerNameEmpty
	}

	if ledger.IsAllGroups(group) {
		return "", ErrLedgerNameReserved
	}

	return canonicalGroup(tx, group)
}

// canonicalGroup returns the name of the ledger matching group, or group
// itself when no ledger matches.
func canonicalGroup(tx *gorm.DB, group string) (string, error) {
	var ledgers []Ledger
	err := tx.Session(&gorm.Session{NewDB: true}).Find(&ledgers).Error
	if err != nil {
		return "", err
	}

	for _, l := range ledgers {
		if ledger.NormalizeGroup(l.Name) == ledger.NormalizeGroup(group) {
			return l.Name, nil
		}
	}

	return group, nil
}
