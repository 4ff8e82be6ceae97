package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget allocates money to a category or subcategory for a cycle.
//
// A budget with an empty SubCategory is the category level budget. Its
// allocation is the sum of the allocations of its subcategory budgets.
type Budget struct {
	DefaultModel
	ParentCategory  string `gorm:"uniqueIndex:budget_category"`
	SubCategory     string `gorm:"uniqueIndex:budget_category"`
	LedgerGroup     string `gorm:"uniqueIndex:budget_category"`
	Description     string
	Type            ledger.BudgetType
	AllocatedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Cycle           ledger.BudgetCycle
	StartDate       *time.Time

	previous *Budget // stored state before an update
}

func (Budget) Self() string {
	return "Budget"
}

func (b *Budget) BeforeSave(tx *gorm.DB) error {
	if b.ID != uuid.Nil {
		var stored []Budget
		err := tx.Session(&gorm.Session{NewDB: true}).Where("id = ?", b.ID).Limit(1).Find(&stored).Error
		if err != nil {
			return err
		}

		if len(stored) == 1 {
			b.previous = &stored[0]
		}
	}

	b.ParentCategory = strings.TrimSpace(b.ParentCategory)
	b.SubCategory = strings.TrimSpace(b.SubCategory)
	b.LedgerGroup = strings.TrimSpace(b.LedgerGroup)
	b.Description = strings.TrimSpace(b.Description)

	if b.ParentCategory == "" {
		return ErrCategoryEmpty
	}

	if ledger.IsAllGroups(b.LedgerGroup) {
		return ErrLedgerNameReserved
	}

	if b.LedgerGroup != "" {
		group, err := canonicalGroup(tx, b.LedgerGroup)
		if err != nil {
			return err
		}
		b.LedgerGroup = group
	}

	err := b.canonicalCategory(tx)
	if err != nil {
		return err
	}

	if b.Type == "" {
		b.Type = ledger.BudgetExpense
	}
	kind, err := ledger.ParseBudgetType(string(b.Type))
	if err != nil {
		return err
	}
	b.Type = kind

	if b.Cycle == "" {
		b.Cycle = ledger.CycleMonthly
	}
	cycle, err := ledger.ParseBudgetCycle(string(b.Cycle))
	if err != nil {
		return err
	}
	b.Cycle = cycle

	if b.StartDate != nil {
		start := b.StartDate.In(time.UTC)
		b.StartDate = &start
	}

	return nil
}

// canonicalCategory adopts the spelling of the category and subcategory
// already stored for the ledger group, so that categories differing only
// in case share one category level budget.
func (b *Budget) canonicalCategory(tx *gorm.DB) error {
	var budgets []Budget
	err := tx.Session(&gorm.Session{NewDB: true}).Where("ledger_group = ? AND id <> ?", b.LedgerGroup, b.ID).Find(&budgets).Error
	if err != nil {
		return err
	}

	for _, other := range budgets {
		if ledger.NormalizeGroup(other.ParentCategory) != ledger.NormalizeGroup(b.ParentCategory) {
			continue
		}
		b.ParentCategory = other.ParentCategory

		if b.SubCategory != "" && ledger.NormalizeGroup(other.SubCategory) == ledger.NormalizeGroup(b.SubCategory) {
			b.SubCategory = other.SubCategory
		}
	}

	return nil
}

// AfterSave recalculates the allocation of the category level budget.
//
// When a subcategory budget moved to another category or ledger, the
// category level budget it moved away from is recalculated, too.
func (b *Budget) AfterSave(tx *gorm.DB) error {
	err := registerLedger(tx, b.LedgerGroup)
	if err != nil {
		return err
	}

	if b.SubCategory != "" {
		err = rollup(tx, b.ParentCategory, b.LedgerGroup, b.Type)
		if err != nil {
			return err
		}
	}

	p := b.previous
	if p == nil || p.SubCategory == "" {
		return nil
	}

	moved := b.SubCategory == "" ||
		ledger.NormalizeGroup(p.ParentCategory) != ledger.NormalizeGroup(b.ParentCategory) ||
		ledger.NormalizeGroup(p.LedgerGroup) != ledger.NormalizeGroup(b.LedgerGroup)
	if !moved {
		return nil
	}

	return rollup(tx, p.ParentCategory, p.LedgerGroup, p.Type)
}

// AfterDelete recalculates the allocation of the category level budget.
func (b *Budget) AfterDelete(tx *gorm.DB) error {
	if b.SubCategory == "" {
		return nil
	}

	return rollup(tx, b.ParentCategory, b.LedgerGroup, b.Type)
}

// rollup sets the allocation of the category level budget to the sum of
// its subcategory budgets. The category level budget is created when it
// does not exist yet.
func rollup(tx *gorm.DB, parent, group string, kind ledger.BudgetType) error {
	db := tx.Session(&gorm.Session{NewDB: true})

	var budgets []Budget
	err := db.Find(&budgets).Error
	if err != nil {
		return err
	}

	snapshot := make([]ledger.Budget, 0, len(budgets))
	for _, b := range budgets {
		snapshot = append(snapshot, b.LedgerBudget())
	}
	total := ledger.RollupAllocation(snapshot, parent, group)

	for _, b := range budgets {
		if b.SubCategory != "" ||
			ledger.NormalizeGroup(b.ParentCategory) != ledger.NormalizeGroup(parent) ||
			ledger.NormalizeGroup(b.LedgerGroup) != ledger.NormalizeGroup(group) {
			continue
		}

		return db.Model(&Budget{}).Where("id = ?", b.ID).UpdateColumn("allocated_amount", total).Error
	}

	return db.Create(&Budget{
		ParentCategory:  parent,
		LedgerGroup:     group,
		Type:            kind,
		AllocatedAmount: total,
	}).Error
}

// AfterFind normalizes the timestamps to UTC.
func (b *Budget) AfterFind(tx *gorm.DB) error {
	err := b.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	if b.StartDate != nil {
		start := b.StartDate.In(time.UTC)
		b.StartDate = &start
	}
	return nil
}

// LedgerBudget returns the budget as used for spending calculations.
func (b Budget) LedgerBudget() ledger.Budget {
	return ledger.Budget{
		ID:              b.ID,
		ParentCategory:  b.ParentCategory,
		SubCategory:     b.SubCategory,
		Description:     b.Description,
		Type:            b.Type,
		AllocatedAmount: b.AllocatedAmount,
		LedgerGroup:     b.LedgerGroup,
		Cycle:           b.Cycle,
		StartDate:       b.StartDate,
	}
}
