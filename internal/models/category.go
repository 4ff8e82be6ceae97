package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a parent category of a ledger.
type Category struct {
	DefaultModel
	Name        string `gorm:"uniqueIndex:category_ledger_name"`
	LedgerGroup string `gorm:"uniqueIndex:category_ledger_name"`
}

func (Category) Self() string {
	return "Category"
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrCategoryEmpty
	}

	group, err := validateGroup(tx, c.LedgerGroup)
	if err != nil {
		return err
	}
	c.LedgerGroup = group

	return nil
}

func (c *Category) AfterSave(tx *gorm.DB) error {
	return registerLedger(tx, c.LedgerGroup)
}

// BeforeDelete deletes all subcategories of the category.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		return nil
	}

	return tx.Session(&gorm.Session{NewDB: true}).
		Where(&Subcategory{CategoryID: c.ID}).
		Delete(&Subcategory{}).Error
}

// Subcategories returns the subcategories of the category, sorted by name.
func (c Category) Subcategories(db *gorm.DB) ([]Subcategory, error) {
	var subcategories []Subcategory
	err := db.Where(&Subcategory{CategoryID: c.ID}).Order("name ASC").Find(&subcategories).Error
	if err != nil {
		return nil, err
	}

	return subcategories, nil
}

// Subcategory is a child of a Category.
type Subcategory struct {
	DefaultModel
	CategoryID uuid.UUID `gorm:"uniqueIndex:subcategory_category_name"`
	Category   Category
	Name       string `gorm:"uniqueIndex:subcategory_category_name"`
}

func (Subcategory) Self() string {
	return "Subcategory"
}

func (s *Subcategory) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return ErrSubcategoryNameEmpty
	}

	return nil
}
