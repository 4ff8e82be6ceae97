package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrLedgerNameNotUnique      = errors.New("the ledger name must be unique")
	ErrLedgerNameEmpty          = errors.New("the ledger name must not be empty")
	ErrLedgerNameReserved       = errors.New("the ledger name 'All' is reserved")
	ErrLedgerHasAccounts        = errors.New("the ledger still contains accounts, delete or move them first")
	ErrAccountNameEmpty         = errors.New("the account name must not be empty")
	ErrAccountNameNotUnique     = errors.New("the account name must be unique for the ledger")
	ErrCategoryNameNotUnique    = errors.New("the category name must be unique for the ledger")
	ErrSubcategoryNameEmpty     = errors.New("the subcategory name must not be empty")
	ErrSubcategoryNameNotUnique = errors.New("the subcategory name must be unique for the category")
	ErrBudgetNotUnique          = errors.New("there already is a budget for this category, subcategory and ledger")
	ErrCategoryEmpty            = errors.New("the parent category must not be empty")
	ErrTransferSameAccount      = errors.New("source and destination accounts for a transfer must be different")
	ErrTransferLegInvalid       = errors.New("a transfer must be filed under its source or destination account")
	ErrTransferAmountZero       = errors.New("the amount of a transfer must not be zero")
	ErrReferenceNotFound        = errors.New("a resource ID you specified did not identify an existing resource")
)
