package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "ledgerbook-url"
)

// Connect opens the SQLite database, migrates the schema and configures
// the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	// Migrate with foreign keys disabled. sqlite does not support
	// ALTER COLUMN, so tables are copied, dropped and recreated.
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "ledgerbook:after_query", queryCallback},
		{db.Callback().Query().After("*"), "ledgerbook:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "ledgerbook:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "ledgerbook:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "ledgerbook:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "ledgerbook:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "ledgerbook:after_delete", createUpdateCallback},
		{db.Callback().Delete().After("*"), "ledgerbook:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	DB = db
	return nil
}

var plural = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = plural.ReplaceAllString(name, "y")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// constraintErrors maps constraint violations reported by SQLite to
// errors that can be shown to users.
var constraintErrors = []struct {
	match string
	err   error
}{
	{"UNIQUE constraint failed: ledgers.", ErrLedgerNameNotUnique},
	{"UNIQUE constraint failed: accounts.", ErrAccountNameNotUnique},
	{"UNIQUE constraint failed: categories.", ErrCategoryNameNotUnique},
	{"UNIQUE constraint failed: subcategories.", ErrSubcategoryNameNotUnique},
	{"UNIQUE constraint failed: budgets.", ErrBudgetNotUnique},
	{"FOREIGN KEY constraint failed", ErrReferenceNotFound},
}

// createUpdateCallback inspects errors returned by the database for
// writes and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	for _, c := range constraintErrors {
		if strings.Contains(db.Error.Error(), c.match) {
			db.Error = c.err
			return
		}
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if isGeneral(db.Error) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

func isGeneral(err error) bool {
	// "sql: database is closed" is hard-coded in database/sql
	return err.Error() == "sql: database is closed" || reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{})
}

// transaction runs fc in a database transaction. Errors starting or
// committing the transaction never pass through the gorm callbacks, so
// they are mapped to ErrGeneral here.
func transaction(db *gorm.DB, fc func(tx *gorm.DB) error) error {
	err := db.Transaction(fc)
	if err != nil && isGeneral(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Ledger{}, Account{}, Transaction{}, Category{}, Subcategory{}, Budget{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

// Reset deletes all resources.
func Reset(db *gorm.DB) error {
	// The order is important here since there are foreign keys to consider
	resources := []Model{
		&Transaction{},
		&Budget{},
		&Subcategory{},
		&Category{},
		&Account{},
		&Ledger{},
	}

	return transaction(db, func(tx *gorm.DB) error {
		for _, model := range resources {
			err := tx.Where("true").Delete(model).Error
			if err != nil {
				return fmt.Errorf("deleting %s: %w", model.Self(), err)
			}
		}
		return nil
	})
}
