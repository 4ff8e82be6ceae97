package models_test

import (
	"testing"
	"time"

	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	account := suite.createTestAccount(models.Account{
		Name:        "\t Whitespace galore!   ",
		Description: " Some more whitespace    ",
		LedgerGroup: "  Personal ",
	})

	assert.Equal(suite.T(), "Whitespace galore!", account.Name)
	assert.Equal(suite.T(), "Some more whitespace", account.Description)
	assert.Equal(suite.T(), "Personal", account.LedgerGroup)
}

func (suite *TestSuiteStandard) TestAccountValidation() {
	tests := []struct {
		name    string
		account models.Account
		err     error
	}{
		{"Empty name", models.Account{Name: "  ", LedgerGroup: "Personal", Kind: ledger.KindDebit}, models.ErrAccountNameEmpty},
		{"Empty ledger", models.Account{Name: "Checking", Kind: ledger.KindDebit}, models.ErrLedgerNameEmpty},
		{"Reserved ledger", models.Account{Name: "Checking", LedgerGroup: "all", Kind: ledger.KindDebit}, models.ErrLedgerNameReserved},
		{"Unknown kind", models.Account{Name: "Checking", LedgerGroup: "Personal", Kind: "Loan"}, ledger.ErrUnknownAccountKind},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.account).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountKindNormalized() {
	account := suite.createTestAccount(models.Account{Kind: "credit"})
	assert.Equal(suite.T(), ledger.KindCredit, account.Kind)
}

func (suite *TestSuiteStandard) TestAccountNameUniquePerLedger() {
	_ = suite.createTestAccount(models.Account{Name: "Checking", LedgerGroup: "Personal"})
	_ = suite.createTestAccount(models.Account{Name: "Checking", LedgerGroup: "Business"})

	err := models.DB.Create(&models.Account{Name: "Checking", LedgerGroup: "Personal", Kind: ledger.KindDebit}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestAccountStatementFieldsOnlyForCredit() {
	limit := dec("1000")
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	debit := suite.createTestAccount(models.Account{Name: "Checking", CreditLimit: &limit, DueDate: &due})
	assert.Nil(suite.T(), debit.CreditLimit)
	assert.Nil(suite.T(), debit.DueDate)

	credit := suite.createTestAccount(models.Account{Name: "Visa", Kind: ledger.KindCredit, CreditLimit: &limit, DueDate: &due})

	var stored models.Account
	require.Nil(suite.T(), models.DB.First(&stored, credit.ID).Error)
	require.NotNil(suite.T(), stored.CreditLimit)
	assert.True(suite.T(), stored.CreditLimit.Equal(limit), "Credit limit is %s", stored.CreditLimit)
	require.NotNil(suite.T(), stored.DueDate)
	assert.True(suite.T(), stored.DueDate.Equal(due))
}

func (suite *TestSuiteStandard) TestAccountRegistersLedger() {
	_ = suite.createTestAccount(models.Account{Name: "Checking", LedgerGroup: "Personal"})
	savings := suite.createTestAccount(models.Account{Name: "Savings", LedgerGroup: "personal "})
	_ = suite.createTestAccount(models.Account{Name: "Till", LedgerGroup: "Shop"})

	names, err := models.NewStore(models.DB).Ledgers()
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), []string{"Personal", "Shop"}, names)

	var stored models.Account
	require.Nil(suite.T(), models.DB.First(&stored, savings.ID).Error)
	assert.Equal(suite.T(), "Personal", stored.LedgerGroup, "group must be stored with the spelling of the ledger")
}

func (suite *TestSuiteStandard) TestAccountLedgerChangeMovesTransactions() {
	account := suite.createTestAccount(models.Account{})
	transaction := suite.createTestTransaction(models.Transaction{AccountID: account.ID, Amount: dec("10")})

	account.LedgerGroup = "Business"
	require.Nil(suite.T(), models.DB.Save(&account).Error)

	var stored models.Transaction
	require.Nil(suite.T(), models.DB.First(&stored, transaction.ID).Error)
	assert.Equal(suite.T(), "Business", stored.LedgerGroup)
}

func (suite *TestSuiteStandard) TestAccountDeleteRemovesTransactions() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings", Kind: ledger.KindSavings})
	other := suite.createTestAccount(models.Account{Name: "Cash", Kind: ledger.KindCash})

	suite.createTestTransaction(models.Transaction{AccountID: checking.ID, Amount: dec("10")})
	legs, err := models.CreateTransfer(models.DB, models.Transfer{FromAccountID: checking.ID, ToAccountID: savings.ID, Amount: dec("100")})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), legs, 2)
	suite.createTestTransaction(models.Transaction{AccountID: other.ID, Amount: dec("5")})

	require.Nil(suite.T(), models.DB.Delete(&checking).Error)

	var transactions []models.Transaction
	require.Nil(suite.T(), models.DB.Find(&transactions).Error)
	require.Len(suite.T(), transactions, 1, "Only the transaction of the unrelated account must remain")
	assert.Equal(suite.T(), other.ID, transactions[0].AccountID)
}

func (suite *TestSuiteStandard) TestAccountLedgerAccount() {
	account := suite.createTestAccount(models.Account{Name: "Checking", OpeningBalance: dec("1000")})

	l := account.LedgerAccount()
	assert.Equal(suite.T(), account.ID, l.ID)
	assert.Equal(suite.T(), "Checking", l.Name)
	assert.Equal(suite.T(), ledger.KindDebit, l.Kind)
	assert.True(suite.T(), l.OpeningBalance.Equal(dec("1000")))
}
