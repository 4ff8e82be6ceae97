package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionSignFollowsType() {
	account := suite.createTestAccount(models.Account{})

	tests := []struct {
		name     string
		kind     ledger.TransactionType
		amount   decimal.Decimal
		expected decimal.Decimal
	}{
		{"Expense positive", ledger.TypeExpense, dec("12.5"), dec("-12.5")},
		{"Expense negative", ledger.TypeExpense, dec("-12.5"), dec("-12.5")},
		{"Income positive", ledger.TypeIncome, dec("100"), dec("100")},
		{"Income negative", ledger.TypeIncome, dec("-100"), dec("100")},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transaction := suite.createTestTransaction(models.Transaction{
				AccountID: account.ID,
				Type:      tt.kind,
				Amount:    tt.amount,
			})

			var stored models.Transaction
			require.Nil(t, models.DB.First(&stored, transaction.ID).Error)
			assert.True(t, stored.Amount.Equal(tt.expected), "Amount is %s, expected %s", stored.Amount, tt.expected)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionLedgerFromAccount() {
	account := suite.createTestAccount(models.Account{LedgerGroup: "Business"})

	transaction := suite.createTestTransaction(models.Transaction{
		AccountID:   account.ID,
		LedgerGroup: "Personal",
		Amount:      dec("3"),
	})

	assert.Equal(suite.T(), "Business", transaction.LedgerGroup)
}

func (suite *TestSuiteStandard) TestTransactionDefaults() {
	account := suite.createTestAccount(models.Account{})

	before := time.Now().Add(-time.Second)
	transaction := models.Transaction{AccountID: account.ID, Type: "Income", Amount: dec("1")}
	require.Nil(suite.T(), models.DB.Create(&transaction).Error)

	assert.Equal(suite.T(), ledger.TypeIncome, transaction.Type)
	assert.True(suite.T(), transaction.Date.After(before), "Date must default to now, is %s", transaction.Date)
	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings", Kind: ledger.KindSavings})
	cash := suite.createTestAccount(models.Account{Name: "Cash", Kind: ledger.KindCash})
	missing := uuid.New()

	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{"Unknown type", models.Transaction{AccountID: checking.ID, Type: "refund"}, ledger.ErrUnknownTransactionType},
		{"Unknown account", models.Transaction{AccountID: missing, Type: ledger.TypeExpense}, models.ErrResourceNotFound},
		{"Transfer without legs", models.Transaction{AccountID: checking.ID, Type: ledger.TypeTransfer, Amount: dec("1")}, models.ErrTransferLegInvalid},
		{"Transfer to itself", models.Transaction{AccountID: checking.ID, Type: ledger.TypeTransfer, Amount: dec("1"), FromAccountID: &checking.ID, ToAccountID: &checking.ID}, models.ErrTransferSameAccount},
		{"Transfer without amount", models.Transaction{AccountID: checking.ID, Type: ledger.TypeTransfer, FromAccountID: &checking.ID, ToAccountID: &savings.ID}, models.ErrTransferAmountZero},
		{"Transfer filed elsewhere", models.Transaction{AccountID: cash.ID, Type: ledger.TypeTransfer, Amount: dec("1"), FromAccountID: &checking.ID, ToAccountID: &savings.ID}, models.ErrTransferLegInvalid},
		{"Transfer to unknown account", models.Transaction{AccountID: checking.ID, Type: ledger.TypeTransfer, Amount: dec("1"), FromAccountID: &checking.ID, ToAccountID: &missing}, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.transaction).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateTransfer() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings", Kind: ledger.KindSavings, LedgerGroup: "Savings"})
	date := time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC)

	legs, err := models.CreateTransfer(models.DB, models.Transfer{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        dec("-150"),
		Date:          date,
		Description:   "Monthly saving",
	})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), legs, 2)

	assert.Equal(suite.T(), checking.ID, legs[0].AccountID)
	assert.True(suite.T(), legs[0].Amount.Equal(dec("-150")), "Outgoing leg amount is %s", legs[0].Amount)
	assert.Equal(suite.T(), "Personal", legs[0].LedgerGroup)

	assert.Equal(suite.T(), savings.ID, legs[1].AccountID)
	assert.True(suite.T(), legs[1].Amount.Equal(dec("150")), "Incoming leg amount is %s", legs[1].Amount)
	assert.Equal(suite.T(), "Savings", legs[1].LedgerGroup)

	for _, leg := range legs {
		assert.Equal(suite.T(), ledger.TypeTransfer, leg.Type)
		assert.Equal(suite.T(), "Monthly saving", leg.Description)
		assert.True(suite.T(), leg.Date.Equal(date))
		require.NotNil(suite.T(), leg.FromAccountID)
		require.NotNil(suite.T(), leg.ToAccountID)
		assert.Equal(suite.T(), checking.ID, *leg.FromAccountID)
		assert.Equal(suite.T(), savings.ID, *leg.ToAccountID)
	}
}

func (suite *TestSuiteStandard) TestCreateTransferIsAtomic() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})

	_, err := models.CreateTransfer(models.DB, models.Transfer{
		FromAccountID: checking.ID,
		ToAccountID:   uuid.New(),
		Amount:        dec("10"),
	})
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count, "No leg must be stored when the transfer fails")
}

func (suite *TestSuiteStandard) TestCreateTransferValidation() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings", Kind: ledger.KindSavings})

	_, err := models.CreateTransfer(models.DB, models.Transfer{FromAccountID: checking.ID, ToAccountID: checking.ID, Amount: dec("1")})
	assert.ErrorIs(suite.T(), err, models.ErrTransferSameAccount)

	_, err = models.CreateTransfer(models.DB, models.Transfer{FromAccountID: checking.ID, ToAccountID: savings.ID})
	assert.ErrorIs(suite.T(), err, models.ErrTransferAmountZero)
}

func (suite *TestSuiteStandard) TestDeleteTransferLegRemovesOtherLeg() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings", Kind: ledger.KindSavings})
	date := time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC)

	first, err := models.CreateTransfer(models.DB, models.Transfer{FromAccountID: checking.ID, ToAccountID: savings.ID, Amount: dec("100"), Date: date})
	require.Nil(suite.T(), err)
	_, err = models.CreateTransfer(models.DB, models.Transfer{FromAccountID: checking.ID, ToAccountID: savings.ID, Amount: dec("40"), Date: date.AddDate(0, 0, 1)})
	require.Nil(suite.T(), err)

	var incoming models.Transaction
	require.Nil(suite.T(), models.DB.First(&incoming, first[1].ID).Error)
	require.Nil(suite.T(), models.DB.Delete(&incoming).Error)

	var remaining []models.Transaction
	require.Nil(suite.T(), models.DB.Order("amount ASC").Find(&remaining).Error)
	require.Len(suite.T(), remaining, 2, "only the legs of the second transfer must be left")
	for _, leg := range remaining {
		assert.True(suite.T(), leg.Amount.Abs().Equal(dec("40")), "leg amount is %s", leg.Amount)
	}
}

func (suite *TestSuiteStandard) TestDeleteTransferLegKeepsSameDayTransfer() {
	checking := suite.createTestAccount(models.Account{Name: "Checking"})
	savings := suite.createTestAccount(models.Account{Name: "Savings", Kind: ledger.KindSavings})
	date := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	first, err := models.CreateTransfer(models.DB, models.Transfer{FromAccountID: checking.ID, ToAccountID: savings.ID, Amount: dec("50"), Date: date})
	require.Nil(suite.T(), err)
	second, err := models.CreateTransfer(models.DB, models.Transfer{FromAccountID: checking.ID, ToAccountID: savings.ID, Amount: dec("70"), Date: date})
	require.Nil(suite.T(), err)

	require.NotNil(suite.T(), first[0].TransferID)
	assert.Equal(suite.T(), first[0].TransferID, first[1].TransferID)
	assert.NotEqual(suite.T(), *first[0].TransferID, *second[0].TransferID)

	require.Nil(suite.T(), models.DB.Delete(&first[0]).Error)

	var remaining []models.Transaction
	require.Nil(suite.T(), models.DB.Order("amount ASC").Find(&remaining).Error)
	require.Len(suite.T(), remaining, 2, "both legs of the second transfer must be left")
	assert.Equal(suite.T(), second[0].ID, remaining[0].ID)
	assert.True(suite.T(), remaining[0].Amount.Equal(dec("-70")), "outgoing leg amount is %s", remaining[0].Amount)
	assert.Equal(suite.T(), second[1].ID, remaining[1].ID)
	assert.True(suite.T(), remaining[1].Amount.Equal(dec("70")), "incoming leg amount is %s", remaining[1].Amount)
}
