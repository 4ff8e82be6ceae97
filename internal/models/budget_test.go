package models_test

import (
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) categoryBudget(parent, group string) models.Budget {
	var budget models.Budget
	err := models.DB.Where(&models.Budget{ParentCategory: parent, LedgerGroup: group}).Where("sub_category = ?", "").First(&budget).Error
	require.Nil(suite.T(), err, "Category level budget does not exist")
	return budget
}

func (suite *TestSuiteStandard) TestBudgetDefaults() {
	budget := suite.createTestBudget(models.Budget{})

	assert.Equal(suite.T(), ledger.BudgetExpense, budget.Type)
	assert.Equal(suite.T(), ledger.CycleMonthly, budget.Cycle)
}

func (suite *TestSuiteStandard) TestBudgetValidation() {
	tests := []struct {
		name   string
		budget models.Budget
		err    error
	}{
		{"No category", models.Budget{ParentCategory: " "}, models.ErrCategoryEmpty},
		{"Reserved ledger", models.Budget{ParentCategory: "Food", LedgerGroup: "All"}, models.ErrLedgerNameReserved},
		{"Unknown type", models.Budget{ParentCategory: "Food", Type: "Savings"}, ledger.ErrUnknownBudgetType},
		{"Unknown cycle", models.Budget{ParentCategory: "Food", Cycle: "Fortnightly"}, ledger.ErrUnknownBudgetCycle},
	}

	for _, tt := range tests {
		err := models.DB.Create(&tt.budget).Error
		assert.ErrorIs(suite.T(), err, tt.err, tt.name)
	}
}

func (suite *TestSuiteStandard) TestBudgetUnique() {
	_ = suite.createTestBudget(models.Budget{SubCategory: "Groceries", AllocatedAmount: dec("100")})

	err := models.DB.Create(&models.Budget{ParentCategory: "Food", SubCategory: "Groceries", LedgerGroup: "Personal"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetNotUnique)
}

func (suite *TestSuiteStandard) TestBudgetRollup() {
	groceries := suite.createTestBudget(models.Budget{SubCategory: "Groceries", AllocatedAmount: dec("200")})
	assert.True(suite.T(), suite.categoryBudget("Food", "Personal").AllocatedAmount.Equal(dec("200")))

	_ = suite.createTestBudget(models.Budget{SubCategory: "Dining", AllocatedAmount: dec("50.5")})
	assert.True(suite.T(), suite.categoryBudget("Food", "Personal").AllocatedAmount.Equal(dec("250.5")))

	// Other ledgers do not count
	_ = suite.createTestBudget(models.Budget{SubCategory: "Dining", LedgerGroup: "Business", AllocatedAmount: dec("1000")})
	assert.True(suite.T(), suite.categoryBudget("Food", "Personal").AllocatedAmount.Equal(dec("250.5")))
	assert.True(suite.T(), suite.categoryBudget("Food", "Business").AllocatedAmount.Equal(dec("1000")))

	groceries.AllocatedAmount = dec("300")
	require.Nil(suite.T(), models.DB.Save(&groceries).Error)
	assert.True(suite.T(), suite.categoryBudget("Food", "Personal").AllocatedAmount.Equal(dec("350.5")))

	require.Nil(suite.T(), models.DB.Delete(&groceries).Error)
	assert.True(suite.T(), suite.categoryBudget("Food", "Personal").AllocatedAmount.Equal(dec("50.5")))
}

func (suite *TestSuiteStandard) TestBudgetMoveUpdatesOldCategory() {
	dining := suite.createTestBudget(models.Budget{SubCategory: "Dining", AllocatedAmount: dec("120")})
	_ = suite.createTestBudget(models.Budget{SubCategory: "Groceries", AllocatedAmount: dec("200")})
	assert.True(suite.T(), suite.categoryBudget("Food", "Personal").AllocatedAmount.Equal(dec("320")))

	dining.ParentCategory = "Leisure"
	require.Nil(suite.T(), models.DB.Save(&dining).Error)

	assert.True(suite.T(), suite.categoryBudget("Food", "Personal").AllocatedAmount.Equal(dec("200")))
	assert.True(suite.T(), suite.categoryBudget("Leisure", "Personal").AllocatedAmount.Equal(dec("120")))
}

func (suite *TestSuiteStandard) TestBudgetLedgerBudget() {
	budget := suite.createTestBudget(models.Budget{SubCategory: "Groceries", AllocatedAmount: dec("80"), Cycle: ledger.CycleWeekly})

	l := budget.LedgerBudget()
	assert.Equal(suite.T(), budget.ID, l.ID)
	assert.Equal(suite.T(), "Food", l.ParentCategory)
	assert.Equal(suite.T(), "Groceries", l.SubCategory)
	assert.Equal(suite.T(), ledger.CycleWeekly, l.Cycle)
	assert.True(suite.T(), l.SpentAmount.IsZero())
}

func (suite *TestSuiteStandard) TestBudgetCategoryCaseInsensitive() {
	suite.createTestBudget(models.Budget{ParentCategory: "Food", SubCategory: "Groceries", AllocatedAmount: dec("200")})
	dining := suite.createTestBudget(models.Budget{ParentCategory: " food ", SubCategory: "Dining", LedgerGroup: "personal", AllocatedAmount: dec("100")})

	assert.Equal(suite.T(), "Food", dining.ParentCategory)
	assert.Equal(suite.T(), "Personal", dining.LedgerGroup)

	var categoryRows []models.Budget
	require.Nil(suite.T(), models.DB.Where("sub_category = ?", "").Find(&categoryRows).Error)
	require.Len(suite.T(), categoryRows, 1, "categories differing in case must share one category level budget")
	assert.Equal(suite.T(), "Food", categoryRows[0].ParentCategory)
	assert.True(suite.T(), dec("300").Equal(categoryRows[0].AllocatedAmount), "allocation is %s", categoryRows[0].AllocatedAmount)

	duplicate := models.Budget{ParentCategory: "FOOD", SubCategory: "groceries", LedgerGroup: "Personal", AllocatedAmount: dec("1")}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetNotUnique)

	// Other ledgers keep their own spelling
	business := suite.createTestBudget(models.Budget{ParentCategory: "food", LedgerGroup: "Business", AllocatedAmount: dec("5")})
	assert.Equal(suite.T(), "food", business.ParentCategory)
}
