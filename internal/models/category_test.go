package models_test

import (
	"github.com/ledgerbook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryValidation() {
	err := models.DB.Create(&models.Category{Name: "  ", LedgerGroup: "Personal"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryEmpty)

	err = models.DB.Create(&models.Category{Name: "Food"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrLedgerNameEmpty)

	_ = suite.createTestCategory(models.Category{Name: "Food"})
	err = models.DB.Create(&models.Category{Name: "Food", LedgerGroup: "Personal"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestSubcategories() {
	food := suite.createTestCategory(models.Category{Name: "Food"})
	housing := suite.createTestCategory(models.Category{Name: "Housing"})

	for _, name := range []string{"Groceries", "Dining"} {
		require.Nil(suite.T(), models.DB.Create(&models.Subcategory{CategoryID: food.ID, Name: name}).Error)
	}
	require.Nil(suite.T(), models.DB.Create(&models.Subcategory{CategoryID: housing.ID, Name: "Rent"}).Error)

	err := models.DB.Create(&models.Subcategory{CategoryID: food.ID, Name: "Dining"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrSubcategoryNameNotUnique)

	err = models.DB.Create(&models.Subcategory{CategoryID: food.ID, Name: ""}).Error
	assert.ErrorIs(suite.T(), err, models.ErrSubcategoryNameEmpty)

	subcategories, err := food.Subcategories(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), subcategories, 2)
	assert.Equal(suite.T(), "Dining", subcategories[0].Name)
	assert.Equal(suite.T(), "Groceries", subcategories[1].Name)
}

func (suite *TestSuiteStandard) TestSubcategoryRequiresCategory() {
	category := suite.createTestCategory(models.Category{Name: "Food"})
	require.Nil(suite.T(), models.DB.Delete(&category).Error)

	err := models.DB.Create(&models.Subcategory{CategoryID: category.ID, Name: "Groceries"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrReferenceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryDeleteRemovesSubcategories() {
	food := suite.createTestCategory(models.Category{Name: "Food"})
	housing := suite.createTestCategory(models.Category{Name: "Housing"})
	require.Nil(suite.T(), models.DB.Create(&models.Subcategory{CategoryID: food.ID, Name: "Groceries"}).Error)
	require.Nil(suite.T(), models.DB.Create(&models.Subcategory{CategoryID: housing.ID, Name: "Rent"}).Error)

	require.Nil(suite.T(), models.DB.Delete(&food).Error)

	var subcategories []models.Subcategory
	require.Nil(suite.T(), models.DB.Find(&subcategories).Error)
	require.Len(suite.T(), subcategories, 1)
	assert.Equal(suite.T(), "Rent", subcategories[0].Name)
}
