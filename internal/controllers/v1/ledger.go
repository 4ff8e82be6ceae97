package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/internal/httputil"
	"github.com/ledgerbook/backend/internal/models"
)

// RegisterLedgerRoutes registers the routes for ledgers with
// the RouterGroup that is passed.
func RegisterLedgerRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsLedgerList)
		r.GET("", GetLedgers)
		r.POST("", CreateLedgers)
	}

	// Ledger with ID
	{
		r.OPTIONS("/:id", OptionsLedgerDetail)
		r.GET("/:id", GetLedger)
		r.PATCH("/:id", UpdateLedger)
		r.DELETE("/:id", DeleteLedger)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledgers
// @Success		204
// @Router			/v1/ledgers [options]
func OptionsLedgerList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledgers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/ledgers/{id} [options]
func OptionsLedgerDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Ledger{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create ledgers
// @Description	Creates new ledgers
// @Tags			Ledgers
// @Produce		json
// @Success		201		{object}	LedgerCreateResponse
// @Failure		400		{object}	LedgerCreateResponse
// @Failure		500		{object}	LedgerCreateResponse
// @Param			ledgers	body		[]LedgerEditable	true	"Ledgers"
// @Router			/v1/ledgers [post]
func CreateLedgers(c *gin.Context) {
	var editables []LedgerEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LedgerCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := LedgerCreateResponse{}

	for _, editable := range editables {
		l := editable.model()
		err = models.DB.Create(&l).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newLedger(c, l)
		r.Data = append(r.Data, LedgerResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List ledgers
// @Description	Returns all ledgers, ordered by their position
// @Tags			Ledgers
// @Produce		json
// @Success		200	{object}	LedgerListResponse
// @Failure		500	{object}	LedgerListResponse
// @Router			/v1/ledgers [get]
func GetLedgers(c *gin.Context) {
	var ledgers []models.Ledger
	err := models.DB.Order("position ASC, name ASC").Find(&ledgers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Ledger, 0)
	for _, l := range ledgers {
		data = append(data, newLedger(c, l))
	}

	c.JSON(http.StatusOK, LedgerListResponse{Data: data})
}

// @Summary		Get ledger
// @Description	Returns a specific ledger
// @Tags			Ledgers
// @Produce		json
// @Success		200	{object}	LedgerResponse
// @Failure		400	{object}	LedgerResponse
// @Failure		404	{object}	LedgerResponse
// @Failure		500	{object}	LedgerResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/ledgers/{id} [get]
func GetLedger(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	var l models.Ledger
	err = models.DB.First(&l, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	data := newLedger(c, l)
	c.JSON(http.StatusOK, LedgerResponse{Data: &data})
}

// @Summary		Update ledger
// @Description	Renames or moves a ledger. Renaming moves all accounts, transactions, budgets and categories to the new name.
// @Tags			Ledgers
// @Produce		json
// @Success		200		{object}	LedgerResponse
// @Failure		400		{object}	LedgerResponse
// @Failure		404		{object}	LedgerResponse
// @Failure		500		{object}	LedgerResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			ledger	body		LedgerEditable	true	"Ledger"
// @Router			/v1/ledgers/{id} [patch]
func UpdateLedger(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	var l models.Ledger
	err = models.DB.First(&l, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	editable := LedgerEditable{Name: l.Name, Position: l.Position}
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	l.Position = editable.Position
	err = l.Rename(models.DB, editable.Name)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	data := newLedger(c, l)
	c.JSON(http.StatusOK, LedgerResponse{Data: &data})
}

// @Summary		Delete ledger
// @Description	Deletes a ledger together with its categories and budgets. Ledgers that still have accounts cannot be deleted.
// @Tags			Ledgers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/ledgers/{id} [delete]
func DeleteLedger(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var l models.Ledger
	err = models.DB.First(&l, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&l).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
