package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/httputil"
	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
		r.OPTIONS("/grouped", OptionsTransactionGrouped)
		r.GET("/grouped", GetTransactionsGrouped)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions/grouped [options]
func OptionsTransactionGrouped(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Transaction{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transactions
// @Description	Creates expenses and income. Transfers are created with the transfers endpoint.
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		404				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		err = editable.validate()
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		transaction := editable.model()
		err = models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionListResponse
// @Failure		400			{object}	TransactionListResponse
// @Failure		500			{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			account		query	string	false	"Filter by account ID"
// @Param			type		query	string	false	"Filter by type"
// @Param			category	query	string	false	"Filter by parent category"
// @Param			ledger		query	string	false	"Filter by ledger group"
// @Param			fromDate	query	string	false	"Transactions at and after this date"
// @Param			untilDate	query	string	false	"Transactions up to the end of this date"
// @Param			search		query	string	false	"Glob for description and payee"
// @Param			offset		query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q, err := filter.query(models.DB.Order("date DESC, id DESC"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	matching := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if matchesSearch(filter.Search, t.Description, t.Payee) {
			matching = append(matching, t)
		}
	}

	limit := pageLimit(setFields, filter.Limit)
	page := paginate(matching, filter.Offset, limit)

	// When there are no resources, we want an empty list, not null
	data := make([]Transaction, 0)
	for _, t := range page {
		data = append(data, newTransaction(c, t))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(matching)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// query adds the conditions of the filter that the database can evaluate.
func (f TransactionQueryFilter) query(q *gorm.DB) (*gorm.DB, error) {
	if f.AccountID != "" {
		id, err := uuid.Parse(f.AccountID)
		if err != nil {
			return nil, httputil.ErrInvalidUUID
		}
		q = q.Where("account_id = ?", id)
	}

	if f.Type != "" {
		kind, err := ledger.ParseTransactionType(f.Type)
		if err != nil {
			return nil, err
		}
		q = q.Where("type = ?", kind)
	}

	if f.ParentCategory != "" {
		q = q.Where("LOWER(parent_category) = ?", strings.ToLower(strings.TrimSpace(f.ParentCategory)))
	}

	if f.FromDate != "" {
		from, err := parseTime(f.FromDate)
		if err != nil {
			return nil, err
		}
		q = q.Where("date >= ?", from.UTC())
	}

	if f.UntilDate != "" {
		until, err := parseTime(f.UntilDate)
		if err != nil {
			return nil, err
		}
		end := time.Date(until.Year(), until.Month(), until.Day()+1, 0, 0, 0, 0, until.Location())
		q = q.Where("date < ?", end.UTC())
	}

	return ledgerFilter(q, f.Ledger), nil
}

// matchesSearch reports whether any of the fields matches the search glob.
//
// The match ignores case. A search without wildcards matches anywhere.
func matchesSearch(search string, fields ...string) bool {
	pattern := strings.ToLower(strings.TrimSpace(search))
	if pattern == "" {
		return true
	}

	if !strings.Contains(pattern, glob.GLOB) {
		pattern = glob.GLOB + pattern + glob.GLOB
	}

	for _, field := range fields {
		if glob.Glob(pattern, strings.ToLower(field)) {
			return true
		}
	}

	return false
}

func paginate(transactions []models.Transaction, offset uint, limit int) []models.Transaction {
	if int(offset) >= len(transactions) {
		return nil
	}
	transactions = transactions[offset:]

	if limit >= 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}

	return transactions
}

// @Summary		Grouped transactions
// @Description	Returns the transactions of a ledger group in buckets per day or month, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	TransactionGroupedResponse
// @Failure		400		{object}	TransactionGroupedResponse
// @Failure		500		{object}	TransactionGroupedResponse
// @Param			ledger	query		string	false	"Ledger group, defaults to All"
// @Param			by		query		string	false	"day or month, defaults to day"
// @Router			/v1/transactions/grouped [get]
func GetTransactionsGrouped(c *gin.Context) {
	var query struct {
		QueryScope
		By string `form:"by"`
	}
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionGroupedResponse{
			Error: &s,
		})
		return
	}

	mode := ledger.ByDay
	if query.By != "" {
		var err error
		mode, err = ledger.ParseGroupMode(query.By)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, TransactionGroupedResponse{
				Error: &s,
			})
			return
		}
	}

	group, _, err := query.scope()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionGroupedResponse{
			Error: &s,
		})
		return
	}

	buckets, err := service().Grouped(group, mode, settings.Location)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionGroupedResponse{
			Error: &s,
		})
		return
	}

	data := make([]TransactionBucket, 0, len(buckets))
	for _, b := range buckets {
		bucket := TransactionBucket{
			Date:         b.Date,
			Label:        b.Label,
			Transactions: make([]ReportTransaction, 0, len(b.Transactions)),
		}

		for _, t := range b.Transactions {
			bucket.Transactions = append(bucket.Transactions, newReportTransaction(c, t))
		}

		data = append(data, bucket)
	}

	c.JSON(http.StatusOK, TransactionGroupedResponse{Data: data})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an expense or income. Only values to be updated need to be specified.
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	if transaction.Type == ledger.TypeTransfer {
		s := errTransferUpdate.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{
			Error: &s,
		})
		return
	}

	// Fields missing in the body keep their current value
	editable := transactionEditable(transaction)
	err = httputil.BindData(c, &editable)
	if err == nil {
		err = editable.validate()
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	updated := editable.model()
	updated.DefaultModel = transaction.DefaultModel

	err = models.DB.Save(&updated).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, updated)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction. Deleting one leg of a transfer deletes the other leg, too.
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
