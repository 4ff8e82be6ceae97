package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/backend/internal/httputil"
)

// RegisterReportRoutes registers the computed report endpoints with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", OptionsReport)
	r.GET("/summary", GetSummary)
	r.OPTIONS("/trend", OptionsReport)
	r.GET("/trend", GetTrend)
	r.OPTIONS("/forecast", OptionsReport)
	r.GET("/forecast", GetForecast)
	r.OPTIONS("/bills", OptionsReport)
	r.GET("/bills", GetBills)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/summary [options]
// @Router			/v1/trend [options]
// @Router			/v1/forecast [options]
// @Router			/v1/bills [options]
func OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Dashboard summary
// @Description	Returns net worth, budget utilization and the totals of the current month for a ledger group
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			ledger	query		string	false	"Ledger group, defaults to All"
// @Param			time	query		string	false	"Reference date (YYYY-MM-DD) or RFC3339 timestamp, defaults to now"
// @Router			/v1/summary [get]
func GetSummary(c *gin.Context) {
	var query QueryScope
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	group, t, err := query.scope()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &s,
		})
		return
	}

	dashboard, err := service().Summary(group, t)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Data: &Summary{
			Ledger:               group,
			Time:                 t,
			TotalAssets:          dashboard.TotalAssets,
			TotalLiabilities:     dashboard.TotalLiabilities,
			NetWorth:             dashboard.NetWorth,
			TotalAllocatedBudget: dashboard.TotalAllocatedBudget,
			SpentThisMonth:       dashboard.SpentThisMonth,
			SpentPercentage:      dashboard.SpentPercentage,
			RemainingBudget:      dashboard.RemainingBudget,
			MonthIncome:          dashboard.Month.Income,
			MonthExpense:         dashboard.Month.Expense,
			MonthBills:           dashboard.Month.Bills,
		},
	})
}

// @Summary		Monthly trend
// @Description	Returns income and expenses of the current month and the months before it, newest first
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	MonthSummaryResponse
// @Failure		400		{object}	MonthSummaryResponse
// @Failure		500		{object}	MonthSummaryResponse
// @Param			ledger	query		string	false	"Ledger group, defaults to All"
// @Param			time	query		string	false	"Reference date (YYYY-MM-DD) or RFC3339 timestamp, defaults to now"
// @Param			months	query		int		false	"Number of months, between 1 and 120. Defaults to 3."
// @Router			/v1/trend [get]
func GetTrend(c *gin.Context) {
	getMonths(c, false)
}

// @Summary		Monthly forecast
// @Description	Returns income and expenses of the current month and the months after it, oldest first
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	MonthSummaryResponse
// @Failure		400		{object}	MonthSummaryResponse
// @Failure		500		{object}	MonthSummaryResponse
// @Param			ledger	query		string	false	"Ledger group, defaults to All"
// @Param			time	query		string	false	"Reference date (YYYY-MM-DD) or RFC3339 timestamp, defaults to now"
// @Param			months	query		int		false	"Number of months, between 1 and 120. Defaults to 3."
// @Router			/v1/forecast [get]
func GetForecast(c *gin.Context) {
	getMonths(c, true)
}

func getMonths(c *gin.Context, forecast bool) {
	var query MonthQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MonthSummaryResponse{
			Error: &s,
		})
		return
	}

	group, t, err := query.scope()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MonthSummaryResponse{
			Error: &s,
		})
		return
	}

	n, err := query.months()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, MonthSummaryResponse{
			Error: &s,
		})
		return
	}

	f := service().Trend
	if forecast {
		f = service().Forecast
	}

	months, err := f(group, t, n)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthSummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, MonthSummaryResponse{Data: newMonthSummaries(months)})
}

// @Summary		Bills of the month
// @Description	Returns the bills of the current month and their total
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	BillsResponse
// @Failure		400		{object}	BillsResponse
// @Failure		500		{object}	BillsResponse
// @Param			ledger	query		string	false	"Ledger group, defaults to All"
// @Param			time	query		string	false	"Reference date (YYYY-MM-DD) or RFC3339 timestamp, defaults to now"
// @Router			/v1/bills [get]
func GetBills(c *gin.Context) {
	var query QueryScope
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BillsResponse{
			Error: &s,
		})
		return
	}

	group, t, err := query.scope()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BillsResponse{
			Error: &s,
		})
		return
	}

	bills, total, err := service().Bills(group, t)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillsResponse{
			Error: &s,
		})
		return
	}

	data := Bills{
		Total: total,
		Bills: make([]ReportTransaction, 0, len(bills)),
	}
	for _, b := range bills {
		data.Bills = append(data.Bills, newReportTransaction(c, b))
	}

	c.JSON(http.StatusOK, BillsResponse{Data: &data})
}
