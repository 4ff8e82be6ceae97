package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ledgerbook/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errInvalidTime   = errors.New("the time parameter must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
	errInvalidMonths = errors.New("the months parameter must be a number between 1 and 120")
)

// Account errors
var (
	errRegisterTransactionNotFound = fmt.Errorf("%w transaction of this account matching your query", models.ErrResourceNotFound)
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Transaction errors
var (
	errTransactionTypeInvalid = errors.New("transactions must be of type expense or income, use the transfers endpoint for transfers")
	errTransferUpdate         = errors.New("transfer legs cannot be updated, delete the transfer and create a new one")
)
