package v1

import (
	"net/url"

	"github.com/ledgerbook/backend/internal/uuid"
)

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// QueryScope selects the ledger group and the reference time of a
// computation.
type QueryScope struct {
	Ledger string `form:"ledger" example:"Personal"`  // Ledger group, defaults to "All"
	Time   string `form:"time" example:"2025-05-31"` // Reference date, defaults to now
}

// queryEscape escapes a value for the query string of a link.
func queryEscape(s string) string {
	return url.QueryEscape(s)
}
