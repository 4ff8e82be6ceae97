package v1

import (
	"fmt"
	"strings"

	"github.com/ledgerbook/backend/internal/ledger"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

func stringFilters(db, query *gorm.DB, setFields []string, name, description, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if description != "" {
		query = query.Where("description LIKE ?", fmt.Sprintf("%%%s%%", description))
	} else if slices.Contains(setFields, "Description") {
		query = query.Where("description = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("description LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}

// ledgerFilter restricts the query to a ledger group. "All" and the empty
// string do not filter.
func ledgerFilter(query *gorm.DB, group string) *gorm.DB {
	if strings.TrimSpace(group) == "" || ledger.IsAllGroups(group) {
		return query
	}

	return query.Where("LOWER(TRIM(ledger_group)) = ?", strings.ToLower(strings.TrimSpace(group)))
}

// pageLimit returns the limit for a list, defaulting to 50.
func pageLimit(setFields []string, requested int) int {
	if slices.Contains(setFields, "Limit") {
		return requested
	}

	return 50
}
