package ledger

import (
	"strings"

	"golang.org/x/text/cases"
)

// AllGroups is the ledger group scope that matches every group.
const AllGroups = "All"

// NormalizeGroup returns the comparison key for a ledger group name.
func NormalizeGroup(name string) string {
	// A Caser is stateful, so a new one is used for every call
	return cases.Fold().String(strings.TrimSpace(name))
}

// IsAllGroups reports whether the scope selects every ledger group.
func IsAllGroups(scope string) bool {
	return NormalizeGroup(scope) == NormalizeGroup(AllGroups)
}

// SameGroup reports whether group belongs to scope.
//
// Names are compared after trimming whitespace and case folding.
// A scope of "All" matches every group.
func SameGroup(scope, group string) bool {
	if IsAllGroups(scope) {
		return true
	}

	return NormalizeGroup(scope) == NormalizeGroup(group)
}

// FilterGroup returns the transactions that belong to scope.
func FilterGroup(txs []Transaction, scope string) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if SameGroup(scope, t.LedgerGroup) {
			out = append(out, t)
		}
	}

	return out
}
