package ledger

import "github.com/google/uuid"

// Dedup removes transactions with an id that was already seen.
//
// The first occurrence wins and the input order is preserved.
func Dedup(txs []Transaction) []Transaction {
	seen := make(map[uuid.UUID]struct{}, len(txs))
	out := make([]Transaction, 0, len(txs))

	for _, t := range txs {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}

	return out
}
