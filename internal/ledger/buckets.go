package ledger

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerbook/backend/internal/types"
	"golang.org/x/exp/slices"
)

// GroupMode selects the bucket size for GroupTransactions.
type GroupMode string

const (
	ByDay   GroupMode = "day"
	ByMonth GroupMode = "month"
)

func ParseGroupMode(s string) (GroupMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ByDay):
		return ByDay, nil
	case string(ByMonth):
		return ByMonth, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownGroupMode, s)
}

// Bucket is a day or month and the transactions dated in it.
type Bucket struct {
	Date         time.Time
	Label        string
	Transactions []Transaction
}

// GroupTransactions buckets the transactions by day or month in loc.
//
// Buckets and their members are sorted newest first. Members with the same
// date are ordered by id so that the result does not depend on the input order.
func GroupTransactions(txs []Transaction, mode GroupMode, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.UTC
	}

	index := make(map[int64]int)
	buckets := make([]Bucket, 0)

	for _, t := range Dedup(txs) {
		var key time.Time
		var label string

		if mode == ByMonth {
			key = types.MonthOf(t.Date.In(loc)).Start()
			label = key.Format("Jan")
		} else {
			key = types.StartOfDay(t.Date, loc)
			label = key.Format("Mon, Jan 2")
		}

		i, ok := index[key.Unix()]
		if !ok {
			i = len(buckets)
			index[key.Unix()] = i
			buckets = append(buckets, Bucket{Date: key, Label: label})
		}
		buckets[i].Transactions = append(buckets[i].Transactions, t)
	}

	slices.SortFunc(buckets, func(a, b Bucket) int {
		return b.Date.Compare(a.Date)
	})

	for i := range buckets {
		slices.SortStableFunc(buckets[i].Transactions, compareDescending)
	}

	return buckets
}

// compareDescending orders transactions newest first, then by id.
func compareDescending(a, b Transaction) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}
