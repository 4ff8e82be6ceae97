package v1

import (
	"strings"
	"time"

	"github.com/ledgerbook/backend/internal/ledger"
	"github.com/ledgerbook/backend/internal/models"
)

// Settings configure how the v1 API computes reports.
type Settings struct {
	Location     *time.Location // Location for calendar days and months
	BillsPattern string         // Glob for the parent categories of bills
}

var settings = Settings{
	Location:     time.UTC,
	BillsPattern: ledger.DefaultBillsPattern,
}

// Configure sets the settings for all v1 handlers.
//
// It must be called before the router serves requests.
func Configure(s Settings) {
	if s.Location == nil {
		s.Location = time.UTC
	}

	if s.BillsPattern == "" {
		s.BillsPattern = ledger.DefaultBillsPattern
	}

	settings = s
}

func service() ledger.Service {
	return ledger.NewService(models.NewStore(models.DB), settings.BillsPattern)
}

func now() time.Time {
	return time.Now().In(settings.Location)
}

// parseTime parses a date or timestamp from a query parameter.
//
// Dates are interpreted as midnight in the configured location.
// The empty string is the current time.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now(), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", s, settings.Location); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errInvalidTime
	}

	return t.In(settings.Location), nil
}

// scope returns the ledger group and the reference time of a query.
func (q QueryScope) scope() (string, time.Time, error) {
	group := strings.TrimSpace(q.Ledger)
	if group == "" {
		group = ledger.AllGroups
	}

	t, err := parseTime(q.Time)
	if err != nil {
		return "", time.Time{}, err
	}

	return group, t, nil
}
