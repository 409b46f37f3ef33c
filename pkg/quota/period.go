package quota

import "time"

// periodLayout formats a calendar month as "2006-01".
const periodLayout = "2006-01"

// Period identifies a calendar-month billing window in UTC.
// Periods are monotonically non-decreasing for a given identity and are
// never reused across distinct calendar months.
type Period string

// CurrentPeriod returns the billing period that contains now.
// The UTC conversion makes period boundaries independent of server
// locale, so all gateway instances agree on the current period.
func CurrentPeriod(now time.Time) Period {
	return Period(now.UTC().Format(periodLayout))
}

// Next returns the period immediately following p.
// Returns p unchanged if p is not a valid period, which only happens
// with hand-crafted values.
func (p Period) Next() Period {
	t, err := time.Parse(periodLayout, string(p))
	if err != nil {
		return p
	}
	return Period(t.AddDate(0, 1, 0).Format(periodLayout))
}

func (p Period) String() string {
	return string(p)
}
