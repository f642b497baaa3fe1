package clock

import "time"

// Clock supplies the current time. The scheduler, due-card queries and
// streak computation all take their notion of "today" from here so
// tests can pin it.
type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// StartOfDay truncates t to midnight in its own location. All due-date
// comparisons are date-only, so both sides go through this first.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey formats t as the YYYY-MM-DD key used by the progress ledger.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
