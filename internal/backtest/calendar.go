package backtest

import (
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar answers trading-day questions for the forward window.
// When the requested MIC is unknown it falls back to plain Mon-Fri.
type TradingCalendar struct {
	cal      *calendar.Calendar
	loc      *time.Location
	fallback bool
}

// NewCalendar loads the exchange calendar for a MIC code (ISO 10383),
// e.g. "xnys" for NYSE.
func NewCalendar(mic string) *TradingCalendar {
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}
	if cal == nil {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			loc = time.UTC
		}
		return &TradingCalendar{fallback: true, loc: loc}
	}
	return &TradingCalendar{cal: cal, loc: cal.Loc}
}

// IsTradingDay reports whether the exchange is open on the given date.
func (c *TradingCalendar) IsTradingDay(t time.Time) bool {
	t = t.In(c.loc)
	if c.fallback {
		wd := t.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
	return c.cal.IsBusinessDay(t)
}

// WindowEnd returns the start of the nth trading day strictly after t.
// A signal observed on a Friday with n=1 evaluates against Monday's prices.
func (c *TradingCalendar) WindowEnd(t time.Time, n int) time.Time {
	day := time.Date(t.In(c.loc).Year(), t.In(c.loc).Month(), t.In(c.loc).Day(), 0, 0, 0, 0, c.loc)
	for remaining := n; remaining > 0; {
		day = day.AddDate(0, 0, 1)
		if c.IsTradingDay(day) {
			remaining--
		}
	}
	return day
}
