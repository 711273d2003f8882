package utils

import (
	"time"

	"github.com/scmhub/calendar"
)

// -----------------------------------------------------------------------------

// MarketCalendar answers whether the US options market is currently open.
// The upstream serves US-listed options only, so a single NYSE calendar
// covers everything; a Mon-Fri 09:30-16:00 NY-time fallback applies when
// the calendar cannot be loaded.
type MarketCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

func NewMarketCalendar() *MarketCalendar {
	cal := calendar.GetCalendar("xnys")
	if cal == nil {
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &MarketCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &MarketCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (mc *MarketCalendar) IsTradingDay(date time.Time) bool {
	if mc.Timezone != nil {
		date = date.In(mc.Timezone)
	}

	if mc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return mc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpen checks if the market is open at a specific moment.
func (mc *MarketCalendar) IsOpen(t time.Time) bool {
	if mc.Timezone != nil {
		t = t.In(mc.Timezone)
	}

	if mc.Fallback {
		if !mc.IsTradingDay(t) {
			return false
		}

		hour := t.Hour()
		minute := t.Minute()

		// 9:30 - 16:00 NY Time
		return (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16
	}

	return mc.Calendar.IsOpen(t)
}
