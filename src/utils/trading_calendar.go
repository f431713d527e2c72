package utils

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar calculates trading days using scmhub/calendar.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// GetCalendar picks the exchange calendar from the ticker suffix (VOD.L -> xlon).
func GetCalendar(symbol string) *TradingCalendar {
	// See scmhub/calendar for supported MICs (ISO 10383)
	mic := "xnys" // Default US NYSE
	symbol = strings.ToUpper(symbol)
	if strings.HasSuffix(symbol, ".L") || strings.HasSuffix(symbol, ".LON") {
		mic = "xlon"
	} else if strings.HasSuffix(symbol, ".PA") {
		mic = "xpar"
	} else if strings.HasSuffix(symbol, ".DE") || strings.HasSuffix(symbol, ".DEX") {
		mic = "xfra"
	} else if strings.HasSuffix(symbol, ".AS") {
		mic = "xams"
	} else if strings.HasSuffix(symbol, ".BR") {
		mic = "xbru"
	} else if strings.HasSuffix(symbol, ".MI") {
		mic = "xmil"
	} else if strings.HasSuffix(symbol, ".MC") {
		mic = "xmad"
	} else if strings.HasSuffix(symbol, ".ST") {
		mic = "xsto"
	} else if strings.HasSuffix(symbol, ".CO") {
		mic = "xcse"
	} else if strings.HasSuffix(symbol, ".HE") {
		mic = "xhel"
	} else if strings.HasSuffix(symbol, ".VI") {
		mic = "xwbo"
	} else if strings.HasSuffix(symbol, ".SW") {
		mic = "xswx"
	} else if strings.HasSuffix(symbol, ".TO") || strings.HasSuffix(symbol, ".TRT") {
		mic = "xtse"
	} else if strings.HasSuffix(symbol, ".V") {
		mic = "xtsx"
	} else if strings.HasSuffix(symbol, ".T") {
		mic = "xtks"
	} else if strings.HasSuffix(symbol, ".HK") {
		mic = "xhkg"
	} else if strings.HasSuffix(symbol, ".AX") {
		mic = "xasx"
	} else if strings.HasSuffix(symbol, ".KS") {
		mic = "xkrx"
	} else if strings.HasSuffix(symbol, ".TW") {
		mic = "xtai"
	} else if strings.HasSuffix(symbol, ".SS") {
		mic = "xshg"
	} else if strings.HasSuffix(symbol, ".SZ") {
		mic = "xshe"
	}

	// scmhub/calendar.GetCalendar returns a calendar by MIC
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		// Fallback to xnys if not found
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		// Simple Mon-Fri fallback, reported by MarketScheduler
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC // Worst case
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsTradingDay reports whether date is a session. Years the exchange calendar
// does not cover use the Mon-Fri rule.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	// Normalize to timezone if available
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback || !tc.covers(date.Year()) {
		return isWeekday(date.Weekday())
	}
	// Library handles IsHoliday / IsBusinessDay
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// CountTradingDays counts sessions in the inclusive date range [start, end].
// Only the years covered by the exchange calendar are walked day by day.
func (tc *TradingCalendar) CountTradingDays(start, end time.Time) int {
	start = TruncateToDate(start)
	end = TruncateToDate(end)
	if end.Before(start) {
		return 0
	}
	if tc.Fallback || tc.Calendar == nil {
		return countWeekdays(start, end)
	}

	firstYear, lastYear := tc.Calendar.Years()
	coveredStart := time.Date(firstYear, 1, 1, 0, 0, 0, 0, time.UTC)
	coveredEnd := time.Date(lastYear, 12, 31, 0, 0, 0, 0, time.UTC)

	count := 0
	if start.Before(coveredStart) {
		count += countWeekdays(start, minDate(end, coveredStart.AddDate(0, 0, -1)))
	}
	if end.After(coveredEnd) {
		count += countWeekdays(maxDate(start, coveredEnd.AddDate(0, 0, 1)), end)
	}

	to := minDate(end, coveredEnd)
	for d := maxDate(start, coveredStart); !d.After(to); d = d.AddDate(0, 0, 1) {
		if tc.Calendar.IsBusinessDay(tc.atNoon(d)) {
			count++
		}
	}
	return count
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) covers(year int) bool {
	if tc.Calendar == nil {
		return false
	}
	first, last := tc.Calendar.Years()
	return year >= first && year <= last
}

// -----------------------------------------------------------------------------

// countWeekdays counts Mon-Fri days in [start, end]; both are UTC midnights.
func countWeekdays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}

	days := int((end.Unix()-start.Unix())/86400) + 1
	count := days / 7 * 5
	first := start.Weekday()
	for i := 0; i < days%7; i++ {
		if isWeekday((first + time.Weekday(i)) % 7) {
			count++
		}
	}
	return count
}

func isWeekday(w time.Weekday) bool {
	return w != time.Saturday && w != time.Sunday
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// -----------------------------------------------------------------------------

// atNoon places a calendar date at local noon so zone conversion keeps the day.
func (tc *TradingCalendar) atNoon(d time.Time) time.Time {
	loc := tc.Timezone
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
}
