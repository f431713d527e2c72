package utils

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"stock-ticker/src/logger"
)

func TestMarketSchedulerReusesCalendars(t *testing.T) {
	ms := NewMarketScheduler(logger.NewLoggerTo(io.Discard, "ERROR", "scheduler"))

	first := ms.CalendarFor("aapl")
	second := ms.CalendarFor(" AAPL ")
	if first != second {
		t.Error("expected the cached calendar for the same symbol")
	}
	if len(ms.Calendars) != 1 {
		t.Errorf("cached %d calendars, want 1", len(ms.Calendars))
	}
}

func TestMarketSchedulerTradingSessions(t *testing.T) {
	ms := NewMarketScheduler(logger.NewLoggerTo(io.Discard, "ERROR", "scheduler"))

	// a weekend holds no sessions on any calendar
	if got := ms.TradingSessions("MSFT", date(t, "2024-07-06"), date(t, "2024-07-07")); got != 0 {
		t.Errorf("weekend sessions = %d, want 0", got)
	}
	if got := ms.TradingSessions("MSFT", date(t, "2024-07-08"), date(t, "2024-07-12")); got != 5 {
		t.Errorf("full week sessions = %d, want 5", got)
	}
}

func TestMarketSchedulerLogsFallbackOnItsLogger(t *testing.T) {
	var buf bytes.Buffer
	ms := NewMarketScheduler(logger.NewLoggerTo(&buf, "INFO", "scheduler"))

	fallback := &TradingCalendar{Fallback: true, Timezone: time.UTC}
	ms.mu.Lock()
	ms.register("XYZ.ZZ", fallback)
	ms.mu.Unlock()

	out := buf.String()
	for _, want := range []string{`"component":"scheduler"`, `"level":"warn"`, "XYZ.ZZ uses the weekday fallback calendar"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
	if ms.CalendarFor("xyz.zz") != fallback {
		t.Error("registered calendar not returned")
	}
}
