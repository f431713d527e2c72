package utils

import (
	"strings"
	"sync"
	"time"

	"stock-ticker/src/logger"
)

// MarketScheduler maps symbols to exchange calendars, loading each calendar once.
type MarketScheduler struct {
	Calendars map[string]*TradingCalendar
	Logger    *logger.Logger
	mu        sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(l *logger.Logger) *MarketScheduler {
	return &MarketScheduler{
		Calendars: make(map[string]*TradingCalendar),
		Logger:    l,
	}
}

// -----------------------------------------------------------------------------

// CalendarFor returns the calendar of symbol, building it on first use.
func (ms *MarketScheduler) CalendarFor(symbol string) *TradingCalendar {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	ms.mu.RLock()
	cal, ok := ms.Calendars[symbol]
	ms.mu.RUnlock()
	if ok {
		return cal
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if cal, ok := ms.Calendars[symbol]; ok {
		return cal
	}
	return ms.register(symbol, GetCalendar(symbol))
}

// -----------------------------------------------------------------------------

// register stores cal for symbol; callers hold ms.mu.
func (ms *MarketScheduler) register(symbol string, cal *TradingCalendar) *TradingCalendar {
	ms.Calendars[symbol] = cal

	if cal.Fallback {
		ms.Logger.Warning("MarketScheduler: %s uses the weekday fallback calendar", symbol)
	} else {
		ms.Logger.Debug("MarketScheduler: mapped %s to %s", symbol, cal.Timezone)
	}
	return cal
}

// -----------------------------------------------------------------------------

// TradingSessions counts the sessions of symbol's exchange in [start, end].
func (ms *MarketScheduler) TradingSessions(symbol string, start, end time.Time) int {
	return ms.CalendarFor(symbol).CountTradingDays(start, end)
}
