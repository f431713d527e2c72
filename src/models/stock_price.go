package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MDailyPrice is one trading day of a daily time series.
type MDailyPrice struct {
	Date  time.Time       `json:"date"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}

// MTimeSeries holds a symbol's daily prices sorted by ascending, unique date.
type MTimeSeries struct {
	Symbol        string        `json:"symbol"`
	LastRefreshed string        `json:"last_refreshed"`
	TimeZone      string        `json:"time_zone"`
	Prices        []MDailyPrice `json:"prices"`
}

// Dates returns the index of the series.
func (s *MTimeSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Prices))
	for i, p := range s.Prices {
		dates[i] = p.Date
	}
	return dates
}
