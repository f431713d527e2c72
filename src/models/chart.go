package models

import "time"

// MChartRequest carries one form submission through a single request.
type MChartRequest struct {
	Ticker    string        `json:"ticker"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Fields    []MPriceField `json:"prices"`
}

// -----------------------------------------------------------------------------

// MPriceTable is a date-indexed table of the selected, renamed columns.
// Columns[0] is always "Date"; Values[i] belongs to Columns[i+1].
type MPriceTable struct {
	Symbol  string      `json:"symbol"`
	Columns []string    `json:"columns"`
	Dates   []time.Time `json:"dates"`
	Values  [][]float64 `json:"values"`
}

// Len returns the number of rows.
func (t *MPriceTable) Len() int {
	return len(t.Dates)
}

// -----------------------------------------------------------------------------

// MFieldSummary describes one price column over the selected range.
type MFieldSummary struct {
	Column        string  `json:"column"`
	First         float64 `json:"first"`
	Last          float64 `json:"last"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"std_dev"`
	PercentChange float64 `json:"percent_change"`
}

// -----------------------------------------------------------------------------

// MChartSnippet is a rendered chart split into its HTML element and script.
type MChartSnippet struct {
	Element string
	Script  string
}

// -----------------------------------------------------------------------------

// MChartResult is everything the dashboard needs for one request.
type MChartResult struct {
	Request     MChartRequest   `json:"request"`
	Table       *MPriceTable    `json:"table"`
	Summaries   []MFieldSummary `json:"summaries"`
	TradingDays int             `json:"trading_days"`
	Snippet     MChartSnippet   `json:"-"`
}
