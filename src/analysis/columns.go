package analysis

import (
	"fmt"
	"time"

	"stock-ticker/src/models"
)

// DateColumn is the index column of every price table.
const DateColumn = "Date"

// priceDisplayMap renames provider labels to the names shown on the chart.
var priceDisplayMap = map[string]string{
	"1. open":  "Open",
	"2. high":  "High",
	"3. low":   "Low",
	"4. close": "Close",
}

// -----------------------------------------------------------------------------

// RenameColumns maps API field names to display names, keeping order.
func RenameColumns(apiKeys []string) ([]string, error) {
	out := make([]string, len(apiKeys))
	for i, k := range apiKeys {
		name, ok := priceDisplayMap[k]
		if !ok {
			return nil, fmt.Errorf("no display name for column %q", k)
		}
		out[i] = name
	}
	return out, nil
}

// -----------------------------------------------------------------------------

// DisplayName returns the chart label of a price field.
func DisplayName(f models.MPriceField) string {
	return priceDisplayMap[f.APIKey()]
}

// -----------------------------------------------------------------------------

// SelectFields builds the Date-indexed table of the requested fields, in request order.
func SelectFields(symbol string, prices []models.MDailyPrice, fields []models.MPriceField) (*models.MPriceTable, error) {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.APIKey()
	}

	names, err := RenameColumns(keys)
	if err != nil {
		return nil, err
	}

	table := &models.MPriceTable{
		Symbol:  symbol,
		Columns: append([]string{DateColumn}, names...),
		Dates:   make([]time.Time, len(prices)),
		Values:  make([][]float64, len(fields)),
	}

	for c := range fields {
		table.Values[c] = make([]float64, len(prices))
	}

	for r, p := range prices {
		table.Dates[r] = p.Date
		for c, f := range fields {
			table.Values[c][r] = f.Value(p).InexactFloat64()
		}
	}

	return table, nil
}
