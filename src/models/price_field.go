package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MPriceField is one of the four selectable price columns.
type MPriceField string

const (
	FieldOpen  MPriceField = "open"
	FieldHigh  MPriceField = "high"
	FieldLow   MPriceField = "low"
	FieldClose MPriceField = "close"
)

// AllPriceFields lists the fields in API order.
var AllPriceFields = []MPriceField{FieldOpen, FieldHigh, FieldLow, FieldClose}

var apiKeys = map[MPriceField]string{
	FieldOpen:  "1. open",
	FieldHigh:  "2. high",
	FieldLow:   "3. low",
	FieldClose: "4. close",
}

// -----------------------------------------------------------------------------

// ParsePriceField accepts either the short name ("open") or the API key ("1. open").
func ParsePriceField(s string) (MPriceField, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, f := range AllPriceFields {
		if v == string(f) || v == apiKeys[f] {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown price field %q", s)
}

// -----------------------------------------------------------------------------

// APIKey returns the label the provider uses for this field.
func (f MPriceField) APIKey() string {
	return apiKeys[f]
}

// -----------------------------------------------------------------------------

// Value extracts the field from a daily record.
func (f MPriceField) Value(p MDailyPrice) decimal.Decimal {
	switch f {
	case FieldOpen:
		return p.Open
	case FieldHigh:
		return p.High
	case FieldLow:
		return p.Low
	default:
		return p.Close
	}
}
