package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"stock-ticker/src/helpers"
	"stock-ticker/src/models"
	"stock-ticker/src/utils"
)

// Form keys shared by the HTML form, the redirect query and the JSON API.
const (
	KeyTicker    = "ticker"
	KeyStartDate = "start_date"
	KeyEndDate   = "end_date"
	KeyPrices    = "prices"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,12}$`)

// -----------------------------------------------------------------------------

// ParseChartRequest validates a submitted form. Prices are checked before dates.
func ParseChartRequest(values url.Values) (models.MChartRequest, error) {
	var req models.MChartRequest

	fields, err := parseFields(values[KeyPrices])
	if err != nil {
		return req, err
	}

	ticker := strings.ToUpper(strings.TrimSpace(values.Get(KeyTicker)))
	if !tickerPattern.MatchString(ticker) {
		return req, helpers.NewValidationError(helpers.ReasonInvalidTicker,
			fmt.Sprintf("invalid ticker %q", values.Get(KeyTicker)))
	}

	start, err := utils.ParseDate(strings.TrimSpace(values.Get(KeyStartDate)))
	if err != nil {
		return req, helpers.NewValidationError(helpers.ReasonInvalidDateFormat,
			fmt.Sprintf("invalid start date %q", values.Get(KeyStartDate)))
	}
	end, err := utils.ParseDate(strings.TrimSpace(values.Get(KeyEndDate)))
	if err != nil {
		return req, helpers.NewValidationError(helpers.ReasonInvalidDateFormat,
			fmt.Sprintf("invalid end date %q", values.Get(KeyEndDate)))
	}
	if end.Before(start) {
		return req, helpers.NewValidationError(helpers.ReasonInvalidDates,
			"end date is before start date")
	}

	req.Ticker = ticker
	req.StartDate = start
	req.EndDate = end
	req.Fields = fields
	return req, nil
}

// -----------------------------------------------------------------------------

func parseFields(raw []string) ([]models.MPriceField, error) {
	var fields []models.MPriceField
	seen := make(map[models.MPriceField]bool)

	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		f, err := models.ParsePriceField(r)
		if err != nil {
			return nil, helpers.NewValidationError(helpers.ReasonUnknownPrice, err.Error())
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return nil, helpers.NewValidationError(helpers.ReasonNoPrices, "no price field selected")
	}
	return fields, nil
}

// -----------------------------------------------------------------------------

// EncodeChartRequest is the inverse of ParseChartRequest, used to build redirect URLs.
func EncodeChartRequest(req models.MChartRequest) url.Values {
	values := url.Values{}
	values.Set(KeyTicker, req.Ticker)
	values.Set(KeyStartDate, req.StartDate.Format(utils.DateLayout))
	values.Set(KeyEndDate, req.EndDate.Format(utils.DateLayout))
	for _, f := range req.Fields {
		values.Add(KeyPrices, string(f))
	}
	return values
}
