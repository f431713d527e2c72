package server

import (
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"stock-ticker/src/helpers"
	"stock-ticker/src/utils"
)

var errorMessages = map[string]string{
	helpers.ReasonNoPrices:          "Please select at least one price type to plot.",
	helpers.ReasonInvalidDates:      "The end date must not be before the start date.",
	helpers.ReasonInvalidTicker:     "Please enter a valid ticker symbol.",
	helpers.ReasonInvalidDateFormat: "Dates must be entered as YYYY-MM-DD.",
	helpers.ReasonUnknownPrice:      "An unknown price type was selected.",
	helpers.ReasonNoData:            "No prices were found for this ticker in the selected date range.",
	helpers.ReasonAPIError:          "The stock price API returned an error.",
	helpers.ReasonDataSource:        "The stock price API could not provide data for this ticker.",
	helpers.ReasonRateLimited:       "Too many charts requested. Please wait a minute and try again.",
}

const genericErrorMessage = "Something went wrong while building the chart."

// -----------------------------------------------------------------------------

func errorMessage(reason string) string {
	if msg, ok := errorMessages[reason]; ok {
		return msg
	}
	return genericErrorMessage
}

// -----------------------------------------------------------------------------

func errorURL(reason string) string {
	return "/error?" + url.Values{"reason": {reason}}.Encode()
}

// -----------------------------------------------------------------------------

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return "$" + humanize.FormatFloat("#,###.##", v)
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%+.2f%%", v)
		},
		"comma": func(v int) string {
			return humanize.Comma(int64(v))
		},
		"date": func(t time.Time) string {
			return t.Format(utils.DateLayout)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}
}
