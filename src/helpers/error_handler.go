package helpers

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type StockTickerError struct {
	Message string
	Cause   error
}

func (e *StockTickerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StockTickerError) Unwrap() error {
	return e.Cause
}

type ConfigurationError struct{ StockTickerError }
type NetworkError struct{ StockTickerError }
type DataSourceError struct{ StockTickerError }

// ValidationError rejects user input; Reason selects the error page.
type ValidationError struct {
	StockTickerError
	Reason string
}

// APIStatusError is returned when the upstream API answers with a non-200 status.
type APIStatusError struct {
	StockTickerError
	StatusCode int
}

// -----------------------------------------------------------------------------
// Error reasons shown on the error page
// -----------------------------------------------------------------------------

const (
	ReasonNoPrices          = "no_prices"
	ReasonInvalidDates      = "invalid_dates"
	ReasonInvalidTicker     = "invalid_ticker"
	ReasonInvalidDateFormat = "invalid_date_format"
	ReasonUnknownPrice      = "unknown_price"
	ReasonNoData            = "no_data"
	ReasonAPIError          = "api_error"
	ReasonDataSource        = "data_source"
	ReasonRateLimited       = "rate_limited"
	ReasonUnknown           = "unknown"
)

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewValidationError(reason, message string) *ValidationError {
	return &ValidationError{StockTickerError: StockTickerError{Message: message}, Reason: reason}
}

func NewAPIStatusError(statusCode int, body string) *APIStatusError {
	msg := fmt.Sprintf("api returned status %d", statusCode)
	if body != "" {
		msg = fmt.Sprintf("%s: %s", msg, truncate(body, 200))
	}
	return &APIStatusError{StockTickerError: StockTickerError{Message: msg}, StatusCode: statusCode}
}

func NewDataSourceError(message string, cause error) *DataSourceError {
	return &DataSourceError{StockTickerError{Message: message, Cause: cause}}
}

func NewNetworkError(message string, cause error) *NetworkError {
	return &NetworkError{StockTickerError{Message: message, Cause: cause}}
}

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{StockTickerError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

// ErrorReason maps any pipeline error onto an error-page reason.
func ErrorReason(err error) string {
	var vErr *ValidationError
	var apiErr *APIStatusError
	var dsErr *DataSourceError
	var netErr *NetworkError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &vErr):
		return vErr.Reason
	case errors.As(err, &apiErr):
		return ReasonAPIError
	case errors.As(err, &dsErr), errors.As(err, &netErr):
		return ReasonDataSource
	default:
		return ReasonUnknown
	}
}

// -----------------------------------------------------------------------------

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
