package interfaces

import (
	"context"

	"stock-ticker/src/models"
)

// -----------------------------------------------------------------------------
// IDataSource interface for fetching daily stock data from external providers.
// -----------------------------------------------------------------------------

type IDataSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// FetchDailySeries retrieves the full daily history of a symbol,
	// sorted by ascending date.
	FetchDailySeries(ctx context.Context, symbol string) (*models.MTimeSeries, error)
}
