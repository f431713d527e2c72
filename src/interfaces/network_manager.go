package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for outbound HTTP requests.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a single GET request to the specified URL with query parameters.
	// Returns the response body, or *helpers.APIStatusError for a non-200 status.
	Get(ctx context.Context, url string, params map[string]string) ([]byte, error)
}
