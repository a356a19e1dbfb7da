package cssdocs

import "context"

// Fetcher retrieves the raw body of an ask API query.
type Fetcher interface {
	// Fetch issues a GET request for url and returns the response body.
	// The context controls timeout and cancellation.
	// Transport failures and non-200 responses return ETRANSPORT.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
