package market

import "context"

// Gateway is the price-discovery service the ledger consumes. It is
// implemented outside this module (HTTP client, fixture, test stub);
// the ledger only ever sees resolved quotes.
//
// A missing quote is not an error: GetQuote returns (nil, nil) and
// GetQuotes leaves a nil hole. Valuation falls back to cost basis for
// assets without a quote.
type Gateway interface {
	// GetQuote returns the current quote for one asset, or nil if the
	// service does not know the asset.
	GetQuote(ctx context.Context, assetID string) (*Quote, error)

	// GetQuotes returns one entry per requested id, preserving input
	// order. Unknown ids yield nil entries.
	GetQuotes(ctx context.Context, assetIDs []string) ([]*Quote, error)

	// SearchAssets returns quotes matching a free-text query.
	SearchAssets(ctx context.Context, text string) ([]Quote, error)
}
