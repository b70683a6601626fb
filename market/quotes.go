package market

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrQuoteNotFound is returned by Get for assets with no cached quote.
var ErrQuoteNotFound = errors.New("quote not found")

// PriceLookup resolves an asset id to its latest known price. The
// second return reports whether a price was available.
type PriceLookup func(assetID string) (decimal.Decimal, bool)

// QuoteStore caches the latest quote per asset. It is the boundary
// between the external Gateway and the ledger: callers push quotes in
// with Set or Refresh, and valuation reads them through Lookup.
type QuoteStore struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{quotes: make(map[string]Quote)}
}

func (s *QuoteStore) Set(q Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.ID] = q
}

func (s *QuoteStore) Get(assetID string) (Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[assetID]
	if !ok {
		return Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// Lookup returns a PriceLookup backed by the store's current contents.
func (s *QuoteStore) Lookup() PriceLookup {
	return func(assetID string) (decimal.Decimal, bool) {
		q, err := s.Get(assetID)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return q.PriceUSD, true
	}
}

// Refresh pulls fresh quotes for the given ids from the gateway and
// caches them. Missing quotes (nil holes in the batch response) are
// skipped; any previously cached quote for those ids is kept as-is.
func (s *QuoteStore) Refresh(ctx context.Context, gw Gateway, assetIDs []string) error {
	if len(assetIDs) == 0 {
		return nil
	}

	quotes, err := gw.GetQuotes(ctx, assetIDs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range quotes {
		if q == nil {
			continue
		}
		s.quotes[q.ID] = *q
	}
	return nil
}
