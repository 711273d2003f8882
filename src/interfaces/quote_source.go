package interfaces

import "options-observer/src/models"

// -----------------------------------------------------------------------------
// IQuoteSource interface for fetching quote and options data from an
// external market-data provider.
// -----------------------------------------------------------------------------

type IQuoteSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// GetPrice returns the last-traded price for a symbol.
	GetPrice(symbol string) (float64, error)

	// -----------------------------------------------------------------------------

	// GetExpirations returns every listed expiration date for a symbol,
	// in the order the upstream reports them.
	GetExpirations(symbol string) ([]string, error)

	// -----------------------------------------------------------------------------

	// GetChain returns the full option chain (calls and puts, with
	// greeks) for one expiration date.
	GetChain(symbol, expiration string) ([]models.MOptionContract, error)
}
