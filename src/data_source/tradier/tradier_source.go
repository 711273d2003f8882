package tradier

import (
	"encoding/json"
	"fmt"

	"options-observer/src/helpers"
	"options-observer/src/interfaces"
	"options-observer/src/logger"
	"options-observer/src/models"
)

// -----------------------------------------------------------------------------

// TradierSource fetches quotes, expiration dates and option chains from
// the Tradier market-data API. Pure I/O adapter: request shaping and
// error translation only, no screening or analytics.
type TradierSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewTradierSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *TradierSource {
	return &TradierSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "TradierSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *TradierSource) Name() string {
	return "tradier"
}

// -----------------------------------------------------------------------------

func (s *TradierSource) endpoint(path string) string {
	return s.Config.Upstream.BaseURL + path
}

// -----------------------------------------------------------------------------
// Wire shapes. Tradier collapses single-element collections: `quote` may
// be an object instead of an array, `date` a bare string. The list types
// below decode both forms.
// -----------------------------------------------------------------------------

type quoteItem struct {
	Symbol string   `json:"symbol"`
	Last   *float64 `json:"last"`
}

type quoteList []quoteItem

func (q *quoteList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var items []quoteItem
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*q = items
		return nil
	}
	var item quoteItem
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*q = quoteList{item}
	return nil
}

type quoteResponse struct {
	Quotes struct {
		Quote quoteList `json:"quote"`
	} `json:"quotes"`
}

// -----------------------------------------------------------------------------

type dateList []string

func (d *dateList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var dates []string
		if err := json.Unmarshal(data, &dates); err != nil {
			return err
		}
		*d = dates
		return nil
	}
	var date string
	if err := json.Unmarshal(data, &date); err != nil {
		return err
	}
	*d = dateList{date}
	return nil
}

type expirationsResponse struct {
	Expirations struct {
		Date dateList `json:"date"`
	} `json:"expirations"`
}

// -----------------------------------------------------------------------------

type chainResponse struct {
	Options struct {
		Option []models.MOptionContract `json:"option"`
	} `json:"options"`
}

// -----------------------------------------------------------------------------

// GetPrice returns the last-traded price for a symbol.
func (s *TradierSource) GetPrice(symbol string) (float64, error) {
	params := map[string]string{
		"symbols": symbol,
		"greeks":  "false",
	}

	body, err := s.Network.Get(s.endpoint("/markets/quotes"), params)
	if err != nil {
		return 0, err
	}

	var resp quoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, helpers.NewTransportError("parsing quote response failed", err)
	}

	if len(resp.Quotes.Quote) == 0 || resp.Quotes.Quote[0].Last == nil {
		return 0, helpers.NewInsufficientDataError(fmt.Sprintf("no price available for %s", symbol))
	}

	price := *resp.Quotes.Quote[0].Last
	s.Logger.Debug("Price for %s: %.2f", symbol, price)
	return price, nil
}

// -----------------------------------------------------------------------------

// GetExpirations returns every listed expiration date for a symbol, in
// upstream order.
func (s *TradierSource) GetExpirations(symbol string) ([]string, error) {
	params := map[string]string{
		"symbol":          symbol,
		"includeAllRoots": "true",
		"strikes":         "false",
	}

	body, err := s.Network.Get(s.endpoint("/markets/options/expirations"), params)
	if err != nil {
		return nil, err
	}

	var resp expirationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, helpers.NewTransportError("parsing expirations response failed", err)
	}

	s.Logger.Debug("Expirations for %s: %d", symbol, len(resp.Expirations.Date))
	return resp.Expirations.Date, nil
}

// -----------------------------------------------------------------------------

// GetChain returns the full option chain for one expiration.
func (s *TradierSource) GetChain(symbol, expiration string) ([]models.MOptionContract, error) {
	params := map[string]string{
		"symbol":     symbol,
		"expiration": expiration,
		"greeks":     "true",
	}

	body, err := s.Network.Get(s.endpoint("/markets/options/chains"), params)
	if err != nil {
		return nil, err
	}

	var resp chainResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, helpers.NewTransportError("parsing chain response failed", err)
	}

	s.Logger.Debug("Chain for %s %s: %d contracts", symbol, expiration, len(resp.Options.Option))
	return resp.Options.Option, nil
}
