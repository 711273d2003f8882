package analysis

import (
	"fmt"
	"math"
	"time"

	"options-observer/src/analysis/core"
	"options-observer/src/helpers"
	"options-observer/src/logger"
	"options-observer/src/models"
)

// OutlookUnknown is the sentiment label for an expiration whose chain
// came back empty.
const OutlookUnknown = "Unable to determine"

// How many expirations a request analyzes.
const ExpirationCount = 2

// -----------------------------------------------------------------------------
// AnalysisFacade
// -----------------------------------------------------------------------------

// AnalysisFacade runs the per-expiration pipeline: threshold screening
// plus the four chain analytics.
type AnalysisFacade struct {
	Config *models.MConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(cfg *models.MConfig, log *logger.Logger) *AnalysisFacade {
	return &AnalysisFacade{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// SelectExpirations picks the two chronologically nearest strictly-future
// expirations, preserving upstream order.
func (a *AnalysisFacade) SelectExpirations(dates []string, today time.Time) ([]string, error) {
	selected := core.SelectNearestFuture(dates, today, ExpirationCount)
	if len(selected) < ExpirationCount {
		return nil, helpers.NewInsufficientDataError("not enough future expirations available")
	}
	return selected, nil
}

// -----------------------------------------------------------------------------

// AnalyzeExpiration screens the chain and computes the analytics for one
// expiration date. An empty chain is not an error: it degrades to an
// empty result so the other expiration stays useful.
func (a *AnalysisFacade) AnalyzeExpiration(chain []models.MOptionContract, currentPrice float64, expiration string, today time.Time) (models.MExpirationResult, error) {
	if len(chain) == 0 {
		a.Logger.Warning("Empty chain for expiration %s", expiration)
		return models.MExpirationResult{
			Options: []models.MFilteredContract{},
			Outlook: OutlookUnknown,
		}, nil
	}

	ratio := core.PutCallRatio(chain)
	outlook := core.InterpretPutCallRatio(ratio)

	// +Inf has no JSON encoding; the outlook still carries the reading.
	var ratioPtr *float64
	if !math.IsInf(ratio, 1) {
		r := ratio
		ratioPtr = &r
	}

	var maxPainPtr *float64
	if mp, ok := core.MaxPain(chain); ok {
		maxPainPtr = &mp
	}

	var movePtr *float64
	if mv, ok := core.ExpectedMove(chain, currentPrice); ok {
		movePtr = &mv
	}

	days, err := core.DaysToExpiration(expiration, today)
	if err != nil {
		return models.MExpirationResult{}, fmt.Errorf("invalid expiration date %q: %w", expiration, err)
	}

	filtered := core.FilterPuts(chain, a.Config.Filter)
	for i := range filtered {
		ret, err := core.AnnualizedReturn(filtered[i].Bid, filtered[i].Strike, days)
		if err != nil {
			return models.MExpirationResult{}, fmt.Errorf("annualized return for %s: %w", filtered[i].Symbol, err)
		}
		filtered[i].AnnualizedReturn = fmt.Sprintf("%.2f%%", ret*100)
	}
	if filtered == nil {
		filtered = []models.MFilteredContract{}
	}

	a.Logger.Info("Expiration %s: %d/%d contracts passed screening", expiration, len(filtered), len(chain))

	return models.MExpirationResult{
		Options:      filtered,
		PutCallRatio: ratioPtr,
		Outlook:      outlook,
		MaxPain:      maxPainPtr,
		ExpectedMove: movePtr,
	}, nil
}
