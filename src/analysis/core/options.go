package core

import (
	"errors"
	"math"
	"sort"
	"time"

	"options-observer/src/models"
)

const dateLayout = "2006-01-02"

// -----------------------------------------------------------------------------

// dateOnly truncates a timestamp to its calendar day in UTC, so that
// expiration comparisons ignore the time of day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------

// SelectNearestFuture returns the first n dates strictly after today,
// preserving input order. Unparseable dates are skipped. The upstream
// happens to send dates ascending, but nothing here relies on that
// beyond the filtering.
func SelectNearestFuture(dates []string, today time.Time, n int) []string {
	day := dateOnly(today)

	var future []string
	for _, d := range dates {
		parsed, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if parsed.After(day) {
			future = append(future, d)
			if len(future) == n {
				break
			}
		}
	}
	return future
}

// -----------------------------------------------------------------------------

// DaysToExpiration counts whole calendar days from today to expiration.
func DaysToExpiration(expiration string, today time.Time) (int, error) {
	parsed, err := time.Parse(dateLayout, expiration)
	if err != nil {
		return 0, err
	}
	return int(parsed.Sub(dateOnly(today)).Hours() / 24), nil
}

// -----------------------------------------------------------------------------

// FilterPuts runs a single pass over the chain, keeping puts that satisfy
// every threshold. Predicates short-circuit in order: put, |delta|,
// volume, open interest, strike. Output preserves input order.
func FilterPuts(chain []models.MOptionContract, f models.MFilterConfig) []models.MFilteredContract {
	var out []models.MFilteredContract
	for i := range chain {
		c := &chain[i]
		if !c.IsPut() {
			continue
		}
		if math.Abs(c.Delta()) > f.MaxDelta {
			continue
		}
		if c.Volume < f.MinVolume {
			continue
		}
		if c.OpenInterest < f.MinOpenInterest {
			continue
		}
		if c.Strike > f.MaxStrike {
			continue
		}

		out = append(out, models.MFilteredContract{
			Symbol:       c.Symbol,
			Strike:       c.Strike,
			Bid:          c.Bid,
			Ask:          c.Ask,
			Volume:       c.Volume,
			OpenInterest: c.OpenInterest,
			Delta:        c.Delta(),
			IV:           c.ImpliedVolatility(),
			Theta:        c.Theta(),
			Expiration:   c.ExpirationDate,
		})
	}
	return out
}

// -----------------------------------------------------------------------------

// AnnualizedReturn computes (premium / strike) * (365 / daysToExpiration).
func AnnualizedReturn(premium, strike float64, daysToExpiration int) (float64, error) {
	if daysToExpiration <= 0 {
		return 0, errors.New("days to expiration must be positive")
	}
	if strike <= 0 {
		return 0, errors.New("strike must be positive")
	}
	return (premium / strike) * (365.0 / float64(daysToExpiration)), nil
}

// -----------------------------------------------------------------------------

// PutCallRatio divides total put volume by total call volume. Volume is
// never negative, so zero call volume is the only division hazard; the
// ratio is +Inf then.
func PutCallRatio(chain []models.MOptionContract) float64 {
	putVolume, callVolume := 0, 0
	for i := range chain {
		switch {
		case chain[i].IsPut():
			putVolume += chain[i].Volume
		case chain[i].IsCall():
			callVolume += chain[i].Volume
		}
	}

	if callVolume == 0 {
		return math.Inf(1)
	}
	return float64(putVolume) / float64(callVolume)
}

// -----------------------------------------------------------------------------

// InterpretPutCallRatio maps a ratio to a sentiment label.
func InterpretPutCallRatio(ratio float64) string {
	switch {
	case ratio > 1:
		return "Bearish"
	case ratio < 1:
		return "Bullish"
	default:
		return "Neutral"
	}
}

// -----------------------------------------------------------------------------

// MaxPain returns the candidate strike minimizing the open-interest
// weighted intrinsic loss to option writers. Candidates are the distinct
// strikes in the chain, scanned ascending; the first minimum wins, so
// ties break toward the lower strike.
func MaxPain(chain []models.MOptionContract) (float64, bool) {
	if len(chain) == 0 {
		return 0, false
	}

	strikeSet := make(map[float64]struct{})
	for i := range chain {
		strikeSet[chain[i].Strike] = struct{}{}
	}
	strikes := make([]float64, 0, len(strikeSet))
	for s := range strikeSet {
		strikes = append(strikes, s)
	}
	sort.Float64s(strikes)

	bestStrike := strikes[0]
	bestPain := math.Inf(1)

	for _, settle := range strikes {
		pain := 0.0
		for i := range chain {
			c := &chain[i]
			oi := float64(c.OpenInterest)
			if c.IsCall() {
				pain += math.Max(0, settle-c.Strike) * oi
			} else {
				pain += math.Max(0, c.Strike-settle) * oi
			}
		}
		if pain < bestPain {
			bestPain = pain
			bestStrike = settle
		}
	}

	return bestStrike, true
}

// -----------------------------------------------------------------------------

// ExpectedMove estimates the market's expected price move as the ATM
// straddle priced at the bid: callBid + putBid at the strike closest to
// the current price. Ties on distance break toward the first contract in
// input order. Returns false when either leg is missing at that strike.
func ExpectedMove(chain []models.MOptionContract, currentPrice float64) (float64, bool) {
	if len(chain) == 0 {
		return 0, false
	}

	atmStrike := chain[0].Strike
	bestDist := math.Abs(chain[0].Strike - currentPrice)
	for i := 1; i < len(chain); i++ {
		d := math.Abs(chain[i].Strike - currentPrice)
		if d < bestDist {
			bestDist = d
			atmStrike = chain[i].Strike
		}
	}

	var call, put *models.MOptionContract
	for i := range chain {
		c := &chain[i]
		if c.Strike != atmStrike {
			continue
		}
		if call == nil && c.IsCall() {
			call = c
		}
		if put == nil && c.IsPut() {
			put = c
		}
	}

	if call == nil || put == nil {
		return 0, false
	}
	return call.Bid + put.Bid, true
}
