package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"options-observer/src/helpers"
	"options-observer/src/logger"
	"options-observer/src/models"
)

func newTestFacade() *AnalysisFacade {
	cfg := &models.MConfig{
		Filter: models.MFilterConfig{
			MaxDelta:        0.15,
			MinVolume:       250,
			MinOpenInterest: 500,
			MaxStrike:       30,
		},
	}
	return NewAnalysisFacade(cfg, logger.NewLogger("ERROR", "test"))
}

// -----------------------------------------------------------------------------

func TestSelectExpirations(t *testing.T) {
	facade := newTestFacade()
	today := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	selected, err := facade.SelectExpirations([]string{"2024-01-01", "2024-06-15", "2024-12-31"}, today)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-06-15", "2024-12-31"}, selected)
}

func TestSelectExpirations_TooFewFutureDates(t *testing.T) {
	facade := newTestFacade()
	today := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := facade.SelectExpirations([]string{"2024-01-01", "2024-06-15"}, today)
	require.Error(t, err)
	require.True(t, helpers.IsInsufficientDataError(err))
}

// -----------------------------------------------------------------------------

func TestAnalyzeExpiration(t *testing.T) {
	facade := newTestFacade()
	today := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	chain := []models.MOptionContract{
		// Qualifies: put, |delta| 0.10, volume 300, OI 600, strike 15.
		{
			Symbol: "XYZ240315P00015000", OptionType: models.OptionTypePut,
			Strike: 15, Bid: 0.30, Ask: 0.35, Volume: 300, OpenInterest: 600,
			ExpirationDate: "2024-03-15",
			Greeks:         &models.MGreeks{Delta: -0.10, Theta: -0.02},
		},
		// Screened out: delta past the threshold.
		{
			Symbol: "XYZ240315P00018000", OptionType: models.OptionTypePut,
			Strike: 18, Bid: 0.60, Ask: 0.65, Volume: 300, OpenInterest: 600,
			ExpirationDate: "2024-03-15",
			Greeks:         &models.MGreeks{Delta: -0.20},
		},
		// ATM straddle legs at strike 20 (current price 20.00).
		{
			Symbol: "XYZ240315C00020000", OptionType: models.OptionTypeCall,
			Strike: 20, Bid: 0.50, Ask: 0.55, Volume: 100, OpenInterest: 50,
			ExpirationDate: "2024-03-15",
			Greeks:         &models.MGreeks{Delta: 0.45},
		},
		{
			Symbol: "XYZ240315P00020000", OptionType: models.OptionTypePut,
			Strike: 20, Bid: 0.45, Ask: 0.50, Volume: 200, OpenInterest: 60,
			ExpirationDate: "2024-03-15",
			Greeks:         &models.MGreeks{Delta: -0.45},
		},
	}

	result, err := facade.AnalyzeExpiration(chain, 20.00, "2024-03-15", today)
	require.NoError(t, err)

	// Screening: one survivor, with its return annualized over 14 days.
	// (0.30 / 15) * (365 / 14) = 0.52142... -> "52.14%"
	require.Len(t, result.Options, 1)
	require.Equal(t, "XYZ240315P00015000", result.Options[0].Symbol)
	require.Equal(t, "52.14%", result.Options[0].AnnualizedReturn)

	// Put volume 800 vs call volume 100.
	require.NotNil(t, result.PutCallRatio)
	require.InDelta(t, 8.0, *result.PutCallRatio, 1e-12)
	require.Equal(t, "Bearish", result.Outlook)

	require.NotNil(t, result.MaxPain)

	// ATM straddle at strike 20: 0.50 + 0.45.
	require.NotNil(t, result.ExpectedMove)
	require.InDelta(t, 0.95, *result.ExpectedMove, 1e-12)
}

func TestAnalyzeExpiration_EmptyChainDegrades(t *testing.T) {
	facade := newTestFacade()

	result, err := facade.AnalyzeExpiration(nil, 20.00, "2024-03-15", time.Now())
	require.NoError(t, err)

	require.NotNil(t, result.Options)
	require.Empty(t, result.Options)
	require.Equal(t, OutlookUnknown, result.Outlook)
	require.Nil(t, result.PutCallRatio)
	require.Nil(t, result.MaxPain)
	require.Nil(t, result.ExpectedMove)
}

func TestAnalyzeExpiration_InfiniteRatioOmitted(t *testing.T) {
	facade := newTestFacade()
	today := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Puts only: the ratio is +Inf, which JSON cannot carry, so the field
	// is dropped while the outlook still reads Bearish.
	chain := []models.MOptionContract{
		{
			Symbol: "XYZ240315P00015000", OptionType: models.OptionTypePut,
			Strike: 15, Bid: 0.30, Volume: 300, OpenInterest: 600,
			ExpirationDate: "2024-03-15",
			Greeks:         &models.MGreeks{Delta: -0.10},
		},
	}

	result, err := facade.AnalyzeExpiration(chain, 20.00, "2024-03-15", today)
	require.NoError(t, err)
	require.Nil(t, result.PutCallRatio)
	require.Equal(t, "Bearish", result.Outlook)
}

func TestAnalyzeExpiration_NoSurvivorsStillAnalyzed(t *testing.T) {
	facade := newTestFacade()
	today := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	chain := []models.MOptionContract{
		{
			Symbol: "XYZ240315C00020000", OptionType: models.OptionTypeCall,
			Strike: 20, Bid: 0.50, Volume: 100, OpenInterest: 50,
			ExpirationDate: "2024-03-15",
			Greeks:         &models.MGreeks{Delta: 0.45},
		},
		{
			Symbol: "XYZ240315P00020000", OptionType: models.OptionTypePut,
			Strike: 20, Bid: 0.45, Volume: 50, OpenInterest: 60,
			ExpirationDate: "2024-03-15",
			Greeks:         &models.MGreeks{Delta: -0.45},
		},
	}

	result, err := facade.AnalyzeExpiration(chain, 20.00, "2024-03-15", today)
	require.NoError(t, err)

	require.NotNil(t, result.Options)
	require.Empty(t, result.Options)
	require.Equal(t, "Bullish", result.Outlook)
	require.NotNil(t, result.MaxPain)
	require.NotNil(t, result.ExpectedMove)
}

func TestAnalyzeExpiration_BadExpirationDate(t *testing.T) {
	facade := newTestFacade()

	chain := []models.MOptionContract{
		{
			Symbol: "XYZ", OptionType: models.OptionTypePut,
			Strike: 15, Bid: 0.30, Volume: 300, OpenInterest: 600,
			Greeks: &models.MGreeks{Delta: -0.10},
		},
	}

	_, err := facade.AnalyzeExpiration(chain, 20.00, "not-a-date", time.Now())
	require.Error(t, err)
}
