package models

// Option type strings as Tradier reports them.
const (
	OptionTypePut  = "put"
	OptionTypeCall = "call"
)

// MOptionContract is one leg of an option chain as received upstream.
type MOptionContract struct {
	Symbol         string   `json:"symbol"`
	OptionType     string   `json:"option_type"`
	Strike         float64  `json:"strike"`
	Bid            float64  `json:"bid"`
	Ask            float64  `json:"ask"`
	Last           float64  `json:"last"`
	Volume         int      `json:"volume"`
	OpenInterest   int      `json:"open_interest"`
	ExpirationDate string   `json:"expiration_date"`
	Greeks         *MGreeks `json:"greeks"`
}

// MGreeks carries the greeks sub-record. The IV variants are pointers
// because the upstream omits or nulls them on thinly traded contracts.
type MGreeks struct {
	Delta float64  `json:"delta"`
	Gamma float64  `json:"gamma"`
	Theta float64  `json:"theta"`
	Vega  float64  `json:"vega"`
	MidIV *float64 `json:"mid_iv"`
	BidIV *float64 `json:"bid_iv"`
	AskIV *float64 `json:"ask_iv"`
}

// IsPut reports whether the contract is a put.
func (c *MOptionContract) IsPut() bool {
	return c.OptionType == OptionTypePut
}

// IsCall reports whether the contract is a call.
func (c *MOptionContract) IsCall() bool {
	return c.OptionType == OptionTypeCall
}

// Delta returns the contract delta, 0 when greeks are missing.
func (c *MOptionContract) Delta() float64 {
	if c.Greeks == nil {
		return 0
	}
	return c.Greeks.Delta
}

// Theta returns the contract theta, 0 when greeks are missing.
func (c *MOptionContract) Theta() float64 {
	if c.Greeks == nil {
		return 0
	}
	return c.Greeks.Theta
}

// ImpliedVolatility selects mid IV, falling back to ask-side IV, else 0.
func (c *MOptionContract) ImpliedVolatility() float64 {
	if c.Greeks == nil {
		return 0
	}
	if c.Greeks.MidIV != nil {
		return *c.Greeks.MidIV
	}
	if c.Greeks.AskIV != nil {
		return *c.Greeks.AskIV
	}
	return 0
}
