package models

// MFilteredContract is a put that passed every screening threshold,
// reshaped for the response payload.
type MFilteredContract struct {
	Symbol           string  `json:"symbol"`
	Strike           float64 `json:"strike"`
	Bid              float64 `json:"bid"`
	Ask              float64 `json:"ask"`
	Volume           int     `json:"volume"`
	OpenInterest     int     `json:"open_interest"`
	Delta            float64 `json:"delta"`
	IV               float64 `json:"iv"`
	Theta            float64 `json:"theta"`
	Expiration       string  `json:"expiration"`
	AnnualizedReturn string  `json:"annualized_return"`
}

// MExpirationResult holds the analytics for one expiration date.
// PutCallRatio is nil either when the chain was empty or when call volume
// summed to zero: the ratio is mathematically +Inf then, which JSON cannot
// encode. The Outlook still reflects the Bearish reading in that case.
type MExpirationResult struct {
	Options      []MFilteredContract `json:"options"`
	PutCallRatio *float64            `json:"put_call_ratio"`
	Outlook      string              `json:"outlook"`
	MaxPain      *float64            `json:"max_pain"`
	ExpectedMove *float64            `json:"expected_move"`
}

// MOptionsResponse is the success payload of /get_options.
type MOptionsResponse struct {
	CurrentPrice float64                      `json:"current_price"`
	Expirations  map[string]MExpirationResult `json:"expirations"`
}

// MAnalysisSnapshot is what the websocket hub broadcasts after each
// completed analysis.
type MAnalysisSnapshot struct {
	Type      string            `json:"type"`
	Symbol    string            `json:"symbol"`
	Response  *MOptionsResponse `json:"response"`
	Timestamp int64             `json:"timestamp"`
}
