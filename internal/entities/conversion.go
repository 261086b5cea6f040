package entities

import "time"

// ConversionRequest is one user-initiated conversion of Amount units of From
// into To.
type ConversionRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// ConversionResult carries the converted amount together with the rate that
// was actually applied.
type ConversionResult struct {
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
}

// Conversion is one completed conversion kept in the history log.
type Conversion struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Result    float64   `json:"result"`
	Rate      float64   `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
}

// RateComparison compares a dated rate for a currency pair against the
// current one.
type RateComparison struct {
	From           string    `json:"from"`
	To             string    `json:"to"`
	Date           time.Time `json:"date"`
	HistoricalRate float64   `json:"historical_rate"`
	CurrentRate    float64   `json:"current_rate"`
	ChangePct      float64   `json:"change_pct"`
}
