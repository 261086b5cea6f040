package entities

import "time"

// RateTable holds exchange rates, all expressed relative to a single base
// currency. A table is built once per fetch and never mutated afterwards.
type RateTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Date      time.Time          `json:"date,omitempty"` // zero for latest rates
	FetchedAt time.Time          `json:"fetched_at"`
}

func NewRateTable(base string, rates map[string]float64, date time.Time) *RateTable {
	return &RateTable{
		Base:      base,
		Rates:     rates,
		Date:      date,
		FetchedAt: time.Now(),
	}
}

// Rate returns the rate for code relative to the table base.
// The base itself always converts at 1.0.
func (t *RateTable) Rate(code string) (float64, bool) {
	if code == t.Base {
		return 1.0, true
	}
	rate, ok := t.Rates[code]
	return rate, ok
}

// QuotaStatus reports the remote API usage quota for the current month.
type QuotaStatus struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}
