package public

import (
	"sort"
	"time"

	"github.com/welezhka/converter/internal/entities"
)

type rateView struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
	Inverse  float64 `json:"inverse"`
}

type ratesResponse struct {
	Base      string     `json:"base"`
	Date      string     `json:"date,omitempty"`
	FetchedAt time.Time  `json:"fetched_at"`
	Rates     []rateView `json:"rates"`
}

type currencyView struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Display string `json:"display"`
}

type convertResponse struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
	Rate   float64 `json:"rate"`
}

func newCurrenciesResponse(currencies []entities.Currency) []currencyView {
	views := make([]currencyView, 0, len(currencies))
	for _, c := range currencies {
		views = append(views, currencyView{
			Code:    c.Code,
			Name:    c.Name,
			Symbol:  c.Symbol,
			Display: c.DisplayName(),
		})
	}

	return views
}

func newRatesResponse(table *entities.RateTable) ratesResponse {
	views := make([]rateView, 0, len(table.Rates))
	for currency, rate := range table.Rates {
		var inverse float64
		if rate != 0 {
			inverse = 1 / rate
		}
		views = append(views, rateView{
			Currency: currency,
			Rate:     rate,
			Inverse:  inverse,
		})
	}

	sort.Slice(views, func(i, j int) bool { return views[i].Currency < views[j].Currency })

	resp := ratesResponse{
		Base:      table.Base,
		FetchedAt: table.FetchedAt,
		Rates:     views,
	}
	if !table.Date.IsZero() {
		resp.Date = table.Date.Format("2006-01-02")
	}

	return resp
}
