package entities

// Currency is one supported currency as reported by the rate source.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func (c Currency) DisplayName() string {
	return c.Code + " (" + c.Symbol + ") - " + c.Name
}
