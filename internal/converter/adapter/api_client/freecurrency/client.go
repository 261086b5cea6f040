package freecurrency

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/welezhka/converter/deploy/config"
	"github.com/welezhka/converter/internal/entities"
)

// Client talks to a FreeCurrencyAPI-compatible endpoint. All responses come
// wrapped in a {"data": ...} envelope and the access key is passed as the
// apikey header.
type Client struct {
	client *http.Client
	url    string
	key    string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		client: &http.Client{Timeout: cfg.API.Timeout},
		url:    cfg.API.URL,
		key:    cfg.API.Key,
	}
}

// Latest fetches the current rate table for the given base currency.
func (c *Client) Latest(ctx context.Context, base string) (*entities.RateTable, error) {
	const op = "freecurrency.Latest"

	if base == "" {
		return nil, errors.Wrap(entities.ErrUnknownCurrency, op)
	}

	var payload struct {
		Data map[string]float64 `json:"data"`
	}

	query := url.Values{"base_currency": {base}}
	if err := c.get(ctx, "/latest", query, &payload); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return entities.NewRateTable(base, payload.Data, time.Time{}), nil
}

// Historical fetches the rate table for the given base currency on a past
// date.
func (c *Client) Historical(ctx context.Context, date time.Time, base string) (*entities.RateTable, error) {
	const op = "freecurrency.Historical"

	if base == "" {
		return nil, errors.Wrap(entities.ErrUnknownCurrency, op)
	}

	var payload struct {
		Data map[string]float64 `json:"data"`
	}

	query := url.Values{
		"base_currency": {base},
		"date":          {date.Format("2006-01-02")},
	}
	if err := c.get(ctx, "/historical", query, &payload); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return entities.NewRateTable(base, payload.Data, date), nil
}

// Currencies fetches the list of supported currencies, sorted by code.
func (c *Client) Currencies(ctx context.Context) ([]entities.Currency, error) {
	const op = "freecurrency.Currencies"

	var payload struct {
		Data map[string]struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/currencies", nil, &payload); err != nil {
		return nil, errors.Wrap(err, op)
	}

	currencies := make([]entities.Currency, 0, len(payload.Data))
	for code, info := range payload.Data {
		name := info.Name
		if name == "" {
			name = code
		}
		symbol := info.Symbol
		if symbol == "" {
			symbol = code
		}
		currencies = append(currencies, entities.Currency{Code: code, Name: name, Symbol: symbol})
	}

	sort.Slice(currencies, func(i, j int) bool { return currencies[i].Code < currencies[j].Code })

	return currencies, nil
}

// Status reports the remaining API quota for the account.
func (c *Client) Status(ctx context.Context) (*entities.QuotaStatus, error) {
	const op = "freecurrency.Status"

	var payload struct {
		Quotas struct {
			Month struct {
				Total     int `json:"total"`
				Used      int `json:"used"`
				Remaining int `json:"remaining"`
			} `json:"month"`
		} `json:"quotas"`
	}
	if err := c.get(ctx, "/status", nil, &payload); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return &entities.QuotaStatus{
		Total:     payload.Quotas.Month.Total,
		Used:      payload.Quotas.Month.Used,
		Remaining: payload.Quotas.Month.Remaining,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.url + path)
	if err != nil {
		return errors.Wrap(err, "parse url")
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("apikey", c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(entities.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(entities.ErrUnavailable, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return apiError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(entities.ErrBadPayload, err.Error())
	}

	return nil
}

func apiError(status int, body []byte) error {
	msg := http.StatusText(status)
	if status == http.StatusTooManyRequests {
		msg = "rate limit exceeded"
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}

	return &entities.ApiError{Status: status, Message: msg}
}
