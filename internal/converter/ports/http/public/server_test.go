package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/welezhka/converter/deploy/config"
	"github.com/welezhka/converter/internal/entities"
)

type fakeService struct {
	table      *entities.RateTable
	result     *entities.ConversionResult
	comparison *entities.RateComparison
	history    []entities.Conversion
	err        error
	cleared    bool
}

func (f *fakeService) Currencies(_ context.Context) ([]entities.Currency, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []entities.Currency{{Code: "USD", Name: "US Dollar", Symbol: "$"}}, nil
}

func (f *fakeService) LatestRates(_ context.Context, base string) (*entities.RateTable, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func (f *fakeService) HistoricalRates(_ context.Context, date time.Time, base string) (*entities.RateTable, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func (f *fakeService) Convert(_ context.Context, req entities.ConversionRequest) (*entities.ConversionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeService) Compare(_ context.Context, date time.Time, from, to string) (*entities.RateComparison, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.comparison, nil
}

func (f *fakeService) History(_ context.Context, limit int) ([]entities.Conversion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

func (f *fakeService) ClearHistory(_ context.Context) error {
	f.cleared = true
	return f.err
}

func (f *fakeService) Status(_ context.Context) (*entities.QuotaStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entities.QuotaStatus{Total: 5000, Used: 1, Remaining: 4999}, nil
}

func newTestRouter(service Service) http.Handler {
	cfg := &config.Config{HTTPServer: config.HTTPServer{Port: "0"}}
	return NewServer(cfg, service).Router()
}

func TestServer_Convert(t *testing.T) {
	router := newTestRouter(&fakeService{result: &entities.ConversionResult{Amount: 90, Rate: 0.9}})

	body := `{"amount": 100, "from": "USD", "to": "EUR"}`
	r := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp convertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 90.0, resp.Result, 1e-9)
	assert.InDelta(t, 0.9, resp.Rate, 1e-9)
	assert.Equal(t, "USD", resp.From)
	assert.Equal(t, "EUR", resp.To)
}

func TestServer_Convert_BadBody(t *testing.T) {
	router := newTestRouter(&fakeService{})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Convert_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown currency", entities.ErrUnknownCurrency, http.StatusBadRequest},
		{"negative amount", entities.ErrInvalidAmount, http.StatusBadRequest},
		{"upstream api failure", &entities.ApiError{Status: 500, Message: "boom"}, http.StatusBadGateway},
		{"upstream unreachable", entities.ErrUnavailable, http.StatusGatewayTimeout},
		{"bad upstream payload", entities.ErrBadPayload, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeService{err: tt.err})

			body := `{"amount": 100, "from": "USD", "to": "EUR"}`
			r := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Body.String(), "error must be rendered for the client")
		})
	}
}

func TestServer_GetLatestRates(t *testing.T) {
	table := entities.NewRateTable("USD", map[string]float64{"EUR": 0.9, "GBP": 0.8}, time.Time{})
	router := newTestRouter(&fakeService{table: table})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/rates?base=USD", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ratesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "USD", resp.Base)
	require.Len(t, resp.Rates, 2)
	assert.Equal(t, "EUR", resp.Rates[0].Currency)
	assert.InDelta(t, 0.9, resp.Rates[0].Rate, 1e-9)
	assert.InDelta(t, 1/0.9, resp.Rates[0].Inverse, 1e-9)
}

func TestServer_GetLatestRates_UpstreamFailure(t *testing.T) {
	router := newTestRouter(&fakeService{err: &entities.ApiError{Status: 500, Message: "server on fire"}})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "server on fire")
}

func TestServer_GetHistoricalRates_BadDate(t *testing.T) {
	router := newTestRouter(&fakeService{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/rates/historical?date=not-a-date", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_CompareRates(t *testing.T) {
	comparison := &entities.RateComparison{
		From:           "USD",
		To:             "EUR",
		HistoricalRate: 0.8,
		CurrentRate:    0.9,
		ChangePct:      12.5,
	}
	router := newTestRouter(&fakeService{comparison: comparison})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/rates/compare?date=2026-08-01&from=USD&to=EUR", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp entities.RateComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 12.5, resp.ChangePct, 1e-9)
}

func TestServer_CompareRates_MissingPair(t *testing.T) {
	router := newTestRouter(&fakeService{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/rates/compare?date=2026-08-01&from=USD", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_History(t *testing.T) {
	history := []entities.Conversion{
		{ID: 1, Amount: 100, From: "USD", To: "EUR", Result: 90, Rate: 0.9, CreatedAt: time.Now()},
	}
	service := &fakeService{history: history}
	router := newTestRouter(service)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []entities.Conversion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "USD", resp[0].From)

	r = httptest.NewRequest(http.MethodDelete, "/api/v1/history", nil)
	w = httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, service.cleared)
}

func TestServer_GetCurrencies(t *testing.T) {
	router := newTestRouter(&fakeService{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []currencyView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "USD", resp[0].Code)
	assert.Equal(t, "USD ($) - US Dollar", resp[0].Display)
}
