package public

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/welezhka/converter/deploy/config"
	mwLogger "github.com/welezhka/converter/internal/converter/ports/http/public/middleware/logger"
	"github.com/welezhka/converter/internal/entities"
)

type Server struct {
	cfg     *config.Config
	service Service
}

func NewServer(cfg *config.Config, service Service) *Server {
	return &Server{
		cfg:     cfg,
		service: service,
	}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mwLogger.New())
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/currencies", s.GetCurrencies)
		r.Get("/rates", s.GetLatestRates)
		r.Get("/rates/historical", s.GetHistoricalRates)
		r.Get("/rates/compare", s.CompareRates)
		r.Post("/convert", s.Convert)
		r.Get("/history", s.GetHistory)
		r.Delete("/history", s.ClearHistory)
		r.Get("/status", s.GetStatus)
	})

	return r
}

func StartServer(ctx context.Context, service Service, cfg *config.Config) <-chan struct{} {
	server := NewServer(cfg, service)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      server.Router(),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	doneChan := make(chan struct{})

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to stop server", "error", err)
		}

		close(doneChan)
	}()

	return doneChan
}

func (s *Server) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	currencies, err := s.service.Currencies(ctx)
	if err != nil {
		s.respondError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, newCurrenciesResponse(currencies))
}

func (s *Server) GetLatestRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	base := r.URL.Query().Get("base")

	table, err := s.service.LatestRates(ctx, base)
	if err != nil {
		s.respondError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, newRatesResponse(table))
}

func (s *Server) GetHistoricalRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	base := r.URL.Query().Get("base")

	table, err := s.service.HistoricalRates(ctx, date, base)
	if err != nil {
		s.respondError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, newRatesResponse(table))
}

func (s *Server) CompareRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		RespondWithError(w, http.StatusBadRequest, "from and to currencies are required")
		return
	}

	comparison, err := s.service.Compare(ctx, date, from, to)
	if err != nil {
		s.respondError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, comparison)
}

func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req entities.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.service.Convert(ctx, req)
	if err != nil {
		s.respondError(w, err)
		return
	}

	conversionsTotal.WithLabelValues(req.From, req.To).Inc()

	RespondWithJSON(w, http.StatusOK, convertResponse{
		Amount: req.Amount,
		From:   req.From,
		To:     req.To,
		Result: result.Amount,
		Rate:   result.Rate,
	})
}

func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := parseLimit(r.URL.Query().Get("limit"))

	conversions, err := s.service.History(ctx, limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, conversions)
}

func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.service.ClearHistory(ctx); err != nil {
		s.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := s.service.Status(ctx)
	if err != nil {
		s.respondError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, status)
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	requestErrorsTotal.Inc()

	var apiErr *entities.ApiError

	switch {
	case errors.Is(err, entities.ErrInvalidAmount), errors.Is(err, entities.ErrUnknownCurrency):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &apiErr), errors.Is(err, entities.ErrBadPayload):
		RespondWithError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, entities.ErrUnavailable):
		RespondWithError(w, http.StatusGatewayTimeout, err.Error())
	default:
		RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}

func RespondWithJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, message string, details ...string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)

	errorText := message
	if len(details) > 0 {
		errorText += "\nDetails: " + details[0]
	}

	if _, err := w.Write([]byte(errorText)); err != nil {
		slog.Error("Failed to write error response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
