package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/welezhka/converter/deploy/config"
	"github.com/welezhka/converter/internal/entities"
)

// Service drives the rate-fetch-and-convert workflow: rates come from the
// remote source through the cache, conversions are recorded in storage.
type Service struct {
	source  RateSource
	storage Storage
	cache   RateCache
	cfg     *config.Config
}

func NewService(source RateSource, storage Storage, cache RateCache, cfg *config.Config) (*Service, error) {
	return &Service{
		source:  source,
		storage: storage,
		cache:   cache,
		cfg:     cfg,
	}, nil
}

func (s *Service) Currencies(ctx context.Context) ([]entities.Currency, error) {
	const op = "service.Currencies"

	currencies, err := s.source.Currencies(ctx)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return currencies, nil
}

// LatestRates returns the current rate table for base, consulting the cache
// first. A fresh fetch is cached and snapshotted to storage; failures of
// either side channel are logged, not propagated.
func (s *Service) LatestRates(ctx context.Context, base string) (*entities.RateTable, error) {
	const op = "service.LatestRates"

	if base == "" {
		base = s.cfg.API.Base
	}

	table, err := s.cache.GetRates(ctx, base)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		slog.Warn("rates cache lookup failed", "base", base, "error", err)
	}

	table, err = s.source.Latest(ctx, base)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	if err := s.cache.SetRates(ctx, table); err != nil {
		slog.Warn("rates cache update failed", "base", base, "error", err)
	}

	if err := s.storage.SaveRates(ctx, table); err != nil {
		slog.Warn("rate snapshot save failed", "base", base, "error", err)
	}

	return table, nil
}

// HistoricalRates returns the rate table for base on a past date. A table
// snapshotted earlier is served from storage without touching the remote
// source.
func (s *Service) HistoricalRates(ctx context.Context, date time.Time, base string) (*entities.RateTable, error) {
	const op = "service.HistoricalRates"

	if base == "" {
		base = s.cfg.API.Base
	}

	table, err := s.storage.GetRates(ctx, base, date)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, errors.Wrap(err, op)
	}

	table, err = s.source.Historical(ctx, date, base)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	if err := s.storage.SaveRates(ctx, table); err != nil {
		slog.Warn("rate snapshot save failed", "base", base, "error", err)
	}

	return table, nil
}

// Convert validates req, converts it against the latest rate table for the
// configured base currency and records the conversion in the history log.
func (s *Service) Convert(ctx context.Context, req entities.ConversionRequest) (*entities.ConversionResult, error) {
	const op = "service.Convert"

	if req.Amount < 0 {
		return nil, errors.Wrapf(entities.ErrInvalidAmount, "amount %v is negative", req.Amount)
	}

	table, err := s.LatestRates(ctx, s.cfg.API.Base)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	result, err := Convert(req, table)
	if err != nil {
		return nil, err
	}

	conv := &entities.Conversion{
		Amount:    req.Amount,
		From:      req.From,
		To:        req.To,
		Result:    result.Amount,
		Rate:      result.Rate,
		CreatedAt: time.Now(),
	}
	if err := s.storage.SaveConversion(ctx, conv); err != nil {
		slog.Warn("conversion history save failed", "error", err)
	}

	return result, nil
}

// Compare reports how the rate for a currency pair changed between a past
// date and now.
func (s *Service) Compare(ctx context.Context, date time.Time, from, to string) (*entities.RateComparison, error) {
	const op = "service.Compare"

	historical, err := s.HistoricalRates(ctx, date, s.cfg.API.Base)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	current, err := s.LatestRates(ctx, s.cfg.API.Base)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	unit := entities.ConversionRequest{Amount: 1, From: from, To: to}

	histResult, err := Convert(unit, historical)
	if err != nil {
		return nil, err
	}

	currResult, err := Convert(unit, current)
	if err != nil {
		return nil, err
	}

	var change float64
	if histResult.Rate != 0 {
		change = (currResult.Rate - histResult.Rate) / histResult.Rate * 100
	}

	return &entities.RateComparison{
		From:           from,
		To:             to,
		Date:           date,
		HistoricalRate: histResult.Rate,
		CurrentRate:    currResult.Rate,
		ChangePct:      change,
	}, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]entities.Conversion, error) {
	const op = "service.History"

	conversions, err := s.storage.Conversions(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return conversions, nil
}

func (s *Service) ClearHistory(ctx context.Context) error {
	const op = "service.ClearHistory"

	if err := s.storage.DeleteConversions(ctx); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *Service) Status(ctx context.Context) (*entities.QuotaStatus, error) {
	const op = "service.Status"

	status, err := s.source.Status(ctx)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return status, nil
}
