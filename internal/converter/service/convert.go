package service

import (
	"github.com/pkg/errors"
	"github.com/welezhka/converter/internal/entities"
)

// Convert computes the target amount for req against a table of rates
// expressed relative to a common base. Converting a currency into itself
// returns the amount unchanged. Pure, no I/O.
func Convert(req entities.ConversionRequest, table *entities.RateTable) (*entities.ConversionResult, error) {
	if req.Amount < 0 {
		return nil, errors.Wrapf(entities.ErrInvalidAmount, "amount %v is negative", req.Amount)
	}

	if req.From == req.To {
		return &entities.ConversionResult{Amount: req.Amount, Rate: 1.0}, nil
	}

	fromRate, ok := table.Rate(req.From)
	if !ok {
		return nil, errors.Wrap(entities.ErrUnknownCurrency, req.From)
	}

	toRate, ok := table.Rate(req.To)
	if !ok {
		return nil, errors.Wrap(entities.ErrUnknownCurrency, req.To)
	}

	rate := toRate / fromRate

	return &entities.ConversionResult{
		Amount: req.Amount * rate,
		Rate:   rate,
	}, nil
}
