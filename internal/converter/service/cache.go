package service

import (
	"context"

	"github.com/welezhka/converter/internal/entities"
)

type RateCache interface {
	GetRates(ctx context.Context, base string) (*entities.RateTable, error)
	SetRates(ctx context.Context, table *entities.RateTable) error
}
