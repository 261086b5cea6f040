package service

import (
	"context"
	"time"

	"github.com/welezhka/converter/internal/entities"
)

// RateSource retrieves exchange rates and currency metadata from a remote
// service.
type RateSource interface {
	Latest(ctx context.Context, base string) (*entities.RateTable, error)
	Historical(ctx context.Context, date time.Time, base string) (*entities.RateTable, error)
	Currencies(ctx context.Context) ([]entities.Currency, error)
	Status(ctx context.Context) (*entities.QuotaStatus, error)
}
