package service

import (
	"context"
	"time"

	"github.com/welezhka/converter/internal/entities"
)

type Storage interface {
	SaveRates(ctx context.Context, table *entities.RateTable) error
	GetRates(ctx context.Context, base string, date time.Time) (*entities.RateTable, error)
	SaveConversion(ctx context.Context, conv *entities.Conversion) error
	Conversions(ctx context.Context, limit int) ([]entities.Conversion, error)
	DeleteConversions(ctx context.Context) error
}
