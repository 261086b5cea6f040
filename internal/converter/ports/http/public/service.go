package public

import (
	"context"
	"time"

	"github.com/welezhka/converter/internal/entities"
)

type Service interface {
	Currencies(ctx context.Context) ([]entities.Currency, error)
	LatestRates(ctx context.Context, base string) (*entities.RateTable, error)
	HistoricalRates(ctx context.Context, date time.Time, base string) (*entities.RateTable, error)
	Convert(ctx context.Context, req entities.ConversionRequest) (*entities.ConversionResult, error)
	Compare(ctx context.Context, date time.Time, from, to string) (*entities.RateComparison, error)
	History(ctx context.Context, limit int) ([]entities.Conversion, error)
	ClearHistory(ctx context.Context) error
	Status(ctx context.Context) (*entities.QuotaStatus, error)
}
