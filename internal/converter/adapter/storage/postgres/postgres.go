package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/welezhka/converter/deploy/config"
	"github.com/welezhka/converter/internal/entities"
)

type Storage struct {
	db  *pgxpool.Pool
	cfg *config.Config
}

func NewStorage(pool *pgxpool.Pool, cfg *config.Config) *Storage {
	return &Storage{
		db:  pool,
		cfg: cfg,
	}
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	const op = "storage.postgres.New"

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Storage.Host,
		cfg.Storage.Port,
		cfg.Storage.User,
		cfg.Storage.Password,
		cfg.Storage.DBName,
		cfg.Storage.SSLMode,
		cfg.Storage.Schema,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 10 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, op)
	}

	slog.Info("PostgresSQL storage initialized successfully")

	return NewStorage(pool, cfg), nil
}

// SaveRates snapshots a rate table, one row per currency. A second snapshot
// for the same base and day overwrites the previous one.
func (s *Storage) SaveRates(ctx context.Context, table *entities.RateTable) error {
	const op = "storage.postgres.SaveRates"

	day := snapshotDay(table)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, op)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for currency, rate := range table.Rates {
		_, err = tx.Exec(ctx, `
            INSERT INTO rate_snapshots (base, currency, rate, rate_date, fetched_at)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (base, currency, rate_date)
            DO UPDATE SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at
        `, table.Base, currency, rate, day, table.FetchedAt)
		if err != nil {
			return errors.Wrap(err, op)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

// GetRates rebuilds the snapshotted rate table for base on the given day.
func (s *Storage) GetRates(ctx context.Context, base string, date time.Time) (*entities.RateTable, error) {
	const op = "storage.postgres.GetRates"

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := s.db.Query(ctx, `
        SELECT currency, rate, fetched_at
        FROM rate_snapshots
        WHERE base = $1 AND rate_date = $2
    `, base, day)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer rows.Close()

	rates := make(map[string]float64)
	var fetchedAt time.Time

	for rows.Next() {
		var currency string
		var rate float64
		var fetched time.Time

		if err := rows.Scan(&currency, &rate, &fetched); err != nil {
			return nil, errors.Wrap(err, op)
		}

		rates[currency] = rate
		if fetched.After(fetchedAt) {
			fetchedAt = fetched
		}
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, op)
	}

	if len(rates) == 0 {
		return nil, errors.Wrap(entities.ErrNotFound, op)
	}

	return &entities.RateTable{
		Base:      base,
		Rates:     rates,
		Date:      day,
		FetchedAt: fetchedAt,
	}, nil
}

func (s *Storage) SaveConversion(ctx context.Context, conv *entities.Conversion) error {
	const op = "storage.postgres.SaveConversion"

	err := s.db.QueryRow(ctx, `
        INSERT INTO conversions (amount, from_code, to_code, result, rate, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, conv.Amount, conv.From, conv.To, conv.Result, conv.Rate, conv.CreatedAt).Scan(&conv.ID)
	if err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *Storage) Conversions(ctx context.Context, limit int) ([]entities.Conversion, error) {
	const op = "storage.postgres.Conversions"

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(ctx, `
        SELECT id, amount, from_code, to_code, result, rate, created_at
        FROM conversions
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer rows.Close()

	var conversions []entities.Conversion
	for rows.Next() {
		var conv entities.Conversion
		if err := rows.Scan(&conv.ID, &conv.Amount, &conv.From, &conv.To, &conv.Result, &conv.Rate, &conv.CreatedAt); err != nil {
			return nil, errors.Wrap(err, op)
		}
		conversions = append(conversions, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return conversions, nil
}

func (s *Storage) DeleteConversions(ctx context.Context) error {
	const op = "storage.postgres.DeleteConversions"

	if _, err := s.db.Exec(ctx, `DELETE FROM conversions`); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

// snapshotDay keys a snapshot by its rate date, falling back to the fetch day
// for latest-rate tables.
func snapshotDay(table *entities.RateTable) time.Time {
	date := table.Date
	if date.IsZero() {
		date = table.FetchedAt
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
