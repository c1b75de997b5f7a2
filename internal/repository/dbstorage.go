package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/internal/model"
)

const (
	dbBatchSize = 500

	// DefaultMigrationsPath is relative to the working directory.
	DefaultMigrationsPath = "file://migrations"
)

type DBStorage struct {
	pool *pgxpool.Pool
}

func NewDBStorage(ctx context.Context, dsn, migrationsPath string) (*DBStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DBStorage{pool: pool}

	if migrationsPath == "" {
		migrationsPath = DefaultMigrationsPath
	}
	if err := runMigrations(migrationsPath, dsn); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

func runMigrations(source, dsn string) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info().Msg("database is up to date")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		log.Info().Msg("database migrations completed")
	}
	return nil
}

func (d *DBStorage) SaveRun(ctx context.Context, run *model.Run) error {
	host, err := json.Marshal(run.Host)
	if err != nil {
		return fmt.Errorf("failed to encode host: %w", err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO runs (id, started_at, finished_at, dataset, host)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.StartedAt, run.FinishedAt, run.Dataset, host)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrRunExists
		}
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for start := 0; start < len(run.Results); start += dbBatchSize {
		end := min(start+dbBatchSize, len(run.Results))
		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			r := run.Results[i]
			batch.Queue(`
				INSERT INTO results (run_id, position, algorithm, num_logins, num_lookups,
					add_time_ns, add_comparisons, lookup_time_ns, lookup_comparisons, lookups_found)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`, run.ID, i, r.Algorithm, r.NumLogins, r.NumLookups,
				r.AddTime.Nanoseconds(), r.AddComparisons, r.LookupTime.Nanoseconds(), r.LookupComparisons, r.LookupsFound)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (d *DBStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	run := &model.Run{ID: id}
	var host []byte
	err := d.pool.QueryRow(ctx, `
		SELECT started_at, finished_at, dataset, host FROM runs WHERE id = $1
	`, id).Scan(&run.StartedAt, &run.FinishedAt, &run.Dataset, &host)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(host, &run.Host); err != nil {
		return nil, fmt.Errorf("failed to decode host: %w", err)
	}

	rows, err := d.pool.Query(ctx, `
		SELECT algorithm, num_logins, num_lookups, add_time_ns, add_comparisons,
			lookup_time_ns, lookup_comparisons, lookups_found
		FROM results WHERE run_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r model.Result
		var addNs, lookupNs int64
		if err := rows.Scan(&r.Algorithm, &r.NumLogins, &r.NumLookups, &addNs, &r.AddComparisons,
			&lookupNs, &r.LookupComparisons, &r.LookupsFound); err != nil {
			return nil, err
		}
		r.AddTime = time.Duration(addNs)
		r.LookupTime = time.Duration(lookupNs)
		run.Results = append(run.Results, r)
	}
	return run, rows.Err()
}

func (d *DBStorage) ListRuns(ctx context.Context) ([]model.RunSummary, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT r.id, r.started_at, r.dataset, COUNT(res.run_id)
		FROM runs r LEFT JOIN results res ON res.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at, r.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RunSummary{}
	for rows.Next() {
		var s model.RunSummary
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.Dataset, &s.NumResults); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (d *DBStorage) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

func (d *DBStorage) Close() {
	d.pool.Close()
}
