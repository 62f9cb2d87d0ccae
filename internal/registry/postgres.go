package registry

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"

	"github.com/UnknownOlympus/nearby/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the query surface the postgres source needs; *pgxpool.Pool satisfies it.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const facilitiesQuery = `
		SELECT name, latitude, longitude
		FROM public.facilities
		ORDER BY position ASC, name ASC;
	`

// NewDatabase opens a connection pool to PostgreSQL and verifies it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// PostgresSource reads a snapshot of the facilities table. It never writes.
type PostgresSource struct {
	db  Database
	log *slog.Logger
}

// NewPostgresSource creates a source reading from db.
func NewPostgresSource(db Database, log *slog.Logger) *PostgresSource {
	return &PostgresSource{db: db, log: log}
}

// Facilities returns every row of public.facilities ordered by position, then name.
func (ps *PostgresSource) Facilities(ctx context.Context) ([]models.Facility, error) {
	rows, err := ps.db.Query(ctx, facilitiesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query facilities: %w", err)
	}
	defer rows.Close()

	var facilities []models.Facility
	for rows.Next() {
		var facility models.Facility
		if errScan := rows.Scan(&facility.Name, &facility.Latitude, &facility.Longitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan facility: %w", errScan)
		}
		facilities = append(facilities, facility)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	if len(facilities) == 0 {
		return nil, fmt.Errorf("%w: public.facilities", ErrNoFacilities)
	}

	ps.log.InfoContext(ctx, "Facilities read from database", "count", len(facilities))

	return facilities, nil
}
