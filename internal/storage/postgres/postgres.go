package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for unique-index conflicts. The
// indexes on email, isbn and (user_id, book_id) act as the race-condition
// backstop behind the explicit service-level checks.
const uniqueViolation = "23505"

type Storage struct {
	Pool *pgxpool.Pool
}

func NewPostgresPool(username, password, host, port, dbName string) (*Storage, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", username, password, host, port, dbName)
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Storage{Pool: pool}, nil
}

func (p *Storage) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
