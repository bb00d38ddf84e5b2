package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Gojer16/Book-Management-API/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded schema migrations. goose needs a
// database/sql handle, so a short-lived stdlib connection is opened next to
// the pgx pool.
func RunMigrations(ctx context.Context, username, password, host, port, dbName string) error {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", username, password, host, port, dbName)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
