package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var migrationFS embed.FS

const migrationDir = "sql"

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrator applies the embedded schema migrations
type Migrator struct {
	db *sql.DB
}

// NewMigrator wraps the pgx pool in a database/sql handle for goose
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{db: stdlib.OpenDBFromPool(pool)}
}

func newMigratorFromDB(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Up applies all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := gooseUpContext(ctx, m.db, migrationDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close releases the database/sql wrapper. The underlying pool stays open.
func (m *Migrator) Close() error {
	return m.db.Close()
}
