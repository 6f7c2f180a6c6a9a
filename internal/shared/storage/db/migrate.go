package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// RunMigrations brings the advisor schema (catalog tables, advisor_sessions,
// explanations, rule_execution_logs) up to date from the embedded SQL files.
// A nil database is a no-op so dev setups without Postgres can boot.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, migrationsDir)
}
