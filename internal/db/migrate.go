package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/db/migrations"
	"github.com/pressly/goose/v3"
)

// Migrate applies every pending goose migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
