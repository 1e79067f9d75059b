package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// MigrationLogger es la salida de goose; *logger.Logger la cumple.
type MigrationLogger interface {
	Printf(format string, v ...interface{})
	Fatalf(format string, v ...interface{})
}

func setupGoose(log MigrationLogger) error {
	goose.SetBaseFS(migrations)
	if log != nil {
		goose.SetLogger(log)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

// Migrate aplica las migraciones embebidas pendientes. Es idempotente: si el esquema
// ya está al día no hace nada. Debe correr antes de aceptar tráfico.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log MigrationLogger) error {
	if err := setupGoose(log); err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}

// Rollback revierte la última migración aplicada.
func Rollback(ctx context.Context, pool *pgxpool.Pool, log MigrationLogger) error {
	if err := setupGoose(log); err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("revertir migración: %w", err)
	}
	return nil
}

// MigrationStatus imprime el estado de cada migración a través del logger de goose.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool, log MigrationLogger) error {
	if err := setupGoose(log); err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("estado de migraciones: %w", err)
	}
	return nil
}
