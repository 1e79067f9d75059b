// migrate aplica o revierte las migraciones embebidas de la tabla customers.
//
// Uso: go run ./cmd/migrate [up|down|status]
// Por defecto ejecuta "up". Lee la conexión igual que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/customers-api/internal/infrastructure/postgres"
	"github.com/jhoicas/customers-api/pkg/config"
	"github.com/jhoicas/customers-api/pkg/logger"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	switch command {
	case "up":
		err = postgres.Migrate(ctx, pool, log)
	case "down":
		err = postgres.Rollback(ctx, pool, log)
	case "status":
		err = postgres.MigrationStatus(ctx, pool, log)
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q (usar up, down o status)\n", command)
		pool.Close()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migración completada")
}
