// Command initdb creates the shortener schema. Running it again against an
// initialized database is a no-op.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"
	"github.com/vadimbarashkov/shortlink/internal/config"
	"github.com/vadimbarashkov/shortlink/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		return err
	}

	logger := httplog.NewLogger("shortlink-initdb", httplog.Options{
		JSON:     cfg.Env == config.EnvProd,
		LogLevel: cfg.Log.SlogLevel(),
		Concise:  true,
	})

	logger.Info("applying migrations", "source", cfg.Postgres.MigrationsPath)

	version, err := postgres.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN())
	if err != nil {
		return err
	}

	logger.Info("database initialized", "version", version)

	return nil
}
