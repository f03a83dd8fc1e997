package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/garrettladley/ready/internal/config"
	"github.com/garrettladley/ready/internal/db"
	pgmigrations "github.com/garrettladley/ready/internal/migrations/postgres"
)

func migrateCmd() *cobra.Command {
	var postgres bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: "Apply pending migrations to the local SQLite database, or to the " +
			"server's PostgreSQL database named by DATABASE_URL when --postgres is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if postgres {
				return migratePostgres(cmd)
			}
			return migrateSQLite(cmd)
		},
	}
	cmd.Flags().BoolVar(&postgres, "postgres", false, "migrate the PostgreSQL database at DATABASE_URL")
	return cmd
}

func migrateSQLite(cmd *cobra.Command) error {
	cfg, err := config.Read()
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	fmt.Printf("Migrations applied to %s\n", cfg.DBPath)
	return nil
}

func migratePostgres(cmd *cobra.Command) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return errors.New("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := pgmigrations.Apply(cmd.Context(), pool); err != nil {
		return err
	}

	fmt.Println("Migrations applied successfully")
	return nil
}
