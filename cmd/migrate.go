package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/config"
	"github.com/m04kA/SMC-WorkshopScheduling/migrations"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Управление миграциями базы данных",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Close()

		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		switch args[0] {
		case "up":
			return migrator.Up(ctx)
		case "down":
			return migrator.Down(ctx)
		default:
			return migrator.Status(ctx)
		}
	},
}
