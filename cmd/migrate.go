package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/foodgram-backend/internal/app"
	"github.com/yungbote/foodgram-backend/internal/data/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		pg, err := app.Open(log, cfg)
		if err != nil {
			return err
		}
		defer pg.Close()

		if err := db.Migrate(pg.DB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("Schema migrated", "driver", pg.Driver())
		return nil
	},
}
