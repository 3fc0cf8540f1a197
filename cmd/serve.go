package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/foodgram-backend/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := app.New(cmd.Context(), log, cfg)
		if err != nil {
			log.Error("Failed to initialize app", "error", err)
			return err
		}
		defer a.Close()

		if err := a.Run(cmd.Context()); err != nil {
			log.Error("Server exited", "error", err)
			return err
		}
		log.Info("Server stopped")
		return nil
	},
}
