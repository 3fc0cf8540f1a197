package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/foodgram-backend/internal/app"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:           "foodgram",
	Short:         "Foodgram recipe sharing backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(serveCmd, migrateCmd, loaddataCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "foodgram: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads the config and builds the process logger.
func bootstrap() (app.Config, *logger.Logger, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, nil, err
	}
	log, err := app.NewLogger(cfg)
	if err != nil {
		return app.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
