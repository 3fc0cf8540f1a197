package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/foodgram-backend/internal/app"
)

var (
	loaddataDir  string
	loaddataOnly string
)

var loaddataCmd = &cobra.Command{
	Use:   "loaddata",
	Short: "Load ingredients and tags from the data directory",
	Long: `Reads ingredients.json and tags.json (or .yaml/.yml) from the data
directory and creates every row that does not exist yet. A missing file fails
its step; rows already loaded stay in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := app.New(cmd.Context(), log, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		dir := loaddataDir
		if dir == "" {
			dir = cfg.Recipes.DataDir
		}
		loader := a.Services.ReferenceLoader
		ctx := cmd.Context()

		var errs []error
		if loaddataOnly == "" || loaddataOnly == "ingredients" {
			res, err := loader.LoadIngredients(ctx, dir)
			if err != nil {
				errs = append(errs, fmt.Errorf("ingredients: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ingredients: %d read, %d created\n", res.Read, res.Created)
		}
		if loaddataOnly == "" || loaddataOnly == "tags" {
			res, err := loader.LoadTags(ctx, dir)
			if err != nil {
				errs = append(errs, fmt.Errorf("tags: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tags: %d read, %d created\n", res.Read, res.Created)
		}
		return errors.Join(errs...)
	},
}

func init() {
	loaddataCmd.Flags().StringVar(&loaddataDir, "dir", "", "directory holding the reference files (default DATA_DIR)")
	loaddataCmd.Flags().StringVar(&loaddataOnly, "only", "", "load only \"ingredients\" or \"tags\"")
}
