package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexiclass/lexiclass/pkg/config"
)

var infoConfig string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show statistics for the saved model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(infoConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx := context.Background()
		model, store, err := loadTrainedModel(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		printModelInfo(cmd.OutOrStdout(), model.Info())
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVarP(&infoConfig, "config", "c", "", "Configuration file path")
}
