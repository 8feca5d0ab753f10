package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexiclass/lexiclass/pkg/config"
)

var (
	classifyConfig string
	classifyFile   string
	classifyScores bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify a document with a trained model",
	Long: `Classify a document against the saved model and print the winning
label. The document is given as an argument, read from a file with
--file, or read from stdin when neither is present.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := classifyInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig(classifyConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx := context.Background()
		model, store, err := loadTrainedModel(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		label, err := model.Classify(text)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		if !classifyScores {
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		}

		scores, err := model.Scores(text)
		if err != nil {
			return fmt.Errorf("scoring failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Label: %s\n\n", label)
		for _, s := range scores {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %14.6f\n", s.Label, s.Score)
		}
		return nil
	},
}

// classifyInput resolves the document text from the argument, --file,
// or stdin, in that order.
func classifyInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if classifyFile != "" {
		data, err := os.ReadFile(classifyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input: pass text as an argument, use --file, or pipe to stdin")
	}
	return string(data), nil
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyConfig, "config", "c", "", "Configuration file path")
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "Read the document from a file")
	classifyCmd.Flags().BoolVarP(&classifyScores, "scores", "s", false, "Print per-label log-scores")
}
