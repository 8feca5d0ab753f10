package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexiclass/lexiclass/pkg/classifier"
	"github.com/lexiclass/lexiclass/pkg/config"
	"github.com/lexiclass/lexiclass/pkg/corpus"
	"github.com/lexiclass/lexiclass/pkg/storage"
	"github.com/lexiclass/lexiclass/pkg/tokenizer"
)

var (
	trainCorpusDir string
	trainTSVFile   string
	trainConfig    string
	trainModelPath string
	trainSmoothing float64
	trainVerbose   bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a classification model from a labeled corpus",
	Long: `Train a multinomial naive Bayes model from labeled documents and save
it through the configured storage backend.

The corpus can be a directory with one subdirectory per label
(--corpus dir, documents as text files) or a single tab-separated file
(--tsv file, one "label<TAB>text" line per document).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if trainCorpusDir == "" && trainTSVFile == "" {
			return fmt.Errorf("one of --corpus or --tsv must be specified")
		}

		cfg, err := config.LoadConfig(trainConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if trainModelPath != "" {
			cfg.Storage.Backend = "file"
			cfg.Storage.File.Path = trainModelPath
		}

		model := classifier.New(tokenizer.New(&cfg.Tokenizer))
		smoothing := cfg.Classifier.Smoothing
		if trainSmoothing > 0 {
			smoothing = trainSmoothing
		}
		if err := model.SetSmoothing(smoothing); err != nil {
			return err
		}

		start := time.Now()

		var samples []classifier.Sample
		if trainCorpusDir != "" {
			samples, err = corpus.LoadDir(trainCorpusDir)
			if err != nil {
				return fmt.Errorf("failed to load corpus: %w", err)
			}
		} else {
			samples, err = corpus.LoadTSV(trainTSVFile)
			if err != nil {
				return fmt.Errorf("failed to load corpus: %w", err)
			}
		}

		if trainVerbose {
			fmt.Printf("Loaded %d documents\n", len(samples))
		}

		if err := model.AddDocuments(samples); err != nil {
			return fmt.Errorf("failed to accumulate documents: %w", err)
		}
		if err := model.Train(); err != nil {
			return fmt.Errorf("training failed: %w", err)
		}

		ctx := context.Background()
		store, err := storage.Open(ctx, &cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to open model storage: %w", err)
		}
		defer store.Close()

		if err := store.Save(ctx, model.Snapshot()); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}

		duration := time.Since(start)
		fmt.Printf("✅ Trained on %d documents in %v\n", len(samples), duration.Round(time.Millisecond))
		fmt.Printf("💾 Model saved via %s backend\n\n", storageName(&cfg.Storage))
		printModelInfo(cmd.OutOrStdout(), model.Info())

		return nil
	},
}

func storageName(cfg *storage.Config) string {
	if cfg.Backend == "" {
		return "file"
	}
	return cfg.Backend
}

func init() {
	trainCmd.Flags().StringVarP(&trainCorpusDir, "corpus", "d", "", "Corpus directory (one subdirectory per label)")
	trainCmd.Flags().StringVar(&trainTSVFile, "tsv", "", "Tab-separated corpus file (label<TAB>text per line)")
	trainCmd.Flags().StringVarP(&trainConfig, "config", "c", "", "Configuration file path")
	trainCmd.Flags().StringVarP(&trainModelPath, "model", "m", "", "Model file path (overrides configured storage backend)")
	trainCmd.Flags().Float64Var(&trainSmoothing, "smoothing", 0, "Laplace smoothing factor (overrides config)")
	trainCmd.Flags().BoolVarP(&trainVerbose, "verbose", "v", false, "Verbose output")
}
