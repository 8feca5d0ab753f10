package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/lexiclass/lexiclass/pkg/classifier"
	"github.com/lexiclass/lexiclass/pkg/config"
	"github.com/lexiclass/lexiclass/pkg/storage"
	"github.com/lexiclass/lexiclass/pkg/tokenizer"
)

// loadTrainedModel restores a model through the configured storage
// backend. The caller owns closing the returned store.
func loadTrainedModel(ctx context.Context, cfg *config.Config) (*classifier.Model, storage.Store, error) {
	store, err := storage.Open(ctx, &cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open model storage: %w", err)
	}

	snap, err := store.Load(ctx)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to load model: %w", err)
	}

	model := classifier.New(tokenizer.New(&cfg.Tokenizer))
	if err := model.RestoreSnapshot(snap); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to restore model: %w", err)
	}

	return model, store, nil
}

// printModelInfo renders model statistics
func printModelInfo(w io.Writer, info *classifier.ModelInfo) {
	state := "untrained"
	if info.Trained {
		state = "trained"
	}

	fmt.Fprintf(w, "Model: %s\n", state)
	fmt.Fprintf(w, "  Documents:  %d\n", info.TotalDocuments)
	fmt.Fprintf(w, "  Vocabulary: %d tokens\n", info.VocabularySize)
	fmt.Fprintf(w, "  Smoothing:  %g\n", info.Smoothing)
	if !info.LastTrained.IsZero() {
		fmt.Fprintf(w, "  Trained at: %s\n", info.LastTrained.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintf(w, "\nLabels:\n")
	for _, label := range info.Labels {
		fmt.Fprintf(w, "  %-20s %6d docs %8d tokens\n", label.Label, label.Documents, label.Tokens)
	}
}
