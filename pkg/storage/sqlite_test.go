package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "model.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	snap := testSnapshot(t)
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Vocabulary, snap.Vocabulary) {
		t.Error("loaded vocabulary differs from saved")
	}
	if !reflect.DeepEqual(loaded.Classes, snap.Classes) {
		t.Error("loaded classes differ from saved")
	}
	if loaded.Smoothing != snap.Smoothing || loaded.Trained != snap.Trained {
		t.Error("loaded meta fields differ from saved")
	}
	if loaded.TotalDocuments != snap.TotalDocuments {
		t.Errorf("TotalDocuments = %d, want %d", loaded.TotalDocuments, snap.TotalDocuments)
	}
	assertRestores(t, loaded)
}

func TestSQLiteStoreEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoModel) {
		t.Errorf("Load of an empty database: err = %v, want ErrNoModel", err)
	}
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "model.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	first := testSnapshot(t)
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	// A second save fully replaces the first model, including labels
	// that no longer exist.
	second := testSnapshot(t)
	delete(second.Classes, "veggie")
	second.TotalDocuments = second.Classes["meat"].Documents
	for token := range second.Vocabulary {
		if _, ok := second.Classes["meat"].Counts[token]; !ok {
			delete(second.Vocabulary, token)
		}
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := loaded.Classes["veggie"]; ok {
		t.Error("stale label survived an overwriting save")
	}
	if !reflect.DeepEqual(loaded.Classes, second.Classes) {
		t.Error("loaded classes differ from the second save")
	}
}
