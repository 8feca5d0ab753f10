package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lexiclass/lexiclass/pkg/classifier"
)

func testSnapshot(t *testing.T) *classifier.Snapshot {
	t.Helper()
	model := classifier.New(nil)
	samples := []classifier.Sample{
		{Text: "sirloin pastrami salami pancetta", Label: "meat"},
		{Text: "beef ribs pork chop brisket", Label: "meat"},
		{Text: "okra spinach pea radish", Label: "veggie"},
		{Text: "turnip kale arugula beetroot", Label: "veggie"},
	}
	if err := model.AddDocuments(samples); err != nil {
		t.Fatalf("AddDocuments failed: %v", err)
	}
	if err := model.Train(); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return model.Snapshot()
}

// assertRestores loads the snapshot into a fresh model and checks it
// classifies like the original.
func assertRestores(t *testing.T, snap *classifier.Snapshot) {
	t.Helper()
	model := classifier.New(nil)
	if err := model.RestoreSnapshot(snap); err != nil {
		t.Fatalf("RestoreSnapshot failed: %v", err)
	}
	label, err := model.Classify("salami pancetta beef ribs")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != "meat" {
		t.Errorf("Classify = %q, want %q", label, "meat")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "model.json")
	store := NewFileStore(path)
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
	assertRestores(t, loaded)
}

func TestFileStoreCreatesDirectories(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "model.json")
	store := NewFileStore(path)

	if err := store.Save(ctx, testSnapshot(t)); err != nil {
		t.Fatalf("Save into a missing directory failed: %v", err)
	}
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func TestFileStoreMissingModel(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNoModel) {
		t.Errorf("Load of a missing file: err = %v, want ErrNoModel", err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "carrier-pigeon"

	if _, err := Open(context.Background(), cfg); err == nil {
		t.Error("Open accepted an unknown backend")
	}
}

func TestOpenDefaultsToFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.File.Path = filepath.Join(t.TempDir(), "model.json")

	store, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*FileStore); !ok {
		t.Errorf("Open returned %T, want *FileStore", store)
	}
}
