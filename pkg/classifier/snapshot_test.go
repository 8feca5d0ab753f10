package classifier

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	model := trainedFoodModel(t)
	snap := model.Snapshot()

	restored := New(nil)
	if err := restored.RestoreSnapshot(snap); err != nil {
		t.Fatalf("RestoreSnapshot failed: %v", err)
	}
	if !restored.Trained() {
		t.Fatal("restored model is not trained")
	}

	query := "salami pancetta beef ribs"
	want, err := model.Scores(query)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}
	got, err := restored.Scores(query)
	if err != nil {
		t.Fatalf("Scores on restored model failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restored model scores differ: %v vs %v", got, want)
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	model := trainedFoodModel(t)

	data, err := json.Marshal(model.Snapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	restored := New(nil)
	if err := restored.RestoreSnapshot(&snap); err != nil {
		t.Fatalf("RestoreSnapshot failed: %v", err)
	}
	label, err := restored.Classify("salami pancetta beef ribs")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != "meat" {
		t.Errorf("Classify = %q, want %q", label, "meat")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	model := New(nil)
	if err := model.AddDocument("ham hock sausage", "meat"); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	snap := model.Snapshot()
	snap.Vocabulary["injected"] = 99
	if class, ok := snap.Classes["meat"]; ok {
		class.Counts["injected"] = 99
	}

	info := model.Info()
	if info.VocabularySize != 3 {
		t.Errorf("mutating a snapshot leaked into the model: vocabulary size %d, want 3", info.VocabularySize)
	}
}

func TestUntrainedSnapshotRestore(t *testing.T) {
	model := New(nil)
	if err := model.AddDocuments(foodSamples); err != nil {
		t.Fatalf("AddDocuments failed: %v", err)
	}

	restored := New(nil)
	if err := restored.RestoreSnapshot(model.Snapshot()); err != nil {
		t.Fatalf("RestoreSnapshot failed: %v", err)
	}
	if restored.Trained() {
		t.Error("restoring an untrained snapshot produced a trained model")
	}

	// Accumulation continues, then training works as usual.
	if err := restored.AddDocument("bacon jerky brisket", "meat"); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	if err := restored.Train(); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
}

func TestSnapshotValidate(t *testing.T) {
	base := func() *Snapshot {
		model := trainedFoodModel(t)
		return model.Snapshot()
	}

	t.Run("valid", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Errorf("Validate on a good snapshot: %v", err)
		}
	})

	t.Run("bad smoothing", func(t *testing.T) {
		snap := base()
		snap.Smoothing = 0
		if err := snap.Validate(); !errors.Is(err, ErrInvalidSmoothing) {
			t.Errorf("err = %v, want ErrInvalidSmoothing", err)
		}
	})

	t.Run("document total mismatch", func(t *testing.T) {
		snap := base()
		snap.TotalDocuments++
		if err := snap.Validate(); err == nil {
			t.Error("Validate accepted a document total mismatch")
		}
	})

	t.Run("token total mismatch", func(t *testing.T) {
		snap := base()
		for label, class := range snap.Classes {
			class.Tokens++
			snap.Classes[label] = class
			break
		}
		if err := snap.Validate(); err == nil {
			t.Error("Validate accepted a token total mismatch")
		}
	})

	t.Run("token missing from vocabulary", func(t *testing.T) {
		snap := base()
		for label, class := range snap.Classes {
			class.Counts["notinvocab"] = 0
			snap.Classes[label] = class
			break
		}
		if err := snap.Validate(); err == nil {
			t.Error("Validate accepted a class token missing from the vocabulary")
		}
	})
}
