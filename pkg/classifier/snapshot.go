package classifier

import (
	"fmt"
	"time"
)

// ClassSnapshot holds the frozen counts for one label
type ClassSnapshot struct {
	Documents int            `json:"documents"`
	Tokens    int            `json:"tokens"`
	Counts    map[string]int `json:"counts"`
}

// Snapshot is the serializable form of a model: the raw counts plus
// the smoothing factor. Probability tables are not persisted; they are
// a pure function of the counts and are rebuilt on restore.
type Snapshot struct {
	Smoothing      float64                  `json:"smoothing"`
	Trained        bool                     `json:"trained"`
	TotalDocuments int                      `json:"total_documents"`
	Vocabulary     map[string]int           `json:"vocabulary"`
	Classes        map[string]ClassSnapshot `json:"classes"`
	LastTrained    time.Time                `json:"last_trained,omitempty"`
}

// Validate checks a snapshot's internal consistency before it is
// loaded into a model.
func (s *Snapshot) Validate() error {
	if s.Smoothing <= 0 {
		return ErrInvalidSmoothing
	}
	docs := 0
	for label, class := range s.Classes {
		if class.Documents < 0 || class.Tokens < 0 {
			return fmt.Errorf("classifier: negative counts for label %q", label)
		}
		tokens := 0
		for token, count := range class.Counts {
			if _, ok := s.Vocabulary[token]; !ok {
				return fmt.Errorf("classifier: token %q of label %q missing from vocabulary", token, label)
			}
			tokens += count
		}
		if tokens != class.Tokens {
			return fmt.Errorf("classifier: token total mismatch for label %q: counted %d, recorded %d", label, tokens, class.Tokens)
		}
		docs += class.Documents
	}
	if docs != s.TotalDocuments {
		return fmt.Errorf("classifier: document total mismatch: counted %d, recorded %d", docs, s.TotalDocuments)
	}
	return nil
}

// Snapshot returns a deep copy of the model's accumulated counts,
// suitable for persistence through a storage backend.
func (m *Model) Snapshot() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := &Snapshot{
		Smoothing:      m.smoothing,
		Trained:        m.trained,
		TotalDocuments: m.numDocs,
		Vocabulary:     make(map[string]int, len(m.vocab)),
		Classes:        make(map[string]ClassSnapshot, len(m.classes)),
		LastTrained:    m.lastTrained,
	}
	for token, count := range m.vocab {
		snap.Vocabulary[token] = count
	}
	for label, stats := range m.classes {
		counts := make(map[string]int, len(stats.counts))
		for token, count := range stats.counts {
			counts[token] = count
		}
		snap.Classes[label] = ClassSnapshot{
			Documents: stats.docs,
			Tokens:    stats.tokens,
			Counts:    counts,
		}
	}
	return snap
}

// RestoreSnapshot replaces the model's state with the snapshot's
// counts. If the snapshot was trained, the probability tables are
// rebuilt from the restored counts before the model is marked trained.
func (m *Model) RestoreSnapshot(snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.smoothing = snap.Smoothing
	m.numDocs = snap.TotalDocuments
	m.vocab = make(map[string]int, len(snap.Vocabulary))
	for token, count := range snap.Vocabulary {
		m.vocab[token] = count
	}
	m.classes = make(map[string]*classStats, len(snap.Classes))
	for label, class := range snap.Classes {
		stats := newClassStats()
		stats.docs = class.Documents
		stats.tokens = class.Tokens
		for token, count := range class.Counts {
			stats.counts[token] = count
		}
		m.classes[label] = stats
	}

	m.trained = false
	m.tables = nil
	m.lastTrained = time.Time{}

	if snap.Trained {
		if err := m.train(); err != nil {
			return err
		}
		if !snap.LastTrained.IsZero() {
			m.lastTrained = snap.LastTrained
		}
	}
	return nil
}
