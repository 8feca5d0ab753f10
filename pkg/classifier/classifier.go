package classifier

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/lexiclass/lexiclass/pkg/tokenizer"
)

// DefaultSmoothing is the Laplace (add-one) smoothing factor
const DefaultSmoothing = 1.0

// Tokenizer turns raw text into a sequence of normalized word tokens
type Tokenizer interface {
	Tokenize(text string) []string
}

// Sample is a labeled training document
type Sample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// classStats accumulates raw counts for one label during the
// accumulation phase. Read-only once the model is trained.
type classStats struct {
	docs   int            // documents added under this label
	tokens int            // total token occurrences in those documents
	counts map[string]int // token -> occurrence count
}

func newClassStats() *classStats {
	return &classStats{counts: make(map[string]int)}
}

// probabilityTable holds the frozen per-label log-probabilities
// computed at train time. Immutable thereafter.
type probabilityTable struct {
	logPrior      float64
	logLikelihood map[string]float64 // vocabulary token -> ln P(token|label)
}

// score sums the label's log-prior with the log-likelihood of every
// input token present in the vocabulary. Tokens never seen during
// training carry no information and are skipped.
func (pt *probabilityTable) score(tokens []string) float64 {
	total := pt.logPrior
	for _, token := range tokens {
		if lp, ok := pt.logLikelihood[token]; ok {
			total += lp
		}
	}
	return total
}

// Model is a multinomial naive Bayes text classifier. It moves through
// two phases: accumulation (AddDocument) and, after Train,
// classification (Classify). Accumulation is serialized by an internal
// mutex; once trained, the probability tables are immutable and
// concurrent Classify calls are safe.
type Model struct {
	mu sync.RWMutex

	tokenizer Tokenizer
	smoothing float64

	vocab   map[string]int // token -> corpus-wide occurrence count
	classes map[string]*classStats
	numDocs int

	trained     bool
	tables      map[string]*probabilityTable
	lastTrained time.Time
}

// New creates an untrained model. A nil tok selects the default
// word tokenizer.
func New(tok Tokenizer) *Model {
	if tok == nil {
		tok = tokenizer.New(nil)
	}
	return &Model{
		tokenizer: tok,
		smoothing: DefaultSmoothing,
		vocab:     make(map[string]int),
		classes:   make(map[string]*classStats),
	}
}

// SetSmoothing overrides the Laplace smoothing factor. Valid only
// before training; the factor is baked into the tables at Train time.
func (m *Model) SetSmoothing(smoothing float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.trained {
		return ErrTrained
	}
	if smoothing <= 0 {
		return ErrInvalidSmoothing
	}
	m.smoothing = smoothing
	return nil
}

// AddDocument tokenizes text and accumulates its token counts under
// label, creating the class on first sight. Valid only before training.
func (m *Model) AddDocument(text, label string) error {
	return m.AddTokens(m.tokenizer.Tokenize(text), label)
}

// AddTokens accumulates an already-tokenized document under label.
func (m *Model) AddTokens(tokens []string, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.trained {
		return ErrTrained
	}

	stats, ok := m.classes[label]
	if !ok {
		stats = newClassStats()
		m.classes[label] = stats
	}

	for _, token := range tokens {
		stats.counts[token]++
		stats.tokens++
		m.vocab[token]++
	}

	stats.docs++
	m.numDocs++
	return nil
}

// AddDocuments accumulates a batch of labeled documents
func (m *Model) AddDocuments(samples []Sample) error {
	for _, s := range samples {
		if err := m.AddDocument(s.Text, s.Label); err != nil {
			return err
		}
	}
	return nil
}

// Train freezes the accumulated counts into per-label probability
// tables. For a label c with D_c of D documents and T_c total tokens,
// over a vocabulary of size V with smoothing factor s:
//
//	log-prior(c)  = ln(D_c / D)
//	log P(t | c)  = ln((n_{t,c} + s) / (T_c + s*V))
//
// Smoothing keeps every probability strictly positive, so no unseen
// token/class pair can collapse a score to -Inf. Training twice on
// unchanged counts recomputes identical tables; it is wasteful, not an
// error.
func (m *Model) Train() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.train()
}

// train builds the tables. Caller must hold the write lock.
func (m *Model) train() error {
	if m.numDocs == 0 || len(m.classes) == 0 {
		return ErrNoTrainingData
	}

	vocabSize := float64(len(m.vocab))
	totalDocs := float64(m.numDocs)

	tables := make(map[string]*probabilityTable, len(m.classes))
	for label, stats := range m.classes {
		denom := float64(stats.tokens) + m.smoothing*vocabSize
		table := &probabilityTable{
			logPrior:      math.Log(float64(stats.docs) / totalDocs),
			logLikelihood: make(map[string]float64, len(m.vocab)),
		}
		for token := range m.vocab {
			table.logLikelihood[token] = math.Log((float64(stats.counts[token]) + m.smoothing) / denom)
		}
		tables[label] = table
	}

	m.tables = tables
	m.trained = true
	m.lastTrained = time.Now()
	return nil
}

// Classify tokenizes text and returns the label with the highest
// posterior log-score. Scoring stays in log-space throughout to avoid
// underflow from multiplying many small probabilities. On an exact
// score tie the lexicographically smallest label wins; a query with no
// in-vocabulary tokens therefore returns the highest-prior label, with
// the same tie-break. Valid only after training.
func (m *Model) Classify(text string) (string, error) {
	return m.ClassifyTokens(m.tokenizer.Tokenize(text))
}

// ClassifyTokens classifies an already-tokenized document
func (m *Model) ClassifyTokens(tokens []string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.trained {
		return "", ErrNotTrained
	}

	best := ""
	bestScore := math.Inf(-1)
	for _, label := range m.sortedLabels() {
		// Strict comparison over sorted labels makes ties
		// deterministic: the smallest label is kept.
		if score := m.tables[label].score(tokens); score > bestScore {
			best = label
			bestScore = score
		}
	}
	return best, nil
}

// LabelScore pairs a label with its posterior log-score
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Scores returns every label with its log-score for text, highest
// first. Equal scores are ordered lexicographically by label.
func (m *Model) Scores(text string) ([]LabelScore, error) {
	return m.ScoresTokens(m.tokenizer.Tokenize(text))
}

// ScoresTokens is the pre-tokenized variant of Scores
func (m *Model) ScoresTokens(tokens []string) ([]LabelScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.trained {
		return nil, ErrNotTrained
	}

	scores := make([]LabelScore, 0, len(m.tables))
	for label, table := range m.tables {
		scores = append(scores, LabelScore{Label: label, Score: table.score(tokens)})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Label < scores[j].Label
	})
	return scores, nil
}

// Labels returns the known labels in lexicographic order
func (m *Model) Labels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedLabels()
}

// sortedLabels returns class labels in ascending lexicographic order.
// Caller must hold at least the read lock.
func (m *Model) sortedLabels() []string {
	labels := make([]string, 0, len(m.classes))
	for label := range m.classes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Trained reports whether the model has been trained
func (m *Model) Trained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trained
}

// Reset discards all accumulated counts and probability tables,
// returning the model to the untrained phase. This is the retraining
// path: the model never mutates counts after Train.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.vocab = make(map[string]int)
	m.classes = make(map[string]*classStats)
	m.numDocs = 0
	m.trained = false
	m.tables = nil
	m.lastTrained = time.Time{}
}

// LabelInfo describes the accumulated counts for one label
type LabelInfo struct {
	Label     string `json:"label"`
	Documents int    `json:"documents"`
	Tokens    int    `json:"tokens"`
}

// ModelInfo describes a model's accumulated state
type ModelInfo struct {
	Trained        bool        `json:"trained"`
	Smoothing      float64     `json:"smoothing"`
	TotalDocuments int         `json:"total_documents"`
	VocabularySize int         `json:"vocabulary_size"`
	Labels         []LabelInfo `json:"labels"`
	LastTrained    time.Time   `json:"last_trained,omitempty"`
}

// Info returns statistics about the model's training data
func (m *Model) Info() *ModelInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info := &ModelInfo{
		Trained:        m.trained,
		Smoothing:      m.smoothing,
		TotalDocuments: m.numDocs,
		VocabularySize: len(m.vocab),
		LastTrained:    m.lastTrained,
	}
	for _, label := range m.sortedLabels() {
		stats := m.classes[label]
		info.Labels = append(info.Labels, LabelInfo{
			Label:     label,
			Documents: stats.docs,
			Tokens:    stats.tokens,
		})
	}
	return info
}
