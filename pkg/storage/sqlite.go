package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lexiclass/lexiclass/pkg/classifier"
)

// SQLiteStore persists snapshots in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at path with WAL
// mode enabled and the model schema in place.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS labels (
	label TEXT PRIMARY KEY,
	documents INTEGER NOT NULL,
	tokens INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS vocabulary (
	token TEXT PRIMARY KEY,
	count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS word_counts (
	label TEXT NOT NULL,
	token TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (label, token)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Save replaces the stored model with the snapshot in one transaction
func (ss *SQLiteStore) Save(ctx context.Context, snap *classifier.Snapshot) error {
	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"meta", "labels", "vocabulary", "word_counts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	trained := "0"
	if snap.Trained {
		trained = "1"
	}
	meta := map[string]string{
		"smoothing":       fmt.Sprintf("%g", snap.Smoothing),
		"trained":         trained,
		"total_documents": fmt.Sprintf("%d", snap.TotalDocuments),
		"last_trained":    fmt.Sprintf("%d", snap.LastTrained.Unix()),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return err
		}
	}

	vocabStmt, err := tx.PrepareContext(ctx, `INSERT INTO vocabulary (token, count) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer vocabStmt.Close()
	for token, count := range snap.Vocabulary {
		if _, err := vocabStmt.ExecContext(ctx, token, count); err != nil {
			return err
		}
	}

	countStmt, err := tx.PrepareContext(ctx, `INSERT INTO word_counts (label, token, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer countStmt.Close()

	for label, class := range snap.Classes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO labels (label, documents, tokens) VALUES (?, ?, ?)`,
			label, class.Documents, class.Tokens); err != nil {
			return err
		}
		for token, count := range class.Counts {
			if _, err := countStmt.ExecContext(ctx, label, token, count); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Load reconstructs the stored snapshot
func (ss *SQLiteStore) Load(ctx context.Context) (*classifier.Snapshot, error) {
	meta := make(map[string]string)
	rows, err := ss.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, ErrNoModel
	}

	snap := &classifier.Snapshot{
		Vocabulary: make(map[string]int),
		Classes:    make(map[string]classifier.ClassSnapshot),
	}
	snap.Smoothing, _ = strconv.ParseFloat(meta["smoothing"], 64)
	snap.Trained = meta["trained"] == "1"
	snap.TotalDocuments, _ = strconv.Atoi(meta["total_documents"])
	if unix, err := strconv.ParseInt(meta["last_trained"], 10, 64); err == nil && unix > 0 {
		snap.LastTrained = time.Unix(unix, 0)
	}

	vocabRows, err := ss.db.QueryContext(ctx, `SELECT token, count FROM vocabulary`)
	if err != nil {
		return nil, err
	}
	defer vocabRows.Close()
	for vocabRows.Next() {
		var token string
		var count int
		if err := vocabRows.Scan(&token, &count); err != nil {
			return nil, err
		}
		snap.Vocabulary[token] = count
	}
	if err := vocabRows.Err(); err != nil {
		return nil, err
	}

	labelRows, err := ss.db.QueryContext(ctx, `SELECT label, documents, tokens FROM labels`)
	if err != nil {
		return nil, err
	}
	defer labelRows.Close()
	for labelRows.Next() {
		var label string
		var docs, tokens int
		if err := labelRows.Scan(&label, &docs, &tokens); err != nil {
			return nil, err
		}
		snap.Classes[label] = classifier.ClassSnapshot{
			Documents: docs,
			Tokens:    tokens,
			Counts:    make(map[string]int),
		}
	}
	if err := labelRows.Err(); err != nil {
		return nil, err
	}

	countRows, err := ss.db.QueryContext(ctx, `SELECT label, token, count FROM word_counts`)
	if err != nil {
		return nil, err
	}
	defer countRows.Close()
	for countRows.Next() {
		var label, token string
		var count int
		if err := countRows.Scan(&label, &token, &count); err != nil {
			return nil, err
		}
		if class, ok := snap.Classes[label]; ok {
			class.Counts[token] = count
		}
	}
	if err := countRows.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

// Close closes the database connection
func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
