package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/lexiclass/lexiclass/pkg/classifier"
)

// ErrNoModel is returned by Load when the backend holds no saved model
var ErrNoModel = errors.New("storage: no saved model")

// Store persists classifier snapshots. Backends store the frozen
// counts only; probability tables are rebuilt on restore.
type Store interface {
	Save(ctx context.Context, snap *classifier.Snapshot) error
	Load(ctx context.Context) (*classifier.Snapshot, error)
	Close() error
}

// Config selects and configures a storage backend
type Config struct {
	// Backend selection: "file", "redis" or "sqlite"
	Backend string `json:"backend" yaml:"backend"`

	File   FileConfig   `json:"file" yaml:"file"`
	Redis  RedisConfig  `json:"redis" yaml:"redis"`
	SQLite SQLiteConfig `json:"sqlite" yaml:"sqlite"`
}

// FileConfig holds file backend settings
type FileConfig struct {
	// Model file path
	Path string `json:"path" yaml:"path"`
}

// RedisConfig holds Redis backend settings
type RedisConfig struct {
	URL         string `json:"url" yaml:"url"`
	KeyPrefix   string `json:"key_prefix" yaml:"key_prefix"`
	DatabaseNum int    `json:"database_num" yaml:"database_num"`
}

// SQLiteConfig holds SQLite backend settings
type SQLiteConfig struct {
	Path string `json:"path" yaml:"path"`
}

// DefaultConfig returns the default storage configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: "file",
		File: FileConfig{
			Path: "lexiclass-model.json",
		},
		Redis: RedisConfig{
			URL:         "redis://localhost:6379",
			KeyPrefix:   "lexiclass:model",
			DatabaseNum: 0,
		},
		SQLite: SQLiteConfig{
			Path: "lexiclass-model.db",
		},
	}
}

// Open creates the store named by cfg.Backend
func Open(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.File.Path), nil
	case "redis":
		return NewRedisStore(ctx, &cfg.Redis)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
