package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lexiclass/lexiclass/pkg/classifier"
)

// RedisStore persists snapshots in Redis under a key prefix:
//
//	<prefix>:meta                 hash of model-level fields
//	<prefix>:labels               set of known labels
//	<prefix>:vocab                hash of token -> corpus count
//	<prefix>:class:<label>        hash of documents/tokens totals
//	<prefix>:class:<label>:counts hash of token -> count
type RedisStore struct {
	client *redis.Client
	config *RedisConfig
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, config *RedisConfig) (*RedisStore, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	opt.DB = config.DatabaseNum

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis connection failed: %w", err)
	}

	return &RedisStore{client: client, config: config}, nil
}

func (rs *RedisStore) metaKey() string   { return rs.config.KeyPrefix + ":meta" }
func (rs *RedisStore) labelsKey() string { return rs.config.KeyPrefix + ":labels" }
func (rs *RedisStore) vocabKey() string  { return rs.config.KeyPrefix + ":vocab" }

func (rs *RedisStore) classKey(label string) string {
	return rs.config.KeyPrefix + ":class:" + label
}

func (rs *RedisStore) countsKey(label string) string {
	return rs.classKey(label) + ":counts"
}

// Save replaces any previously stored model with the snapshot. All
// writes go through a single pipeline round-trip.
func (rs *RedisStore) Save(ctx context.Context, snap *classifier.Snapshot) error {
	// Stale labels from a previous save must be removed first.
	oldLabels, err := rs.client.SMembers(ctx, rs.labelsKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to read existing labels: %w", err)
	}

	pipe := rs.client.Pipeline()

	for _, label := range oldLabels {
		pipe.Del(ctx, rs.classKey(label), rs.countsKey(label))
	}
	pipe.Del(ctx, rs.metaKey(), rs.labelsKey(), rs.vocabKey())

	trained := 0
	if snap.Trained {
		trained = 1
	}
	pipe.HSet(ctx, rs.metaKey(), map[string]interface{}{
		"smoothing":       strconv.FormatFloat(snap.Smoothing, 'g', -1, 64),
		"trained":         trained,
		"total_documents": snap.TotalDocuments,
		"last_trained":    snap.LastTrained.Unix(),
	})

	if len(snap.Vocabulary) > 0 {
		vocab := make(map[string]interface{}, len(snap.Vocabulary))
		for token, count := range snap.Vocabulary {
			vocab[token] = count
		}
		pipe.HSet(ctx, rs.vocabKey(), vocab)
	}

	for label, class := range snap.Classes {
		pipe.SAdd(ctx, rs.labelsKey(), label)
		pipe.HSet(ctx, rs.classKey(label), map[string]interface{}{
			"documents": class.Documents,
			"tokens":    class.Tokens,
		})
		if len(class.Counts) > 0 {
			counts := make(map[string]interface{}, len(class.Counts))
			for token, count := range class.Counts {
				counts[token] = count
			}
			pipe.HSet(ctx, rs.countsKey(label), counts)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}
	return nil
}

// Load reconstructs the most recently saved snapshot
func (rs *RedisStore) Load(ctx context.Context) (*classifier.Snapshot, error) {
	meta, err := rs.client.HGetAll(ctx, rs.metaKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read model meta: %w", err)
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

	vocab, err := rs.client.HGetAll(ctx, rs.vocabKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	for token, value := range vocab {
		snap.Vocabulary[token], _ = strconv.Atoi(value)
	}

	labels, err := rs.client.SMembers(ctx, rs.labelsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	pipe := rs.client.Pipeline()
	classCmds := make([]*redis.MapStringStringCmd, len(labels))
	countCmds := make([]*redis.MapStringStringCmd, len(labels))
	for i, label := range labels {
		classCmds[i] = pipe.HGetAll(ctx, rs.classKey(label))
		countCmds[i] = pipe.HGetAll(ctx, rs.countsKey(label))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to read classes: %w", err)
	}

	for i, label := range labels {
		classMeta := classCmds[i].Val()
		class := classifier.ClassSnapshot{
			Counts: make(map[string]int),
		}
		class.Documents, _ = strconv.Atoi(classMeta["documents"])
		class.Tokens, _ = strconv.Atoi(classMeta["tokens"])
		for token, value := range countCmds[i].Val() {
			class.Counts[token], _ = strconv.Atoi(value)
		}
		snap.Classes[label] = class
	}

	return snap, nil
}

// Close releases the Redis connection
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
