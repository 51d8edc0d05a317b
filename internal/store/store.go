// Package store archives completed episode results durably in Postgres
// for offline RL dataset export, adapted from the teacher's pgxpool
// wrapper pattern but using raw SQL (no sqlc codegen step in this repo).
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the connection pool.
type Config struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// Store wraps a pgxpool.Pool for episode result persistence.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store, pinging the pool to fail fast on bad configuration.
func New(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	} else {
		poolCfg.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases all pooled connections.
func (s *Store) Close() {
	s.pool.Close()
}

// EpisodeRecord is the durable, queryable summary of one completed
// episode, suitable for later export into an offline RL dataset.
type EpisodeRecord struct {
	EpisodeID   string
	EpisodeType string
	Difficulty  string
	Seed        int64
	Sprints     int
	RewardTotal float64
	RewardJSON  []byte
}

const schema = `
CREATE TABLE IF NOT EXISTS episode_results (
	episode_id   TEXT PRIMARY KEY,
	episode_type TEXT NOT NULL,
	difficulty   TEXT NOT NULL,
	seed         BIGINT NOT NULL,
	sprints      INT NOT NULL,
	reward_total DOUBLE PRECISION NOT NULL,
	reward       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the episode_results table if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save upserts one episode record.
func (s *Store) Save(ctx context.Context, rec EpisodeRecord) error {
	const q = `
		INSERT INTO episode_results (episode_id, episode_type, difficulty, seed, sprints, reward_total, reward)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (episode_id) DO UPDATE SET
			episode_type = EXCLUDED.episode_type,
			difficulty   = EXCLUDED.difficulty,
			seed         = EXCLUDED.seed,
			sprints      = EXCLUDED.sprints,
			reward_total = EXCLUDED.reward_total,
			reward       = EXCLUDED.reward`

	_, err := s.pool.Exec(ctx, q, rec.EpisodeID, rec.EpisodeType, rec.Difficulty, rec.Seed, rec.Sprints, rec.RewardTotal, rec.RewardJSON)
	if err != nil {
		return fmt.Errorf("save episode record: %w", err)
	}
	return nil
}

// Get fetches one episode record by ID.
func (s *Store) Get(ctx context.Context, episodeID string) (EpisodeRecord, error) {
	const q = `
		SELECT episode_id, episode_type, difficulty, seed, sprints, reward_total, reward
		FROM episode_results WHERE episode_id = $1`

	var rec EpisodeRecord
	row := s.pool.QueryRow(ctx, q, episodeID)
	if err := row.Scan(&rec.EpisodeID, &rec.EpisodeType, &rec.Difficulty, &rec.Seed, &rec.Sprints, &rec.RewardTotal, &rec.RewardJSON); err != nil {
		return EpisodeRecord{}, fmt.Errorf("get episode record: %w", err)
	}
	return rec, nil
}

// MarshalReward is a convenience for building RewardJSON from any reward
// signal value before calling Save.
func MarshalReward(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal reward: %w", err)
	}
	return data, nil
}
