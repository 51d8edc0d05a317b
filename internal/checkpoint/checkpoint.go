// Package checkpoint persists and restores mid-episode sprint snapshots,
// backed by the filesystem by default and optionally by Redis.
package checkpoint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// AgentState is one agent's snapshot within a Checkpoint.
type AgentState struct {
	AgentID             string         `json:"agent_id"`
	RoleID              string         `json:"role_id"`
	Name                string         `json:"name"`
	Seniority           string         `json:"seniority"`
	ConversationHistory []string       `json:"conversation_history"`
	IsSwapped           bool           `json:"is_swapped"`
	SwapState           map[string]any `json:"swap_state,omitempty"`
}

// BacklogState captures the remaining backlog count and the set of story
// IDs already selected into the current sprint.
type BacklogState struct {
	Remaining int      `json:"remaining"`
	Selected  []string `json:"selected"`
}

// Checkpoint is a single persisted mid-episode snapshot, sufficient to
// restore per-agent conversation history and tracer decisions alongside
// kanban and backlog state.
type Checkpoint struct {
	EpisodeID      string                       `json:"episode_id"`
	Sprint         int                          `json:"sprint_num"`
	Phase          string                       `json:"phase"`
	Timestamp      string                       `json:"timestamp"`
	KanbanSnapshot map[string]any               `json:"kanban_snapshot"`
	AgentStates    []AgentState                 `json:"agent_states"`
	SprintResults  []map[string]any             `json:"sprint_results"`
	MetaLearnings  []map[string]any             `json:"meta_learnings"`
	TracerStates   map[string][]map[string]any  `json:"tracer_states"`
	BacklogState   BacklogState                 `json:"backlog_state"`
	ConfigHash     string                       `json:"config_hash"`
}

// HashConfig computes the 16-hex-character compatibility tag for a
// config: SHA-256 of its sorted-key JSON encoding, truncated to 16 chars.
func HashConfig(config any) (string, error) {
	data, err := json.Marshal(sortedAny(config))
	if err != nil {
		return "", fmt.Errorf("marshal config for hashing: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16], nil
}

// sortedAny round-trips through map[string]any via JSON so that
// encoding/json's default sorted-key map ordering produces a stable hash
// input regardless of the source struct's field order.
func sortedAny(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var m any
	if err := json.Unmarshal(data, &m); err != nil {
		return v
	}
	return m
}

// Store persists and restores Checkpoints. Both the filesystem-backed
// FileStore and the Redis-backed RedisStore implement it.
type Store interface {
	Save(ctx context.Context, cp Checkpoint) error
	Restore(ctx context.Context, episodeID string, sprint int, phase string, expectedConfigHash string) (Checkpoint, error)
	List(ctx context.Context, episodeID string) ([]string, error)
}
