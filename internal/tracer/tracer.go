// Package tracer records per-agent decisions during an episode and writes
// them to durable per-agent trace files, matching the original
// decision_tracer.py's truncation and ID-grammar conventions exactly.
package tracer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	contextTruncateLen = 500
	contentTruncateLen = 1000
)

// Action type enum fixed by the original Decision dataclass's action_type
// field: a decision is always one of these four kinds.
const (
	ActionGenerate           = "generate"
	ActionExecuteCodingTask  = "execute_coding_task"
	ActionCheckpointDecision = "checkpoint_decision"
	ActionAskQuestion        = "ask_question"
)

// Decision is a single recorded agent decision.
type Decision struct {
	DecisionID     string         `json:"decision_id"`
	AgentID        string         `json:"agent_id"`
	Sprint         int            `json:"sprint"`
	Phase          string         `json:"phase"`
	Timestamp      string         `json:"timestamp"`
	Context        string         `json:"context"`
	ActionType     string         `json:"action_type"`
	ActionContent  string         `json:"action_content"`
	ReasoningTrace string         `json:"reasoning_trace"`
	Outcome        *string        `json:"outcome,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// DecisionTracer accumulates decisions for one episode, keyed by
// (agent_id, sprint, phase) for deterministic decision-ID sequencing.
type DecisionTracer struct {
	mu        sync.Mutex
	episodeID string
	decisions []Decision
	byID      map[string]int // decision_id -> index into decisions, for SetOutcome
	seq       map[string]int
	sprint    int
	phase     string
}

// New creates a DecisionTracer for the given episode.
func New(episodeID string) *DecisionTracer {
	return &DecisionTracer{
		episodeID: episodeID,
		seq:       make(map[string]int),
		byID:      make(map[string]int),
	}
}

// SetPhase updates the active sprint/phase and resets the sequence counter
// for every agent under the new (sprint, phase) pair.
func (t *DecisionTracer) SetPhase(sprint int, phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sprint = sprint
	t.phase = phase
	t.seq = make(map[string]int)
}

func (t *DecisionTracer) nextDecisionID(agentID string) string {
	key := fmt.Sprintf("%s|%d|%s", agentID, t.sprint, t.phase)
	t.seq[key]++
	return fmt.Sprintf("%s-s%02d-%s-%03d", agentID, t.sprint, t.phase, t.seq[key])
}

// Record appends a fully-formed decision, applying the fixed truncation
// rules to context and action content. reasoningTrace is stored in full.
// The decision's outcome starts unset; call SetOutcome to attach a
// post-hoc result once one becomes available.
func (t *DecisionTracer) Record(agentID, actionType, context, actionContent, reasoningTrace string, metadata map[string]any) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	d := Decision{
		DecisionID:     t.nextDecisionID(agentID),
		AgentID:        agentID,
		Sprint:         t.sprint,
		Phase:          t.phase,
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
		Context:        firstN(context, contextTruncateLen),
		ActionType:     actionType,
		ActionContent:  firstN(actionContent, contentTruncateLen),
		ReasoningTrace: reasoningTrace,
		Metadata:       metadata,
	}
	t.byID[d.DecisionID] = len(t.decisions)
	t.decisions = append(t.decisions, d)
	return d
}

// RecordFromGenerate records a decision sourced from a free-form generation
// call (no tool calls), matching record_from_generate's field mapping.
func (t *DecisionTracer) RecordFromGenerate(agentID, context, response string, metadata map[string]any) Decision {
	return t.Record(agentID, ActionGenerate, context, response, response, metadata)
}

// RecordFromCodingTask records a decision sourced from a coding-tool-use
// task, where actionContent is the task's human-readable summary.
func (t *DecisionTracer) RecordFromCodingTask(agentID, context, summary, reasoningTrace string, metadata map[string]any) Decision {
	return t.Record(agentID, ActionExecuteCodingTask, context, summary, reasoningTrace, metadata)
}

// RecordCheckpointDecision records a decision made at a checkpoint
// boundary, e.g. whether to continue or roll back.
func (t *DecisionTracer) RecordCheckpointDecision(agentID, context, decision, reasoningTrace string, metadata map[string]any) Decision {
	return t.Record(agentID, ActionCheckpointDecision, context, decision, reasoningTrace, metadata)
}

// RecordAskQuestion records a decision where the agent asked a question
// rather than taking action.
func (t *DecisionTracer) RecordAskQuestion(agentID, context, question, reasoningTrace string, metadata map[string]any) Decision {
	return t.Record(agentID, ActionAskQuestion, context, question, reasoningTrace, metadata)
}

// SetOutcome attaches a post-hoc outcome to a previously recorded decision,
// identified by its decision ID. It is a no-op if the ID is unknown.
func (t *DecisionTracer) SetOutcome(decisionID, outcome string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, ok := t.byID[decisionID]
	if !ok {
		return
	}
	t.decisions[idx].Outcome = &outcome
}

// Decisions returns a copy of all recorded decisions.
func (t *DecisionTracer) Decisions() []Decision {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Decision, len(t.decisions))
	copy(out, t.decisions)
	return out
}

// DecisionsFor returns decisions for a single agent, in recorded order.
func (t *DecisionTracer) DecisionsFor(agentID string) []Decision {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Decision
	for _, d := range t.decisions {
		if d.AgentID == agentID {
			out = append(out, d)
		}
	}
	return out
}

// WriteTrace writes one indented JSON file per agent under root/episodeID/.
func (t *DecisionTracer) WriteTrace(ctx context.Context, root string) error {
	t.mu.Lock()
	byAgent := make(map[string][]Decision)
	for _, d := range t.decisions {
		byAgent[d.AgentID] = append(byAgent[d.AgentID], d)
	}
	t.mu.Unlock()

	dir := filepath.Join(root, t.episodeID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create trace dir: %w", err)
	}

	for agentID, decisions := range byAgent {
		data, err := json.MarshalIndent(decisions, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal trace for %s: %w", agentID, err)
		}
		path := filepath.Join(dir, agentID+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write trace for %s: %w", agentID, err)
		}
	}

	slog.InfoContext(ctx, "wrote decision traces", "episode_id", t.episodeID, "agents", len(byAgent))
	return nil
}

// firstN returns the first n bytes of s, or s itself if shorter.
func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
