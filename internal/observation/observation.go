// Package observation builds the per-agent and sprint-level observation
// payload an RL policy consumes between phases.
package observation

import "sort"

// AgentObservation is the observable state of a single agent.
type AgentObservation struct {
	AgentID             string         `json:"agent_id"`
	RoleID              string         `json:"role_id"`
	Seniority           string         `json:"seniority"`
	Specializations     []string       `json:"specializations"`
	IsSwapped           bool           `json:"is_swapped"`
	IsOnboarding        bool           `json:"is_onboarding"`
	RecentDecisions     []map[string]any `json:"recent_decisions"`
	ConversationLength  int            `json:"conversation_length"`
}

// Observation is the complete observation of sprint state for RL.
type Observation struct {
	SprintNum           int                `json:"sprint_num"`
	Phase               string             `json:"phase"`
	Kanban              map[string]any     `json:"kanban"`
	Agents              []AgentObservation `json:"agents"`
	SprintMetrics       map[string]any     `json:"sprint_metrics,omitempty"`
	DisturbancesActive  []string           `json:"disturbances_active"`
	MetaLearningsCount  int                `json:"meta_learnings_count"`
	DepartureEvents     []map[string]any   `json:"departure_events"`
	BackfillEvents      []map[string]any   `json:"backfill_events"`
	TeamComposition     map[string]int     `json:"team_composition"`
}

// AgentState is the observable state of one agent as reported by
// SprintState.Agents.
type AgentState struct {
	AgentID             string
	RoleID              string
	Seniority           string
	Specializations     []string
	IsSwapped           bool
	IsOnboarding        bool
	ConversationLength  int
	RecentDecisions     []map[string]any // each has decision_id, phase, action_type, timestamp
}

// SprintState is the state the extractor needs from a running sprint
// manager; fixture.SprintManager and any real integration satisfy this
// narrow interface.
type SprintState interface {
	KanbanSnapshot() map[string]any
	Agents() []AgentState
	SprintMetrics(sprintNum int) map[string]any
	ActiveDisturbances() []string
	MetaLearningsCount() int
	DepartureEvents(sprintNum int) []map[string]any
	BackfillEvents(sprintNum int) []map[string]any
	TeamComposition() map[string]int
}

// Extractor builds Observation snapshots from sprint state.
type Extractor struct{}

// NewExtractor constructs an Extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract builds the current observation, ordering agents by ID for
// determinism.
func (e *Extractor) Extract(state SprintState, sprintNum int, phase string) Observation {
	agentStates := state.Agents()
	sort.Slice(agentStates, func(i, j int) bool { return agentStates[i].AgentID < agentStates[j].AgentID })

	agents := make([]AgentObservation, 0, len(agentStates))
	for _, a := range agentStates {
		agents = append(agents, AgentObservation{
			AgentID:            a.AgentID,
			RoleID:             a.RoleID,
			Seniority:          a.Seniority,
			Specializations:    append([]string(nil), a.Specializations...),
			IsSwapped:          a.IsSwapped,
			IsOnboarding:       a.IsOnboarding,
			RecentDecisions:    a.RecentDecisions,
			ConversationLength: a.ConversationLength,
		})
	}

	metrics := state.SprintMetrics(sprintNum)

	return Observation{
		SprintNum:          sprintNum,
		Phase:              phase,
		Kanban:             state.KanbanSnapshot(),
		Agents:             agents,
		SprintMetrics:      metrics,
		DisturbancesActive: state.ActiveDisturbances(),
		MetaLearningsCount: state.MetaLearningsCount(),
		DepartureEvents:    state.DepartureEvents(sprintNum),
		BackfillEvents:     state.BackfillEvents(sprintNum),
		TeamComposition:    state.TeamComposition(),
	}
}
