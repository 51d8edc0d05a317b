// Package fixture provides a default, fully in-memory sprint-manager
// collaborator and a standard five-agent mock team, used by EpisodeRunner
// when no real sprint-manager integration is supplied.
package fixture

import (
	"context"
	"fmt"
	"sync"

	"sprintbench.app/core/internal/observation"
	"sprintbench.app/core/internal/scenario"
	"sprintbench.app/core/internal/sprintconfig"
)

// Agent is one mock team member.
type Agent struct {
	ID                  string
	RoleID              string
	Seniority           string
	Specializations     []string
	IsSwapped           bool
	SwapState           map[string]any
	IsOnboarding        bool
	ConversationHistory []string
}

// StandardTeam is the fixed five-agent mock team used by default,
// matching EpisodeRunner._create_mock_agents.
var StandardTeam = []Agent{
	{ID: "dev_lead", RoleID: "dev_lead", Seniority: "senior", Specializations: []string{"backend", "architecture"}},
	{ID: "qa_lead", RoleID: "qa_lead", Seniority: "senior", Specializations: []string{"testing"}},
	{ID: "po", RoleID: "po", Seniority: "senior"},
	{ID: "dev_mid_backend", RoleID: "dev_mid_backend", Seniority: "mid", Specializations: []string{"backend"}},
	{ID: "dev_junior_fullstack", RoleID: "dev_junior_fullstack", Seniority: "junior", Specializations: []string{"frontend", "backend"}},
}

// backlogItem is one story tracked by the mock backlog.
type backlogItem struct {
	story map[string]any
	rank  int
	done  bool
}

// SprintManager is a fully in-memory mock of the sprint-manager
// collaborator surface: kanban, backlog, disturbance schedule, and agent
// state, sufficient to drive phase.Runner, action.Executor, and
// observation.Extractor end to end without any external integration.
type SprintManager struct {
	mu sync.Mutex

	episodeID string
	sprint    int
	phase     string
	cfg       sprintconfig.ExperimentConfig
	wipLimits map[string]int

	agents       map[string]*Agent
	agentOrder   []string
	backlog      map[string]*backlogItem
	backlogOrder []string

	disturbances       []injectedDisturbance
	activeDisturbances []string
	defectCount        int

	metaLearnings []map[string]any
	sprintResults []map[string]any
}

// New constructs a SprintManager with the standard team and the given
// scenario config's initial backlog.
func New(episodeID string, cfg sprintconfig.ExperimentConfig, sc scenario.Config) *SprintManager {
	sm := &SprintManager{
		episodeID: episodeID,
		sprint:    1,
		phase:     "planning",
		cfg:       cfg,
		wipLimits: map[string]int{"in_progress": 3},
		agents:    make(map[string]*Agent),
		backlog:   make(map[string]*backlogItem),
	}
	for _, a := range StandardTeam {
		agent := a
		sm.agents[agent.ID] = &agent
		sm.agentOrder = append(sm.agentOrder, agent.ID)
	}
	for _, s := range sc.BacklogStories {
		sm.backlog[s.ID] = &backlogItem{
			story: map[string]any{
				"id": s.ID, "title": s.Title, "description": s.Description,
				"story_points": s.StoryPoints, "acceptance_criteria": s.AcceptanceCriteria,
			},
			rank: len(sm.backlogOrder),
		}
		sm.backlogOrder = append(sm.backlogOrder, s.ID)
	}
	return sm
}

// injectedDisturbance records one runtime-injected disturbance (via
// action.InjectDisturbance), distinct from the scenario catalog's
// scripted DisturbanceOverrides frequency table.
type injectedDisturbance struct {
	Kind        string
	SprintIndex int
	Description string
}

// Config implements phase.SprintManager.
func (sm *SprintManager) Config() sprintconfig.ExperimentConfig {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.cfg
}

// SetPhase advances the mock sprint manager's current sprint/phase.
func (sm *SprintManager) SetPhase(sprint int, phase string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sprint = sprint
	sm.phase = phase
}

// RunPhase implements phase.Collaborator with a minimal, deterministic
// simulation: planning is a no-op snapshot, development marks the
// top-ranked undone story in progress then done (one pairing session per
// story completed, none once the backlog is exhausted) and records a
// sprint result summary, qa_review increments the defect count when a
// disturbance of kind "production_incident" is scheduled this sprint,
// retro appends a meta-learning entry, meta_learning is a no-op.
func (sm *SprintManager) RunPhase(ctx context.Context, sprint int, phase string) (any, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.sprint = sprint
	sm.phase = phase
	sm.activeDisturbances = nil

	switch phase {
	case "planning":
		return map[string]any{"backlog_size": len(sm.backlogOrder)}, nil
	case "development":
		completed := 0
		pairingSessions := 0
		for _, id := range sm.backlogOrder {
			item := sm.backlog[id]
			if !item.done {
				item.done = true
				completed++
				pairingSessions++
				break
			}
		}
		sm.recordSprintResult(sprint, completed, pairingSessions)
		return map[string]any{"stories_completed_this_phase": completed}, nil
	case "qa_review":
		for _, d := range sm.disturbances {
			if d.Kind == "production_incident" && d.SprintIndex == sprint-1 {
				sm.defectCount++
				sm.activeDisturbances = append(sm.activeDisturbances, d.Kind)
			}
		}
		return map[string]any{"defect_count": sm.defectCount}, nil
	case "retro":
		entry := map[string]any{"sprint": sprint, "note": "retro completed"}
		sm.metaLearnings = append(sm.metaLearnings, entry)
		return map[string]any{}, nil
	case "meta_learning":
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("fixture: unhandled phase %q", phase)
	}
}

// recordSprintResult appends one sprint-level result summary, using the
// fixed relationship velocity = 3 * features_completed: this mock assigns
// every completed story an assumed average of 3 velocity points rather
// than summing actual story points, so reward computation has a stable
// signal regardless of which story happened to be on top of the backlog.
func (sm *SprintManager) recordSprintResult(sprint, completed, pairingSessions int) {
	planned := len(sm.backlogOrder)
	sm.sprintResults = append(sm.sprintResults, map[string]any{
		"sprint":             sprint,
		"velocity":           float64(3 * completed),
		"features_completed": completed,
		"features_planned":   planned,
		"test_coverage":      0.8,
		"pairing_sessions":   pairingSessions,
		"departure_events":   []string{},
		"backfill_events":    []string{},
	})
}

// --- observation.SprintState ---

func (sm *SprintManager) KanbanSnapshot() map[string]any {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	var todo, inProgress, done []map[string]any
	for _, id := range sm.backlogOrder {
		item := sm.backlog[id]
		if item.done {
			done = append(done, item.story)
		} else {
			todo = append(todo, item.story)
		}
	}
	return map[string]any{"todo": todo, "in_progress": inProgress, "done": done}
}

func (sm *SprintManager) Agents() []observation.AgentState {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	out := make([]observation.AgentState, 0, len(sm.agentOrder))
	for _, id := range sm.agentOrder {
		a := sm.agents[id]
		out = append(out, observation.AgentState{
			AgentID:             a.ID,
			RoleID:              a.RoleID,
			Seniority:           a.Seniority,
			Specializations:     append([]string(nil), a.Specializations...),
			IsSwapped:           a.IsSwapped,
			IsOnboarding:        a.IsOnboarding,
			ConversationLength:  len(a.ConversationHistory),
		})
	}
	return out
}

func (sm *SprintManager) SprintMetrics(sprintNum int) map[string]any {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, r := range sm.sprintResults {
		if r["sprint"] == sprintNum {
			return r
		}
	}
	return nil
}

func (sm *SprintManager) ActiveDisturbances() []string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return append([]string(nil), sm.activeDisturbances...)
}

func (sm *SprintManager) MetaLearningsCount() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.metaLearnings)
}

func (sm *SprintManager) DepartureEvents(sprintNum int) []map[string]any {
	return nil
}

func (sm *SprintManager) BackfillEvents(sprintNum int) []map[string]any {
	return nil
}

func (sm *SprintManager) TeamComposition() map[string]int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	composition := make(map[string]int)
	for _, id := range sm.agentOrder {
		a := sm.agents[id]
		composition[a.Seniority]++
		composition["role_"+a.RoleID]++
	}
	return composition
}

// --- accessors used by reward wiring and tests ---

func (sm *SprintManager) EpisodeID() string { return sm.episodeID }

func (sm *SprintManager) CurrentSprint() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.sprint
}

func (sm *SprintManager) CurrentPhase() string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.phase
}

func (sm *SprintManager) StoriesRemaining() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	remaining := 0
	for _, item := range sm.backlog {
		if !item.done {
			remaining++
		}
	}
	return remaining
}

func (sm *SprintManager) StoriesDone() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	done := 0
	for _, item := range sm.backlog {
		if item.done {
			done++
		}
	}
	return done
}

func (sm *SprintManager) DefectCount() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.defectCount
}

// SprintResults returns a copy of every recorded per-sprint result map.
func (sm *SprintManager) SprintResults() []map[string]any {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	out := make([]map[string]any, len(sm.sprintResults))
	copy(out, sm.sprintResults)
	return out
}

// AgentRoles returns each agent's current role ID.
func (sm *SprintManager) AgentRoles() map[string]string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	roles := make(map[string]string, len(sm.agents))
	for id, a := range sm.agents {
		roles[id] = a.RoleID
	}
	return roles
}

// --- action.SprintState ---

func (sm *SprintManager) InjectDisturbance(disturbanceType string, severity float64) (map[string]any, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.disturbances = append(sm.disturbances, injectedDisturbance{
		Kind: disturbanceType, SprintIndex: sm.sprint - 1, Description: fmt.Sprintf("injected at phase %q", sm.phase),
	})
	return map[string]any{"sprint_index": sm.sprint - 1, "severity": severity}, nil
}

func (sm *SprintManager) SwapRole(agentID, targetRoleID string, proficiency float64) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	a, ok := sm.agents[agentID]
	if !ok {
		return fmt.Errorf("fixture: unknown agent %q", agentID)
	}
	a.RoleID = targetRoleID
	a.IsSwapped = true
	a.SwapState = map[string]any{"target_role_id": targetRoleID, "proficiency": proficiency, "sprint": sm.sprint}
	return nil
}

func (sm *SprintManager) AddBacklogStory(story map[string]any) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	id, ok := story["id"].(string)
	if !ok || id == "" {
		return fmt.Errorf("fixture: story missing id")
	}
	sm.backlog[id] = &backlogItem{story: story, rank: len(sm.backlogOrder)}
	sm.backlogOrder = append(sm.backlogOrder, id)
	return nil
}

func (sm *SprintManager) RemoveBacklogStory(storyID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.backlog[storyID]; !ok {
		return fmt.Errorf("fixture: unknown story %q", storyID)
	}
	delete(sm.backlog, storyID)
	for i, id := range sm.backlogOrder {
		if id == storyID {
			sm.backlogOrder = append(sm.backlogOrder[:i], sm.backlogOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (sm *SprintManager) DepartAgent(agentID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.agents[agentID]; !ok {
		return fmt.Errorf("fixture: unknown agent %q", agentID)
	}
	delete(sm.agents, agentID)
	for i, id := range sm.agentOrder {
		if id == agentID {
			sm.agentOrder = append(sm.agentOrder[:i], sm.agentOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (sm *SprintManager) BackfillAgent(cfg map[string]any) (string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	roleID, _ := cfg["role_id"].(string)
	if roleID == "" {
		roleID = "backfill_agent"
	}
	agentID := roleID
	sm.agents[agentID] = &Agent{ID: agentID, RoleID: roleID, Seniority: "mid", IsOnboarding: true}
	sm.agentOrder = append(sm.agentOrder, agentID)
	return agentID, nil
}

func (sm *SprintManager) SetSprintDurationMinutes(minutes int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cfg.SprintDurationMinutes = minutes
}

func (sm *SprintManager) SetWipLimits(limits map[string]int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for k, v := range limits {
		sm.wipLimits[k] = v
	}
}
