// Package action implements the closed, five-variant action space an RL
// policy uses to perturb a running episode, and the executor that applies
// each variant to sprint state.
package action

import "fmt"

// Action is the sealed union of all action variants. The unexported
// marker method prevents variants from being defined outside this
// package, mirroring the original's closed dataclass union.
type Action interface {
	isAction()
}

// InjectDisturbance injects a disturbance event into the running sprint.
type InjectDisturbance struct {
	DisturbanceType string
	Severity        float64
}

func (InjectDisturbance) isAction() {}

// SwapAgentRole swaps an agent to a different role mid-episode, at a
// given proficiency level for the new role.
type SwapAgentRole struct {
	AgentID       string
	TargetRoleID  string
	Proficiency   float64
}

func (SwapAgentRole) isAction() {}

// ModifyBacklog adds or removes a story from the backlog.
type ModifyBacklog struct {
	Operation string // "add" or "remove"
	Story     map[string]any // used when Operation == "add"
	StoryID   string         // used when Operation == "remove"
}

func (ModifyBacklog) isAction() {}

// ModifyTeamComposition removes an agent from the team (depart) or adds a
// new one (backfill).
type ModifyTeamComposition struct {
	Operation      string // "depart" or "backfill"
	AgentID        string // used when Operation == "depart"
	BackfillConfig map[string]any // used when Operation == "backfill"
}

func (ModifyTeamComposition) isAction() {}

// AdjustSprintParams adjusts sprint duration and/or per-column WIP limits.
type AdjustSprintParams struct {
	DurationMinutes *int
	WipLimits       map[string]int
}

func (AdjustSprintParams) isAction() {}

// ErrUnknownAction is returned when an Action carries a variant the
// executor's type switch does not recognize. Reachable only when a new
// variant is added to this package without a matching case in Executor.
var ErrUnknownAction = fmt.Errorf("action: unknown action variant")

// Result is the soft-failure-carrying outcome of executing an action.
// Non-exceptional failures (unknown agent, disabled disturbance engine)
// are reported here rather than as an error.
type Result struct {
	Success bool
	Reason  string
	Detail  map[string]any
}

// SprintState is the minimal mutation surface the executor needs; the
// fixture package's mock sprint manager and any real integration satisfy
// this narrow interface.
type SprintState interface {
	InjectDisturbance(disturbanceType string, severity float64) (map[string]any, error)
	SwapRole(agentID, targetRoleID string, proficiency float64) error
	AddBacklogStory(story map[string]any) error
	RemoveBacklogStory(storyID string) error
	DepartAgent(agentID string) error
	BackfillAgent(cfg map[string]any) (string, error)
	SetSprintDurationMinutes(minutes int)
	SetWipLimits(limits map[string]int)
}

// Executor applies Actions to a SprintState.
type Executor struct {
	state SprintState
}

// NewExecutor constructs an Executor bound to the given sprint state.
func NewExecutor(state SprintState) *Executor {
	return &Executor{state: state}
}

// Execute dispatches a on the bound state. It returns ErrUnknownAction only
// for a variant with no matching case below; every other failure mode is
// reported as a non-success Result.
func (e *Executor) Execute(a Action) (Result, error) {
	switch v := a.(type) {
	case InjectDisturbance:
		return e.injectDisturbance(v)
	case SwapAgentRole:
		return e.swapAgentRole(v)
	case ModifyBacklog:
		return e.modifyBacklog(v)
	case ModifyTeamComposition:
		return e.modifyTeamComposition(v)
	case AdjustSprintParams:
		return e.adjustSprintParams(v)
	default:
		return Result{}, ErrUnknownAction
	}
}

// ExecuteBatch executes multiple actions sequentially, in order.
func (e *Executor) ExecuteBatch(actions []Action) ([]Result, error) {
	results := make([]Result, 0, len(actions))
	for _, a := range actions {
		res, err := e.Execute(a)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Executor) injectDisturbance(a InjectDisturbance) (Result, error) {
	details, err := e.state.InjectDisturbance(a.DisturbanceType, a.Severity)
	if err != nil {
		return Result{Success: false, Reason: err.Error()}, nil
	}
	return Result{Success: true, Detail: map[string]any{
		"disturbance_type": a.DisturbanceType, "severity": a.Severity, "details": details,
	}}, nil
}

func (e *Executor) swapAgentRole(a SwapAgentRole) (Result, error) {
	if err := e.state.SwapRole(a.AgentID, a.TargetRoleID, a.Proficiency); err != nil {
		return Result{Success: false, Reason: err.Error()}, nil
	}
	return Result{Success: true, Detail: map[string]any{"agent_id": a.AgentID, "target_role_id": a.TargetRoleID}}, nil
}

func (e *Executor) modifyBacklog(a ModifyBacklog) (Result, error) {
	var err error
	switch a.Operation {
	case "add":
		err = e.state.AddBacklogStory(a.Story)
	case "remove":
		err = e.state.RemoveBacklogStory(a.StoryID)
	default:
		return Result{Success: false, Reason: fmt.Sprintf("unknown operation: %q", a.Operation)}, nil
	}
	if err != nil {
		return Result{Success: false, Reason: err.Error()}, nil
	}
	return Result{Success: true, Detail: map[string]any{"operation": a.Operation, "story_id": a.StoryID}}, nil
}

func (e *Executor) modifyTeamComposition(a ModifyTeamComposition) (Result, error) {
	switch a.Operation {
	case "depart":
		if err := e.state.DepartAgent(a.AgentID); err != nil {
			return Result{Success: false, Reason: err.Error()}, nil
		}
		return Result{Success: true, Detail: map[string]any{"operation": "depart", "agent_id": a.AgentID}}, nil
	case "backfill":
		agentID, err := e.state.BackfillAgent(a.BackfillConfig)
		if err != nil {
			return Result{Success: false, Reason: err.Error()}, nil
		}
		return Result{Success: true, Detail: map[string]any{"operation": "backfill", "agent_id": agentID}}, nil
	default:
		return Result{Success: false, Reason: fmt.Sprintf("unknown operation: %q", a.Operation)}, nil
	}
}

func (e *Executor) adjustSprintParams(a AdjustSprintParams) (Result, error) {
	changes := map[string]any{}
	if a.DurationMinutes != nil {
		e.state.SetSprintDurationMinutes(*a.DurationMinutes)
		changes["duration_minutes"] = *a.DurationMinutes
	}
	if a.WipLimits != nil {
		e.state.SetWipLimits(a.WipLimits)
		changes["wip_limits"] = a.WipLimits
	}
	return Result{Success: true, Detail: map[string]any{"changes": changes}}, nil
}
