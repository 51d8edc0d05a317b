package action

import (
	"errors"
	"testing"
)

type fakeSprintState struct {
	failWith            error
	disturbanceCalls    int
	swapAgentID         string
	swapTargetRoleID    string
	swapProficiency     float64
	addBacklogCalls     int
	removeStoryID       string
	departAgentID       string
	backfillConfig      map[string]any
	durationMinutesLn   int
	wipLimits           map[string]int
}

func (f *fakeSprintState) InjectDisturbance(disturbanceType string, severity float64) (map[string]any, error) {
	f.disturbanceCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return map[string]any{"disturbance_type": disturbanceType, "severity": severity}, nil
}

func (f *fakeSprintState) SwapRole(agentID, targetRoleID string, proficiency float64) error {
	f.swapAgentID = agentID
	f.swapTargetRoleID = targetRoleID
	f.swapProficiency = proficiency
	return f.failWith
}

func (f *fakeSprintState) AddBacklogStory(story map[string]any) error {
	f.addBacklogCalls++
	return f.failWith
}

func (f *fakeSprintState) RemoveBacklogStory(storyID string) error {
	f.removeStoryID = storyID
	return f.failWith
}

func (f *fakeSprintState) DepartAgent(agentID string) error {
	f.departAgentID = agentID
	return f.failWith
}

func (f *fakeSprintState) BackfillAgent(cfg map[string]any) (string, error) {
	f.backfillConfig = cfg
	if f.failWith != nil {
		return "", f.failWith
	}
	return "backfill_agent", nil
}

func (f *fakeSprintState) SetSprintDurationMinutes(minutes int) {
	f.durationMinutesLn = minutes
}

func (f *fakeSprintState) SetWipLimits(limits map[string]int) {
	f.wipLimits = limits
}

func TestExecuteDispatchesEachVariant(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		check  func(t *testing.T, state *fakeSprintState, result Result)
	}{
		{
			name:   "inject disturbance",
			action: InjectDisturbance{DisturbanceType: "flaky_test", Severity: 0.5},
			check: func(t *testing.T, state *fakeSprintState, result Result) {
				if state.disturbanceCalls != 1 {
					t.Errorf("InjectDisturbance called %d times, want 1", state.disturbanceCalls)
				}
			},
		},
		{
			name:   "swap agent role",
			action: SwapAgentRole{AgentID: "a1", TargetRoleID: "qa_lead", Proficiency: 0.8},
			check: func(t *testing.T, state *fakeSprintState, result Result) {
				if state.swapAgentID != "a1" || state.swapTargetRoleID != "qa_lead" || state.swapProficiency != 0.8 {
					t.Errorf("SwapRole called with (%q,%q,%v), want (a1,qa_lead,0.8)", state.swapAgentID, state.swapTargetRoleID, state.swapProficiency)
				}
			},
		},
		{
			name:   "modify backlog add",
			action: ModifyBacklog{Operation: "add", Story: map[string]any{"id": "s1"}},
			check: func(t *testing.T, state *fakeSprintState, result Result) {
				if state.addBacklogCalls != 1 {
					t.Errorf("AddBacklogStory called %d times, want 1", state.addBacklogCalls)
				}
			},
		},
		{
			name:   "modify backlog remove",
			action: ModifyBacklog{Operation: "remove", StoryID: "s2"},
			check: func(t *testing.T, state *fakeSprintState, result Result) {
				if state.removeStoryID != "s2" {
					t.Errorf("RemoveBacklogStory called with %q, want s2", state.removeStoryID)
				}
			},
		},
		{
			name:   "modify team composition depart",
			action: ModifyTeamComposition{Operation: "depart", AgentID: "a3"},
			check: func(t *testing.T, state *fakeSprintState, result Result) {
				if state.departAgentID != "a3" {
					t.Errorf("DepartAgent called with %q, want a3", state.departAgentID)
				}
			},
		},
		{
			name:   "modify team composition backfill",
			action: ModifyTeamComposition{Operation: "backfill", BackfillConfig: map[string]any{"role_id": "dev_lead"}},
			check: func(t *testing.T, state *fakeSprintState, result Result) {
				if state.backfillConfig["role_id"] != "dev_lead" {
					t.Errorf("BackfillAgent called with %v, want role_id=dev_lead", state.backfillConfig)
				}
				if result.Detail["agent_id"] != "backfill_agent" {
					t.Errorf("Detail agent_id = %v, want backfill_agent", result.Detail["agent_id"])
				}
			},
		},
		{
			name:   "adjust sprint params duration",
			action: AdjustSprintParams{DurationMinutes: intPtr(45)},
			check: func(t *testing.T, state *fakeSprintState, result Result) {
				if state.durationMinutesLn != 45 {
					t.Errorf("SetSprintDurationMinutes = %d, want 45", state.durationMinutesLn)
				}
			},
		},
		{
			name:   "adjust sprint params wip limits",
			action: AdjustSprintParams{WipLimits: map[string]int{"in_progress": 2}},
			check: func(t *testing.T, state *fakeSprintState, result Result) {
				if state.wipLimits["in_progress"] != 2 {
					t.Errorf("SetWipLimits = %v, want in_progress=2", state.wipLimits)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &fakeSprintState{}
			exec := NewExecutor(state)
			result, err := exec.Execute(tt.action)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !result.Success {
				t.Errorf("Execute() Success = false, Reason = %q", result.Reason)
			}
			tt.check(t, state, result)
		})
	}
}

func TestExecuteStateErrorBecomesNonSuccessResultNotError(t *testing.T) {
	state := &fakeSprintState{failWith: errors.New("agent not found")}
	exec := NewExecutor(state)

	result, err := exec.Execute(SwapAgentRole{AgentID: "ghost", TargetRoleID: "po", Proficiency: 0.5})
	if err != nil {
		t.Fatalf("Execute() returned a Go error %v, want nil error with a soft-failure Result", err)
	}
	if result.Success {
		t.Error("Success = true, want false on a failing SwapRole")
	}
	if result.Reason != "agent not found" {
		t.Errorf("Reason = %q, want %q", result.Reason, "agent not found")
	}
}

func TestExecuteUnknownBacklogOperation(t *testing.T) {
	state := &fakeSprintState{}
	exec := NewExecutor(state)

	result, err := exec.Execute(ModifyBacklog{Operation: "destroy", StoryID: "s1"})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if result.Success {
		t.Error("Success = true, want false for an unrecognized backlog operation")
	}
}

func TestExecuteUnknownTeamCompositionOperation(t *testing.T) {
	state := &fakeSprintState{}
	exec := NewExecutor(state)

	result, err := exec.Execute(ModifyTeamComposition{Operation: "promote", AgentID: "a1"})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if result.Success {
		t.Error("Success = true, want false for an unrecognized team composition operation")
	}
}

func TestExecuteUnknownActionVariant(t *testing.T) {
	exec := NewExecutor(&fakeSprintState{})
	_, err := exec.Execute(unregisteredAction{})
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Execute() error = %v, want ErrUnknownAction", err)
	}
}

func TestExecuteBatchRunsInOrderAndStopsOnError(t *testing.T) {
	state := &fakeSprintState{}
	exec := NewExecutor(state)

	results, err := exec.ExecuteBatch([]Action{
		InjectDisturbance{DisturbanceType: "flaky_test", Severity: 0.2},
		SwapAgentRole{AgentID: "a1", TargetRoleID: "dev_lead", Proficiency: 0.6},
	})
	if err != nil {
		t.Fatalf("ExecuteBatch() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("ExecuteBatch() returned %d results, want 2", len(results))
	}

	_, err = exec.ExecuteBatch([]Action{unregisteredAction{}})
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("ExecuteBatch() error = %v, want ErrUnknownAction", err)
	}
}

// unregisteredAction satisfies Action from within this package to exercise
// the executor's default switch case; no variant outside this package can
// do the same since isAction is unexported.
type unregisteredAction struct{}

func (unregisteredAction) isAction() {}

func intPtr(v int) *int { return &v }
