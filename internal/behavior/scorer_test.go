package behavior

import (
	"testing"

	"sprintbench.app/core/internal/tracer"
)

func TestScoreEmptyExpectedAlwaysPerfect(t *testing.T) {
	score, detected := NewScorer().Score(nil, nil)
	if score != 1.0 {
		t.Errorf("Score() = %v, want 1.0 for empty expected", score)
	}
	if detected != nil {
		t.Errorf("Score() detected = %v, want nil", detected)
	}
}

func TestScoreEmptyDecisionsNonEmptyExpectedIsZero(t *testing.T) {
	score, detected := NewScorer().Score(nil, []string{"B-01", "B-02"})
	if score != 0.0 {
		t.Errorf("Score() = %v, want 0.0", score)
	}
	if detected != nil {
		t.Errorf("Score() detected = %v, want nil", detected)
	}
}

func TestScoreComputesDetectedOverExpectedRatio(t *testing.T) {
	decisions := []tracer.Decision{
		{DecisionID: "d1", AgentID: "dev_lead", ActionContent: "story point estimate: SP 5"},
		{DecisionID: "d2", AgentID: "qa_lead", ActionContent: "please review my work at the checkpoint"},
	}

	score, detected := NewScorer().Score(decisions, []string{"B-04", "B-11", "B-17"})
	if score != 2.0/3.0 {
		t.Errorf("Score() = %v, want 2/3", score)
	}
	if len(detected) != 2 {
		t.Errorf("Score() detected = %v, want 2 codes", detected)
	}
}

func TestScoreIgnoresUnknownExpectedCodes(t *testing.T) {
	decisions := []tracer.Decision{{DecisionID: "d1", ActionContent: "clarify the requirement"}}
	score, _ := NewScorer().Score(decisions, []string{"B-99"})
	if score != 0.0 {
		t.Errorf("Score() = %v, want 0.0 for an unknown code", score)
	}
}

func TestDetectReturnsOnePerMatchingCodeDecisionPair(t *testing.T) {
	decisions := []tracer.Decision{
		{DecisionID: "d1", AgentID: "dev_lead", ActionContent: "could you clarify the requirements?"},
	}
	detections := NewScorer().Detect(decisions)

	found := false
	for _, d := range detections {
		if d.Code == "B-01" && d.DecisionID == "d1" && d.AgentID == "dev_lead" {
			found = true
		}
	}
	if !found {
		t.Errorf("Detect() = %+v, want a B-01/d1 detection", detections)
	}
}

func TestCheckActionOrderStrictlyBefore(t *testing.T) {
	tests := []struct {
		name     string
		content  []string
		wantFire bool
	}{
		{
			name:     "then after first fires",
			content:  []string{"let's write a test first", "now implement the feature"},
			wantFire: true,
		},
		{
			name:     "then before first does not fire",
			content:  []string{"implement the feature", "tests pending"},
			wantFire: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decisions := make([]tracer.Decision, len(tt.content))
			for i, c := range tt.content {
				decisions[i] = tracer.Decision{DecisionID: c, ActionContent: c}
			}
			got := checkActionOrder(decisions, "test", "implement")
			if got != tt.wantFire {
				t.Errorf("checkActionOrder() = %v, want %v", got, tt.wantFire)
			}
		})
	}
}

func TestDetectIncrementalCommitsDoesNotDedupeAcrossPasses(t *testing.T) {
	decisions := []tracer.Decision{
		{
			DecisionID:    "d1",
			ActionType:    tracer.ActionExecuteCodingTask,
			ActionContent: "committing small change",
			Metadata:      map[string]any{"tool_calls": "git_commit"},
		},
	}
	if !detectIncrementalCommits(decisions) {
		t.Errorf("detectIncrementalCommits() = false, want true: single decision counted by both passes")
	}
}

func TestByIDCoversAllCodes(t *testing.T) {
	if len(Codes) != 30 {
		t.Fatalf("expected 30 behavioral codes, got %d", len(Codes))
	}
	for _, c := range Codes {
		if _, ok := ByID[c.ID]; !ok {
			t.Errorf("ByID missing entry for %s", c.ID)
		}
	}
}

func TestCodesForCategoryAndStage(t *testing.T) {
	elicitation := CodesForCategory("elicitation")
	if len(elicitation) != 3 {
		t.Errorf("CodesForCategory(elicitation) returned %d codes, want 3", len(elicitation))
	}
	stage1 := CodesForStage(1)
	if len(stage1) != 11 {
		t.Errorf("CodesForStage(1) returned %d codes, want 11", len(stage1))
	}
}
