package reward

import "testing"

func TestComputeFullCompletionNoShortfall(t *testing.T) {
	c := NewCalculator(Weights{})
	signal := c.Compute(
		SprintResult{Velocity: 10, FeaturesCompleted: 5, FeaturesPlanned: 5, TestCoverage: 1.0, PairingSessions: 0},
		nil,
		10,
		1.0,
	)

	if signal.Outcome != 1.0 {
		t.Errorf("Outcome = %v, want 1.0", signal.Outcome)
	}
	if signal.PhaseCompletion != 1.0 {
		t.Errorf("PhaseCompletion = %v, want 1.0 with no phase results", signal.PhaseCompletion)
	}
	if signal.Total != 1.0 {
		t.Errorf("Total = %v, want 1.0", signal.Total)
	}
}

func TestComputeOutcomeFormula(t *testing.T) {
	c := NewCalculator(Weights{})
	signal := c.Compute(
		SprintResult{Velocity: 5, FeaturesCompleted: 2, FeaturesPlanned: 4, TestCoverage: 0.5, PairingSessions: 0},
		nil,
		10, // expectedVelocity
		0,
	)
	// velocity_ratio = 5/10 = 0.5, completion_rate = 2/4 = 0.5, coverage_score = 0.5
	// outcome = 0.4*0.5 + 0.3*0.5 + 0.3*0.5 = 0.5
	if signal.Outcome != 0.5 {
		t.Errorf("Outcome = %v, want 0.5", signal.Outcome)
	}
}

func TestComputeZeroFeaturesPlannedYieldsZeroCompletionRate(t *testing.T) {
	c := NewCalculator(Weights{})
	signal := c.Compute(SprintResult{Velocity: 0, FeaturesCompleted: 0, FeaturesPlanned: 0, TestCoverage: 0}, nil, 5, 0)
	if signal.Components["completion_rate"] != 0 {
		t.Errorf("completion_rate = %v, want 0 when nothing was completed or planned", signal.Components["completion_rate"])
	}
}

func TestComputeEfficiencyDecaysWithPairingSessions(t *testing.T) {
	c := NewCalculator(Weights{})
	// featuresPlanned=2 => maxSessions = max(2*3,1) = 6; 6 sessions => sessionsRatio=1.0 => efficiency=0.5
	signal := c.Compute(SprintResult{FeaturesPlanned: 2, FeaturesCompleted: 2, PairingSessions: 6}, nil, 5, 0)
	if signal.Efficiency != 0.5 {
		t.Errorf("Efficiency = %v, want 0.5", signal.Efficiency)
	}
}

func TestComputePhaseCompletionFractionOfSuccesses(t *testing.T) {
	c := NewCalculator(Weights{})
	signal := c.Compute(SprintResult{FeaturesPlanned: 1}, []PhaseCompletionInput{
		{Error: ""}, {Error: "boom"}, {Error: ""}, {Error: ""},
	}, 5, 0)
	if signal.PhaseCompletion != 0.75 {
		t.Errorf("PhaseCompletion = %v, want 0.75", signal.PhaseCompletion)
	}
}

func TestComputePhaseRewardDurationCap(t *testing.T) {
	c := NewCalculator(Weights{})
	signal := c.ComputePhaseReward(PhaseInput{ArtifactCount: 1, DurationSeconds: 600}, 0)
	if signal.Efficiency != 0 {
		t.Errorf("Efficiency = %v, want 0 at the duration cap", signal.Efficiency)
	}
	if signal.PhaseCompletion != 1.0 {
		t.Errorf("PhaseCompletion = %v, want 1.0 on success", signal.PhaseCompletion)
	}
	if signal.Outcome != 1.0 {
		t.Errorf("Outcome = %v, want 1.0 when completed with an artifact", signal.Outcome)
	}
}

func TestComputePhaseRewardNoArtifactMeansZeroOutcome(t *testing.T) {
	c := NewCalculator(Weights{})
	signal := c.ComputePhaseReward(PhaseInput{ArtifactCount: 0}, 0)
	if signal.Outcome != 0 {
		t.Errorf("Outcome = %v, want 0 with no artifacts produced", signal.Outcome)
	}
}

func TestComputePhaseRewardErrorZeroesOutcomeAndCompletion(t *testing.T) {
	c := NewCalculator(Weights{})
	signal := c.ComputePhaseReward(PhaseInput{ArtifactCount: 1, Error: "failed"}, 0)
	if signal.Outcome != 0 || signal.PhaseCompletion != 0 || signal.Efficiency != 0 {
		t.Errorf("signal = %+v, want all-zero channels on a phase error", signal)
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights
	sum := w.Outcome + w.Behavioral + w.Efficiency + w.PhaseCompletion
	if round4(sum) != 1.0 {
		t.Errorf("weights sum to %v, want 1.0", sum)
	}
}

func TestNewCalculatorZeroValueUsesDefaultWeights(t *testing.T) {
	c := NewCalculator(Weights{})
	if c.Weights() != DefaultWeights {
		t.Errorf("Weights() = %+v, want DefaultWeights", c.Weights())
	}
}
