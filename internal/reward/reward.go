// Package reward computes multi-channel rewards for completed sprints and
// individual phases, using configurable channel weights.
package reward

import "math"

// Weights are the channel weights used by Compute and ComputePhaseReward.
// The zero value is meaningless; use DefaultWeights or override individual
// fields before constructing a Calculator.
type Weights struct {
	Outcome          float64
	Behavioral       float64
	Efficiency       float64
	PhaseCompletion  float64
}

// DefaultWeights matches the original calculator's fixed channel split.
var DefaultWeights = Weights{
	Outcome:         0.40,
	Behavioral:      0.30,
	Efficiency:      0.15,
	PhaseCompletion: 0.15,
}

// Signal is the full multi-channel reward breakdown for one sprint or phase.
type Signal struct {
	Outcome         float64            `json:"outcome"`
	Behavioral      float64            `json:"behavioral"`
	Efficiency      float64            `json:"efficiency"`
	PhaseCompletion float64            `json:"phase_completion"`
	Total           float64            `json:"total"`
	Components      map[string]float64 `json:"components,omitempty"`
}

// SprintResult summarizes one sprint's outcome for reward computation.
type SprintResult struct {
	Velocity           float64
	FeaturesCompleted  int
	FeaturesPlanned    int
	TestCoverage       float64
	PairingSessions    int
}

// PhaseCompletionInput is the subset of a phase result the completion
// channel needs: whether the phase finished without error.
type PhaseCompletionInput struct {
	Error string
}

// Calculator computes reward signals from configurable channel weights.
type Calculator struct {
	weights Weights
}

// NewCalculator constructs a Calculator with the given weights. Passing
// the zero Weights uses DefaultWeights instead.
func NewCalculator(weights Weights) *Calculator {
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	return &Calculator{weights: weights}
}

// Weights returns the calculator's configured channel weights.
func (c *Calculator) Weights() Weights { return c.weights }

// Compute produces the full sprint-level reward signal.
//
//	velocity_ratio   = min(velocity / max(expected_velocity, 1), 1.0)
//	completion_rate  = min(features_completed / max(features_planned, 1), 1.0)
//	coverage_score   = clamp(test_coverage, 0, 1)
//	outcome          = 0.4*velocity_ratio + 0.3*coverage_score + 0.3*completion_rate
//	sessions_ratio   = pairing_sessions / max(features_planned*3, 1)
//	efficiency       = clamp(1 - 0.5*sessions_ratio, 0, 1)
//	phase_completion = fraction of phaseResults with no error (1.0 if none given)
func (c *Calculator) Compute(r SprintResult, phaseResults []PhaseCompletionInput, expectedVelocity float64, behavioralScore float64) Signal {
	if expectedVelocity < 1 {
		expectedVelocity = 1
	}
	featuresPlanned := r.FeaturesPlanned
	if featuresPlanned < 1 {
		featuresPlanned = 1
	}

	velocityRatio := math.Min(r.Velocity/expectedVelocity, 1.0)
	completionRate := math.Min(float64(r.FeaturesCompleted)/float64(featuresPlanned), 1.0)
	coverageScore := clamp01(r.TestCoverage)

	outcome := 0.4*velocityRatio + 0.3*coverageScore + 0.3*completionRate

	maxSessions := maxInt(featuresPlanned*3, 1)
	sessionsRatio := float64(r.PairingSessions) / float64(maxSessions)
	efficiency := clamp01(1.0 - 0.5*sessionsRatio)

	phaseCompletion := computePhaseCompletion(phaseResults)

	w := c.weights
	total := w.Outcome*outcome + w.Behavioral*behavioralScore + w.Efficiency*efficiency + w.PhaseCompletion*phaseCompletion

	return Signal{
		Outcome:         round4(outcome),
		Behavioral:      round4(behavioralScore),
		Efficiency:      round4(efficiency),
		PhaseCompletion: round4(phaseCompletion),
		Total:           round4(total),
		Components: map[string]float64{
			"velocity_ratio":  round4(velocityRatio),
			"coverage_score":  round4(coverageScore),
			"completion_rate": round4(completionRate),
			"sessions_ratio":  round4(sessionsRatio),
		},
	}
}

// PhaseInput is the subset of a single phase result needed for
// ComputePhaseReward's lighter-weight, single-phase variant.
type PhaseInput struct {
	Error           string
	ArtifactCount   int
	DurationSeconds float64
}

const phaseDurationCapSeconds = 600.0

// ComputePhaseReward produces a reward signal for a single phase.
// completed=1 iff the phase had no error; outcome is 1.0 whenever the
// phase produced at least one artifact and completed without error (0.0
// otherwise); efficiency decays linearly with duration against a 10
// minute cap.
func (c *Calculator) ComputePhaseReward(p PhaseInput, behavioralScore float64) Signal {
	completed := p.Error == ""

	outcome := 0.0
	if completed && p.ArtifactCount > 0 {
		outcome = 1.0
	}

	efficiency := 0.0
	if completed {
		efficiency = clamp01(1.0 - p.DurationSeconds/phaseDurationCapSeconds)
	}

	phaseCompletion := 0.0
	if completed {
		phaseCompletion = 1.0
	}

	w := c.weights
	total := w.Outcome*outcome + w.Behavioral*behavioralScore + w.Efficiency*efficiency + w.PhaseCompletion*phaseCompletion

	return Signal{
		Outcome:         round4(outcome),
		Behavioral:      round4(behavioralScore),
		Efficiency:      round4(efficiency),
		PhaseCompletion: round4(phaseCompletion),
		Total:           round4(total),
		Components: map[string]float64{
			"artifact_count":   float64(p.ArtifactCount),
			"duration_seconds": round4(p.DurationSeconds),
		},
	}
}

func computePhaseCompletion(results []PhaseCompletionInput) float64 {
	if len(results) == 0 {
		return 1.0
	}
	completed := 0
	for _, r := range results {
		if r.Error == "" {
			completed++
		}
	}
	return float64(completed) / float64(len(results))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
