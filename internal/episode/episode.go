// Package episode runs one full episode end to end: builds a scenario,
// sets up the mock sprint manager, sequences phases across sprints,
// scores behaviors, and computes rewards. Decision traces are kept in
// memory for scoring; RunEpisode does not write trace files.
package episode

import (
	"context"
	"fmt"
	"log/slog"

	"sprintbench.app/core/internal/action"
	"sprintbench.app/core/internal/behavior"
	"sprintbench.app/core/internal/checkpoint"
	"sprintbench.app/core/internal/fixture"
	"sprintbench.app/core/internal/phase"
	"sprintbench.app/core/internal/reward"
	"sprintbench.app/core/internal/scenario"
	"sprintbench.app/core/internal/sprintconfig"
	"sprintbench.app/core/internal/tracer"
)

// Result summarizes one completed episode.
type Result struct {
	EpisodeID    string
	EpisodeType  string
	Sprints      int
	PhaseResults []phase.Result
	Detected     []string
	Reward       reward.Signal
}

// Runner runs one episode using the in-memory fixture by default.
type Runner struct {
	catalog    *scenario.Catalog
	scorer     *behavior.Scorer
	calculator *reward.Calculator
	ckptStore  checkpoint.Store
}

// NewRunner constructs a Runner. ckptStore may be nil to disable
// checkpointing.
func NewRunner(ckptStore checkpoint.Store) *Runner {
	return &Runner{
		catalog:    scenario.NewCatalog(),
		scorer:     behavior.NewScorer(),
		calculator: reward.NewCalculator(reward.Weights{}),
		ckptStore:  ckptStore,
	}
}

// RunEpisode generates a scenario for episodeType/difficulty/targetSlot/seed,
// runs every configured sprint's phase sequence against the in-memory
// fixture, scores the trace against the episode type's expected behaviors,
// computes the final reward, and optionally checkpoints after every phase.
// sprintActions, if non-nil, lets a caller (an RL policy) inject actions at
// the start of specific sprints, keyed by sprint number.
func (r *Runner) RunEpisode(ctx context.Context, episodeID, episodeType string, difficulty float64, targetSlot string, seed int64, numSprints int, checkpointEveryPhase bool, sprintActions map[int][]action.Action) (Result, error) {
	sc, err := r.catalog.Generate(episodeType, difficulty, targetSlot, seed)
	if err != nil {
		return Result{}, fmt.Errorf("episode: generate scenario: %w", err)
	}
	if numSprints < 1 {
		numSprints = 1
	}

	cfg := sprintconfig.NewBuilder().
		Experiment(episodeID, sc.DurationMinutes, numSprints).
		Tracing(true).
		Build()

	sm := fixture.New(episodeID, cfg, sc)
	tr := tracer.New(episodeID)
	runner := phase.NewRunner(sm, sm, tr)
	executor := action.NewExecutor(sm)

	var allResults []phase.Result
	configHash, err := checkpoint.HashConfig(cfg)
	if err != nil {
		return Result{}, fmt.Errorf("episode: hash config: %w", err)
	}

	for sprintNum := 1; sprintNum <= numSprints; sprintNum++ {
		sm.SetPhase(sprintNum, sc.Phases[0])

		for _, act := range sprintActions[sprintNum] {
			if res, err := executor.Execute(act); err != nil {
				return Result{}, fmt.Errorf("episode: apply action: %w", err)
			} else if !res.Success {
				slog.WarnContext(ctx, "scripted action did not apply", "sprint", sprintNum, "reason", res.Reason)
			}
		}

		results, err := runner.RunSequence(ctx, sprintNum, sc.Phases)
		if err != nil {
			return Result{}, fmt.Errorf("episode: run sprint %d: %w", sprintNum, err)
		}
		allResults = append(allResults, results...)

		if checkpointEveryPhase && r.ckptStore != nil {
			for _, res := range results {
				cp := buildCheckpoint(episodeID, configHash, res, sm)
				if err := r.ckptStore.Save(ctx, cp); err != nil {
					slog.WarnContext(ctx, "checkpoint save failed", "error", err)
				}
			}
		}
	}

	expected := sc.ExpectedBehaviors
	behavioralScore, detected := r.scorer.Score(tr.Decisions(), expected)

	phaseInputs := make([]reward.PhaseCompletionInput, 0, len(allResults))
	for _, res := range allResults {
		phaseInputs = append(phaseInputs, reward.PhaseCompletionInput{Error: res.Error})
	}

	lastSprint := lastSprintResult(sm)
	expectedVelocity := expectedVelocityFor(sc)
	signal := r.calculator.Compute(lastSprint, phaseInputs, expectedVelocity, behavioralScore)

	return Result{
		EpisodeID:    episodeID,
		EpisodeType:  episodeType,
		Sprints:      numSprints,
		PhaseResults: allResults,
		Detected:     detected,
		Reward:       signal,
	}, nil
}

// lastSprintResult returns the most recently recorded sprint result from
// the fixture, or a zero-velocity result if no sprint has completed one
// yet (e.g. an episode whose phases never reach "development").
func lastSprintResult(sm *fixture.SprintManager) reward.SprintResult {
	results := sm.SprintResults()
	if len(results) == 0 {
		return reward.SprintResult{FeaturesPlanned: 1, TestCoverage: 0}
	}
	last := results[len(results)-1]
	return reward.SprintResult{
		Velocity:          asFloat(last["velocity"]),
		FeaturesCompleted: asInt(last["features_completed"]),
		FeaturesPlanned:   asInt(last["features_planned"]),
		TestCoverage:      asFloat(last["test_coverage"]),
		PairingSessions:   asInt(last["pairing_sessions"]),
	}
}

// expectedVelocityFor uses the scenario's total planned story points as the
// expected-velocity baseline a sprint's actual velocity is measured against.
func expectedVelocityFor(sc scenario.Config) float64 {
	total := 0
	for _, s := range sc.BacklogStories {
		total += s.StoryPoints
	}
	if total == 0 {
		return 1
	}
	return float64(total)
}

func buildCheckpoint(episodeID, configHash string, res phase.Result, sm *fixture.SprintManager) checkpoint.Checkpoint {
	agents := sm.Agents()
	states := make([]checkpoint.AgentState, 0, len(agents))
	for _, a := range agents {
		states = append(states, checkpoint.AgentState{
			AgentID:   a.AgentID,
			RoleID:    a.RoleID,
			Seniority: a.Seniority,
			IsSwapped: a.IsSwapped,
		})
	}

	backlogRemaining := sm.StoriesRemaining()
	var selected []string

	return checkpoint.Checkpoint{
		EpisodeID:      episodeID,
		Sprint:         res.Sprint,
		Phase:          res.Phase,
		KanbanSnapshot: sm.KanbanSnapshot(),
		AgentStates:    states,
		SprintResults:  sm.SprintResults(),
		BacklogState:   checkpoint.BacklogState{Remaining: backlogRemaining, Selected: selected},
		ConfigHash:     configHash,
	}
}

func asFloat(v any) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	default:
		return 0
	}
}
