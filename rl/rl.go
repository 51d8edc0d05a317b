// Package rl is the stable, narrow surface that reinforcement-learning
// callers import instead of reaching into internal/*: one episode
// runner, one observation/action/reward triple, and the supporting
// catalog, scorer, checkpoint, and config types they're built from.
// Everything exported here is a direct alias onto an internal/*
// package — this file adds no behavior of its own.
package rl

import (
	"sprintbench.app/core/internal/action"
	"sprintbench.app/core/internal/behavior"
	"sprintbench.app/core/internal/checkpoint"
	"sprintbench.app/core/internal/episode"
	"sprintbench.app/core/internal/observation"
	"sprintbench.app/core/internal/phase"
	"sprintbench.app/core/internal/reward"
	"sprintbench.app/core/internal/runtime"
	"sprintbench.app/core/internal/scenario"
	"sprintbench.app/core/internal/sprintconfig"
)

// Episode execution (C11).
type (
	EpisodeRunner = episode.Runner
	EpisodeResult = episode.Result
)

var NewEpisodeRunner = episode.NewRunner

// Scenario catalog and curriculum (C6).
type (
	ScenarioCatalog = scenario.Catalog
	ScenarioConfig  = scenario.Config
	ScenarioStory   = scenario.Story
	EpisodeType     = scenario.EpisodeType
)

var (
	NewScenarioCatalog = scenario.NewCatalog
	EpisodeTypes       = scenario.EpisodeTypes
	EpisodeTypesByName = scenario.ByName
)

// Observation extraction (C5).
type (
	ObservationExtractor = observation.Extractor
	Observation          = observation.Observation
	AgentObservation     = observation.AgentObservation
	SprintState          = observation.SprintState
)

var NewObservationExtractor = observation.NewExtractor

// Reward calculation (C4).
type (
	RewardCalculator = reward.Calculator
	RewardSignal     = reward.Signal
	RewardWeights    = reward.Weights
	SprintResult     = reward.SprintResult
	PhaseReward      = reward.PhaseInput
)

var NewRewardCalculator = reward.NewCalculator

// Behavioral taxonomy and scoring (C3).
type (
	BehavioralScorer = behavior.Scorer
	BehavioralCode   = behavior.Code
	Detection        = behavior.Detection
)

var (
	NewBehavioralScorer = behavior.NewScorer
	BehavioralCodes     = behavior.Codes
	BehavioralCodesByID = behavior.ByID
)

// Action space and executor (C7).
type (
	ActionExecutor        = action.Executor
	Action                = action.Action
	InjectDisturbance     = action.InjectDisturbance
	SwapAgentRole         = action.SwapAgentRole
	ModifyBacklog         = action.ModifyBacklog
	ModifyTeamComposition = action.ModifyTeamComposition
	AdjustSprintParams    = action.AdjustSprintParams
	ActionResult          = action.Result
)

var (
	NewActionExecutor = action.NewExecutor
	ActionSpace       = action.Space
	ErrUnknownAction  = action.ErrUnknownAction
)

// Checkpointing (C10).
type (
	CheckpointManager = checkpoint.Store
	Checkpoint        = checkpoint.Checkpoint
)

var (
	NewFileCheckpointStore  = checkpoint.NewFileStore
	NewRedisCheckpointStore = checkpoint.NewRedisStore
	HashCheckpointConfig    = checkpoint.HashConfig
)

// Experiment configuration (C8).
type (
	ExperimentConfigBuilder = sprintconfig.Builder
	ExperimentConfig        = sprintconfig.ExperimentConfig
)

var (
	NewExperimentConfigBuilder = sprintconfig.NewBuilder
	DefaultExperimentConfig    = sprintconfig.DefaultConfig
)

// Phase sequencing (C9).
type (
	PhaseRunner  = phase.Runner
	PhaseResult  = phase.Result
	Collaborator = phase.Collaborator
)

var (
	NewPhaseRunner  = phase.NewRunner
	ErrUnknownPhase = phase.ErrUnknownPhase
)

// Runtime registration (C2). RegisterRuntime lets a caller plug a custom
// AgentRuntime implementation into a registry under a chosen type name,
// alongside the built-in "local_vllm" and "anthropic" backends.
type (
	AgentRuntime    = runtime.AgentRuntime
	RuntimeRegistry = runtime.Registry
	RuntimeResult   = runtime.Result
)

var (
	NewRuntimeRegistry      = runtime.NewRegistry
	RegisterRuntimeDefaults = runtime.RegisterDefaults
)

// RegisterRuntime registers a custom AgentRuntime factory under name.
func RegisterRuntime(reg *RuntimeRegistry, name string, factory runtime.Factory) {
	reg.Register(name, factory)
}
