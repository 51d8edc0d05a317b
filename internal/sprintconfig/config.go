// Package sprintconfig defines ExperimentConfig and the fluent
// ExperimentConfigBuilder used to assemble one without any disk I/O.
package sprintconfig

// ExperimentConfig is the fully-resolved configuration for one episode
// run. Field shapes are derived from the call sites of the original
// phase runner (TracingEnabled, read by phase.Runner here), action
// executor (SprintDurationMinutes, mutable), and observation extractor
// (TeamConfigDir, which observation.Extractor here does not read), since
// no original config.py source survived the distillation.
type ExperimentConfig struct {
	Name                  string
	SprintDurationMinutes int
	TracingEnabled        bool
	NumSimulatedDays      int

	DatabaseURL string

	TeamConfigDir   string
	TeamTurnover    float64
	TeamOnboarding  bool

	VLLMEndpoint string
	AgentModels  map[string]string // agent_id -> model name

	ToolsWorkspaceRoot string

	DisturbancesEnabled      bool
	DisturbanceFrequencies   map[string]int
	BlastRadiusControls      map[string]float64

	ProfileSwappingMode      string // "off", "manual", "auto"
	ProfileSwappingScenarios []string
	ProfileSwappingPenalties map[string]float64

	CodeGenerationWorkspaceMode string // "ephemeral", "persistent"

	Coordination map[string]any

	MessagingBackend     string // "inmemory", "redis"
	MessagingRedisURL    string
	MessagingHistorySize int
	MessagingLogMessages bool
}

// DefaultConfig returns an ExperimentConfig with conservative, mock-mode
// friendly defaults: tracing on, no tooling workspace, in-memory
// messaging, disturbances off.
func DefaultConfig() ExperimentConfig {
	return ExperimentConfig{
		Name:                  "default",
		SprintDurationMinutes: 60,
		TracingEnabled:        true,
		NumSimulatedDays:      10,
		TeamConfigDir:         "",
		TeamTurnover:          0,
		AgentModels:           map[string]string{},
		DisturbanceFrequencies: map[string]int{},
		BlastRadiusControls:    map[string]float64{},
		ProfileSwappingMode:    "off",
		ProfileSwappingPenalties: map[string]float64{},
		CodeGenerationWorkspaceMode: "ephemeral",
		Coordination:         map[string]any{},
		MessagingBackend:     "inmemory",
		MessagingHistorySize: 50,
	}
}
