package sprintconfig

// Builder accumulates configuration fluently and only resolves into an
// ExperimentConfig at Build(). No method touches disk.
//
// Note the method/field name split: Tracing(enabled) writes the
// ExperimentConfig field named TracingEnabled. Every setter writes
// straight into the accumulated ExperimentConfig, and Build() returns it
// as is.
type Builder struct {
	cfg ExperimentConfig
}

// NewBuilder starts from DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Experiment sets the experiment name, sprint duration, and simulated day
// count in one call, mirroring the builder's "experiment" dict namespace.
func (b *Builder) Experiment(name string, sprintDurationMinutes, numSimulatedDays int) *Builder {
	b.cfg.Name = name
	b.cfg.SprintDurationMinutes = sprintDurationMinutes
	b.cfg.NumSimulatedDays = numSimulatedDays
	return b
}

// Tracing sets whether decision tracing is enabled.
func (b *Builder) Tracing(enabled bool) *Builder {
	b.cfg.TracingEnabled = enabled
	return b
}

// Database sets the result-store connection URL.
func (b *Builder) Database(url string) *Builder {
	b.cfg.DatabaseURL = url
	return b
}

// Team sets the team config directory, turnover rate, and onboarding flag.
func (b *Builder) Team(configDir string, turnover float64, onboarding bool) *Builder {
	b.cfg.TeamConfigDir = configDir
	b.cfg.TeamTurnover = turnover
	b.cfg.TeamOnboarding = onboarding
	return b
}

// Models sets the shared vLLM endpoint and per-agent model overrides.
func (b *Builder) Models(vllmEndpoint string, agentModels map[string]string) *Builder {
	b.cfg.VLLMEndpoint = vllmEndpoint
	if agentModels != nil {
		b.cfg.AgentModels = agentModels
	}
	return b
}

// ToolsWorkspace sets the filesystem root agent tools are sandboxed to.
func (b *Builder) ToolsWorkspace(root string) *Builder {
	b.cfg.ToolsWorkspaceRoot = root
	return b
}

// Disturbances enables disturbance injection with per-kind frequencies and
// blast-radius control fractions.
func (b *Builder) Disturbances(enabled bool, frequencies map[string]int, blastRadius map[string]float64) *Builder {
	b.cfg.DisturbancesEnabled = enabled
	if frequencies != nil {
		b.cfg.DisturbanceFrequencies = frequencies
	}
	if blastRadius != nil {
		b.cfg.BlastRadiusControls = blastRadius
	}
	return b
}

// ProfileSwapping configures mid-episode role swapping.
func (b *Builder) ProfileSwapping(mode string, allowedScenarios []string, penalties map[string]float64) *Builder {
	b.cfg.ProfileSwappingMode = mode
	if allowedScenarios != nil {
		b.cfg.ProfileSwappingScenarios = allowedScenarios
	}
	if penalties != nil {
		b.cfg.ProfileSwappingPenalties = penalties
	}
	return b
}

// CodeGeneration sets the code generation workspace mode.
func (b *Builder) CodeGeneration(workspaceMode string) *Builder {
	b.cfg.CodeGenerationWorkspaceMode = workspaceMode
	return b
}

// Coordination sets arbitrary coordinator-specific parameters.
func (b *Builder) Coordination(params map[string]any) *Builder {
	if params != nil {
		b.cfg.Coordination = params
	}
	return b
}

// Messaging configures the inter-agent message bus.
func (b *Builder) Messaging(backend, redisURL string, historySize int, logMessages bool) *Builder {
	b.cfg.MessagingBackend = backend
	b.cfg.MessagingRedisURL = redisURL
	b.cfg.MessagingHistorySize = historySize
	b.cfg.MessagingLogMessages = logMessages
	return b
}

// Build resolves the accumulated configuration. It never touches disk.
func (b *Builder) Build() ExperimentConfig {
	return b.cfg
}
