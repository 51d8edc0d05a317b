// Package config assembles service-level configuration for the episode
// harness from environment variables. The harness components themselves
// (scenario catalog, phase runner, episode runner, ...) never touch the
// environment directly — they receive plain values or an ExperimentConfig
// built by sprintconfig.Builder.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds process-level configuration for cmd/episode and cmd/envserver.
type Config struct {
	Env  string
	Port string

	OTel       OTelConfig
	Runtimes   RuntimeConfig
	Store      StoreConfig
	GraphDB    GraphDBConfig
	Checkpoint CheckpointConfig
	Search     SearchConfig
	Portfolio  PortfolioConfig
	Auth       AuthConfig
}

// OTelConfig controls OTLP export of traces and logs.
type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

func (c OTelConfig) Enabled() bool { return c.Endpoint != "" }

// RuntimeConfig carries the default credentials for the two built-in
// runtime backends registered with the runtime registry (C2).
type RuntimeConfig struct {
	AnthropicAPIKey  string
	AnthropicModel   string
	VLLMEndpoint     string
	VLLMModel        string
	RuntimeModeForce string // AGENT_RUNTIME_MODE override: "local" | "anthropic"
}

// StoreConfig is the Postgres DSN used by the episode result archive, an
// offline store of completed EpisodeResult summaries for dataset export.
type StoreConfig struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

func (c StoreConfig) Enabled() bool { return c.DSN != "" }

// GraphDBConfig is the ArangoDB connection used as an optional sink for
// decision traces, alongside the mandatory per-agent JSON trace files.
type GraphDBConfig struct {
	Endpoints []string
	Database  string
	User      string
	Password  string
}

func (c GraphDBConfig) Enabled() bool { return len(c.Endpoints) > 0 }

// CheckpointConfig configures the checkpoint manager's storage backend.
type CheckpointConfig struct {
	Root      string
	RedisAddr string
}

func (c CheckpointConfig) RedisEnabled() bool { return c.RedisAddr != "" }

// SearchConfig is the Typesense collection used to index the synthetic
// story pool for retrieval by the scenario catalog.
type SearchConfig struct {
	APIKey string
	Nodes  []string
}

func (c SearchConfig) Enabled() bool { return c.APIKey != "" && len(c.Nodes) > 0 }

// PortfolioConfig points the story distributor at a GitLab project whose
// open issues seed the portfolio backlog instead of synthetic stories.
type PortfolioConfig struct {
	GitLabToken   string
	GitLabBaseURL string
	ProjectID     string
}

func (c PortfolioConfig) Enabled() bool { return c.GitLabToken != "" && c.ProjectID != "" }

// AuthConfig gates cmd/envserver's HTTP API behind WorkOS session auth.
type AuthConfig struct {
	WorkOSAPIKey   string
	WorkOSClientID string
}

func (c AuthConfig) Enabled() bool { return c.WorkOSAPIKey != "" }

// Load reads configuration from the environment, applying defaults that
// make the harness usable out of the box in mock mode.
func Load() Config {
	return Config{
		Env:  getEnv("SPRINTBENCH_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "sprintbench"),
			ServiceVersion: getEnv("SPRINTBENCH_VERSION", "dev"),
		},
		Runtimes: RuntimeConfig{
			AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel:   getEnv("SPRINTBENCH_ANTHROPIC_MODEL", ""),
			VLLMEndpoint:     getEnv("VLLM_ENDPOINT", ""),
			VLLMModel:        getEnv("SPRINTBENCH_VLLM_MODEL", ""),
			RuntimeModeForce: getEnv("AGENT_RUNTIME_MODE", ""),
		},
		Store: StoreConfig{
			DSN:      getEnv("SPRINTBENCH_STORE_DSN", ""),
			MaxConns: int32(getEnvInt("SPRINTBENCH_STORE_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("SPRINTBENCH_STORE_MIN_CONNS", 2)),
		},
		GraphDB: GraphDBConfig{
			Endpoints: getEnvList("ARANGO_ENDPOINTS"),
			Database:  getEnv("ARANGO_DATABASE", "sprintbench"),
			User:      getEnv("ARANGO_USER", ""),
			Password:  getEnv("ARANGO_PASSWORD", ""),
		},
		Checkpoint: CheckpointConfig{
			Root:      getEnv("SPRINTBENCH_CHECKPOINT_ROOT", "/tmp/sprintbench-checkpoints"),
			RedisAddr: getEnv("REDIS_ADDR", ""),
		},
		Search: SearchConfig{
			APIKey: getEnv("TYPESENSE_API_KEY", ""),
			Nodes:  getEnvList("TYPESENSE_NODES"),
		},
		Portfolio: PortfolioConfig{
			GitLabToken:   getEnv("GITLAB_TOKEN", ""),
			GitLabBaseURL: getEnv("GITLAB_BASE_URL", "https://gitlab.com"),
			ProjectID:     getEnv("GITLAB_PROJECT_ID", ""),
		},
		Auth: AuthConfig{
			WorkOSAPIKey:   getEnv("WORKOS_API_KEY", ""),
			WorkOSClientID: getEnv("WORKOS_CLIENT_ID", ""),
		},
	}
}

func (c Config) IsProduction() bool  { return c.Env == "production" }
func (c Config) IsDevelopment() bool { return c.Env == "development" }

// RequestTimeout bounds a single runtime call; runtimes own sub-timeouts
// for tool execution but the harness will not wait past this.
func (c Config) RequestTimeout() time.Duration {
	seconds := getEnvInt("SPRINTBENCH_REQUEST_TIMEOUT_SECONDS", 120)
	return time.Duration(seconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			if i > start {
				out = append(out, value[start:i])
			}
			start = i + 1
		}
	}
	return out
}
