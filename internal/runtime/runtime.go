// Package runtime defines the agent runtime plug-in contract and a
// process-wide registry mapping runtime-type names to factories, mirroring
// the original's get_runtime_config resolution order: env override, then
// per-agent config, then global defaults with a per-agent model layered
// on top.
package runtime

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// Result is the outcome of one agent task execution.
type Result struct {
	Success      bool
	Content      string
	Turns        int
	ToolCalls    int
	FilesChanged []string
	Error        string
	Metadata     map[string]any
}

// AgentRuntime drives a single bounded-turn agentic task.
type AgentRuntime interface {
	ExecuteTask(ctx context.Context, systemPrompt, userMessage string, maxTurns int) (Result, error)
}

// Factory constructs an AgentRuntime from per-agent config.
type Factory func(agentConfig map[string]any) (AgentRuntime, error)

// Registry maps runtime-type names to factories. Construct one with
// NewRegistry (the zero value has no map, so Register on it panics);
// RegisterDefaults adds the two default backends.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Factory
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Factory)}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = factory
}

// Create builds a runtime of the named type. It returns an error (not a
// panic) for an unregistered name, listing the currently registered
// types, mirroring the original's ValueError.
func (r *Registry) Create(runtimeType string, agentConfig map[string]any) (AgentRuntime, error) {
	r.mu.RLock()
	factory, ok := r.types[runtimeType]
	names := r.registeredTypesLocked()
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("runtime: unknown runtime type %q, available: %v", runtimeType, names)
	}
	return factory(agentConfig)
}

// RegisteredTypes returns the currently registered runtime-type names.
func (r *Registry) RegisteredTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.registeredTypesLocked()
}

func (r *Registry) registeredTypesLocked() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

// GlobalConfig holds process-wide runtime configuration, keyed by runtime
// type name, plus the default runtime type used when nothing overrides it.
type GlobalConfig struct {
	DefaultRuntime string
	PerType        map[string]map[string]any
}

// ResolveRuntimeConfig implements the original's get_runtime_config
// resolution order:
//  1. AGENT_RUNTIME_MODE environment variable, if set, forces the runtime
//     type for every agent regardless of agentConfig.
//  2. Otherwise agentConfig["runtime"] selects the type, defaulting to
//     global.DefaultRuntime.
//  3. The resolved type's global.PerType settings are copied as the base
//     config, then agentConfig["model"], if present, overrides the
//     copied "model" key.
func ResolveRuntimeConfig(global GlobalConfig, agentConfig map[string]any) (string, map[string]any) {
	runtimeType := global.DefaultRuntime
	if v, ok := agentConfig["runtime"].(string); ok && v != "" {
		runtimeType = v
	}
	if forced := os.Getenv("AGENT_RUNTIME_MODE"); forced != "" {
		runtimeType = forced
	}

	merged := make(map[string]any)
	for k, v := range global.PerType[runtimeType] {
		merged[k] = v
	}
	if model, ok := agentConfig["model"]; ok {
		merged["model"] = model
	}

	return runtimeType, merged
}
