package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment, enabling zero-touch logging where run
// context (episode_id, sprint_num, etc.) is automatically included in all log statements.
type LogFields struct {
	EpisodeID  *string // episode being run
	SprintNum  *int    // current sprint index within the episode
	Phase      *string // current phase name
	AgentID    *string // agent this log line concerns
	RuntimeType *string // runtime backend name (e.g. "anthropic", "local_vllm")
	Component  string  // component name (OTel semantic convention style, e.g. "sprintbench.episode")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// mergeFields merges two LogFields, preferring non-nil/non-empty values from 'new'.
func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.EpisodeID != nil {
		result.EpisodeID = new.EpisodeID
	}
	if new.SprintNum != nil {
		result.SprintNum = new.SprintNum
	}
	if new.Phase != nil {
		result.Phase = new.Phase
	}
	if new.AgentID != nil {
		result.AgentID = new.AgentID
	}
	if new.RuntimeType != nil {
		result.RuntimeType = new.RuntimeType
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{AgentID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
// Useful for logging potentially long strings like prompts or error messages.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
