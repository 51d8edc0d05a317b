// Package phase runs one named ceremony phase against sprint state,
// optionally attaching a decision tracer, and sequences multiple phases
// with first-failure-halts semantics.
package phase

import (
	"context"
	"fmt"
	"log/slog"

	"sprintbench.app/core/internal/sprintconfig"
	"sprintbench.app/core/internal/tracer"
)

// ErrUnknownPhase is returned when a phase name is not one of the five
// fixed ceremony names. This is a caller/config bug, not a runtime
// condition, so it is returned as an error rather than silently ignored.
var ErrUnknownPhase = fmt.Errorf("phase: unknown phase name")

var validPhases = map[string]bool{
	"planning":      true,
	"development":   true,
	"qa_review":     true,
	"retro":         true,
	"meta_learning": true,
}

// Result is the outcome of running one phase. Dispatch failures are
// captured here rather than propagated as errors from RunPhase.
type Result struct {
	Phase    string
	Sprint   int
	Output   map[string]any
	Error    string
	Duration float64 // seconds
}

// Collaborator runs one phase's ceremony logic against sprint state and
// returns an arbitrary result payload (coerced to map[string]any if it
// isn't already one) or an error.
type Collaborator interface {
	RunPhase(ctx context.Context, sprint int, phase string) (any, error)
}

// SprintManager exposes the subset of sprint state the runner needs.
type SprintManager interface {
	Config() sprintconfig.ExperimentConfig
}

// Runner dispatches phases to a Collaborator, attaching a tracer when
// config.TracingEnabled is set.
type Runner struct {
	sm           SprintManager
	collaborator Collaborator
	tracer       *tracer.DecisionTracer
}

// NewRunner constructs a Runner. tr may be nil; it is only used when the
// bound SprintManager's config enables tracing.
func NewRunner(sm SprintManager, collaborator Collaborator, tr *tracer.DecisionTracer) *Runner {
	return &Runner{sm: sm, collaborator: collaborator, tracer: tr}
}

// RunPhase validates phase, optionally sets the tracer's active phase, and
// dispatches to the collaborator. Collaborator errors are captured in
// Result.Error, never propagated.
func (r *Runner) RunPhase(ctx context.Context, sprint int, phase string) (Result, error) {
	if !validPhases[phase] {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}

	if r.sm.Config().TracingEnabled && r.tracer != nil {
		r.tracer.SetPhase(sprint, phase)
	}

	result := Result{Phase: phase, Sprint: sprint}

	out, err := r.collaborator.RunPhase(ctx, sprint, phase)
	if err != nil {
		result.Error = err.Error()
		slog.WarnContext(ctx, "phase dispatch failed", "phase", phase, "sprint", sprint, "error", err)
		return result, nil
	}

	if m, ok := out.(map[string]any); ok {
		result.Output = m
	} else {
		result.Output = map[string]any{}
	}

	return result, nil
}

// RunSequence runs phases in order, halting at the first phase whose
// Result.Error is non-empty (a prefix property: results[:k] are all
// successes, results[k] is the first failure, nothing after k ran).
func (r *Runner) RunSequence(ctx context.Context, sprint int, phases []string) ([]Result, error) {
	results := make([]Result, 0, len(phases))
	for _, p := range phases {
		res, err := r.RunPhase(ctx, sprint, p)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if res.Error != "" {
			break
		}
	}
	return results, nil
}
