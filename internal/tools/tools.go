// Package tools implements the sandboxed agent tool-calling surface:
// filesystem, bash, and git tools behind a common Tool interface, a
// name-keyed Registry, and named tool sets, mirroring the original's
// TOOL_REGISTRY / TOOL_SETS / create_tools.
package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Result is the outcome of one tool execution. Execute never returns a Go
// error for a failed tool run; failures are carried in Result.Error so
// that a caller can always feed the result back to the LLM as a tool
// message.
type Result struct {
	Success      bool
	Output       string
	Error        string
	FilesChanged []string
	Metadata     map[string]any
}

// Tool is a single named, schema-described capability an agent can invoke.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any // JSON Schema
	Execute(ctx context.Context, args map[string]any) Result
}

// Registry holds the tools available to one workspace.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds t, keyed by its Name().
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get returns the tool named name, or false if unregistered.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Execute dispatches to the named tool. An unknown tool name or a panic
// inside Execute becomes a failed Result rather than propagating, matching
// AgentRuntime._execute_tool's tolerant dispatch.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = Result{Success: false, Error: fmt.Sprintf("tool %q panicked: %v", name, rec)}
		}
	}()

	t, ok := r.tools[name]
	if !ok {
		return Result{Success: false, Error: fmt.Sprintf("unknown tool: %q", name)}
	}
	return t.Execute(ctx, args)
}

// ToolSets maps named tool-set shortcuts to the tool names they expand to,
// mirroring TOOL_SETS.
var ToolSets = map[string][]string{
	"filesystem": {"read_file", "write_file", "edit_file", "list_files", "search_code"},
	"git":        {"git_status", "git_diff", "git_add", "git_commit"},
	"bash":       {"bash"},
	"basic":      {"read_file", "write_file", "list_files"},
	"developer":  {"read_file", "write_file", "edit_file", "list_files", "search_code", "bash", "git_status", "git_diff", "git_add", "git_commit"},
	"full":       {"read_file", "write_file", "edit_file", "list_files", "search_code", "bash", "git_status", "git_diff", "git_add", "git_commit"},
}

// Create builds a Registry from a list of tool names and/or tool-set
// shortcuts, expanding sets and deduplicating. It returns an error for an
// unknown name that is neither a tool nor a set, matching create_tools.
func Create(names []string, workspaceRoot string) (*Registry, error) {
	reg := NewRegistry()
	seen := make(map[string]bool)

	expand := func(name string) ([]string, bool) {
		if set, ok := ToolSets[name]; ok {
			return set, true
		}
		return nil, false
	}

	var resolved []string
	for _, name := range names {
		if set, ok := expand(name); ok {
			resolved = append(resolved, set...)
			continue
		}
		resolved = append(resolved, name)
	}

	for _, name := range resolved {
		if seen[name] {
			continue
		}
		seen[name] = true

		t, err := build(name, workspaceRoot)
		if err != nil {
			return nil, err
		}
		reg.Register(t)
	}

	return reg, nil
}

func build(name, workspaceRoot string) (Tool, error) {
	switch name {
	case "read_file":
		return &ReadFileTool{workspace: workspaceRoot}, nil
	case "write_file":
		return &WriteFileTool{workspace: workspaceRoot}, nil
	case "edit_file":
		return &EditFileTool{workspace: workspaceRoot}, nil
	case "list_files":
		return &ListFilesTool{workspace: workspaceRoot}, nil
	case "search_code":
		return &SearchCodeTool{workspace: workspaceRoot}, nil
	case "bash":
		return &BashTool{workspace: workspaceRoot}, nil
	case "git_status":
		return &GitStatusTool{workspace: workspaceRoot}, nil
	case "git_diff":
		return &GitDiffTool{workspace: workspaceRoot}, nil
	case "git_add":
		return &GitAddTool{workspace: workspaceRoot}, nil
	case "git_commit":
		return &GitCommitTool{workspace: workspaceRoot}, nil
	default:
		return nil, fmt.Errorf("tools: unknown tool %q", name)
	}
}

// resolvePath joins path onto workspace and rejects any result that
// escapes the workspace root, mirroring the original's _resolve_path
// workspace-boundary check.
func resolvePath(workspace, path string) (string, error) {
	full := filepath.Join(workspace, path)
	rel, err := filepath.Rel(workspace, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes workspace: %q", path)
	}
	return full, nil
}
