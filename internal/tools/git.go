package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

func runGit(ctx context.Context, workspace string, args ...string) Result {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = workspace

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Result{Success: false, Output: stdout.String(), Error: fmt.Sprintf("%v: %s", err, stderr.String())}
	}
	return Result{Success: true, Output: stdout.String()}
}

// GitStatusTool reports the working tree status.
type GitStatusTool struct{ workspace string }

func (t *GitStatusTool) Name() string                           { return "git_status" }
func (t *GitStatusTool) Description() string                    { return "Show git working tree status" }
func (t *GitStatusTool) Parameters() map[string]any              { return map[string]any{"type": "object"} }
func (t *GitStatusTool) Execute(ctx context.Context, args map[string]any) Result {
	return runGit(ctx, t.workspace, "status", "--short")
}

// GitDiffTool shows unstaged changes.
type GitDiffTool struct{ workspace string }

func (t *GitDiffTool) Name() string              { return "git_diff" }
func (t *GitDiffTool) Description() string       { return "Show unstaged git changes" }
func (t *GitDiffTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (t *GitDiffTool) Execute(ctx context.Context, args map[string]any) Result {
	return runGit(ctx, t.workspace, "diff")
}

// GitAddTool stages files.
type GitAddTool struct{ workspace string }

func (t *GitAddTool) Name() string        { return "git_add" }
func (t *GitAddTool) Description() string { return "Stage files for commit" }
func (t *GitAddTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"paths": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}
}

func (t *GitAddTool) Execute(ctx context.Context, args map[string]any) Result {
	paths := []string{"."}
	if raw, ok := args["paths"].([]any); ok && len(raw) > 0 {
		paths = paths[:0]
		for _, p := range raw {
			if s, ok := p.(string); ok {
				paths = append(paths, s)
			}
		}
	}
	return runGit(ctx, t.workspace, append([]string{"add"}, paths...)...)
}

// GitCommitTool creates a commit.
type GitCommitTool struct{ workspace string }

func (t *GitCommitTool) Name() string        { return "git_commit" }
func (t *GitCommitTool) Description() string { return "Create a git commit with the given message" }
func (t *GitCommitTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{"message": map[string]any{"type": "string"}},
		"required":   []string{"message"},
	}
}

func (t *GitCommitTool) Execute(ctx context.Context, args map[string]any) Result {
	message, _ := args["message"].(string)
	if message == "" {
		return Result{Success: false, Error: "message is required"}
	}
	return runGit(ctx, t.workspace, "commit", "-m", message)
}
