package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

const bashTimeout = 30 * time.Second

// BashTool runs a shell command rooted at the workspace directory.
type BashTool struct{ workspace string }

func (t *BashTool) Name() string        { return "bash" }
func (t *BashTool) Description() string { return "Run a shell command in the workspace" }
func (t *BashTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"command": map[string]any{"type": "string"},
		},
		"required": []string{"command"},
	}
}

func (t *BashTool) Execute(ctx context.Context, args map[string]any) Result {
	command, _ := args["command"].(string)
	if command == "" {
		return Result{Success: false, Error: "command is required"}
	}

	runCtx, cancel := context.WithTimeout(ctx, bashTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "bash", "-c", command)
	cmd.Dir = t.workspace

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := stdout.String()
	if err != nil {
		return Result{
			Success: false,
			Output:  output,
			Error:   fmt.Sprintf("%v: %s", err, stderr.String()),
		}
	}
	return Result{Success: true, Output: output}
}
