package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/snowflake"
	"sprintbench.app/core/common/llm"
	"sprintbench.app/core/internal/tools"
)

// agenticRuntime drives a tool-use loop against any llm.AgentClient: it
// generates, executes any requested tool calls against the bound tool
// registry, feeds results back as tool messages, and repeats until the
// model stops requesting tools or maxTurns is exhausted.
type agenticRuntime struct {
	client   llm.AgentClient
	registry *tools.Registry
	specs    []llm.Tool
	node     *snowflake.Node
}

func newAgenticRuntime(client llm.AgentClient, registry *tools.Registry, node *snowflake.Node) *agenticRuntime {
	var specs []llm.Tool
	if registry != nil {
		for _, name := range registry.Names() {
			t, _ := registry.Get(name)
			specs = append(specs, llm.Tool{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			})
		}
	}
	return &agenticRuntime{client: client, registry: registry, specs: specs, node: node}
}

func (r *agenticRuntime) ExecuteTask(ctx context.Context, systemPrompt, userMessage string, maxTurns int) (Result, error) {
	if maxTurns <= 0 {
		maxTurns = 1
	}

	var correlationID int64
	if r.node != nil {
		correlationID = r.node.Generate().Int64()
	}
	slog.DebugContext(ctx, "runtime call started", "correlation_id", correlationID, "model", r.client.Model())

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}

	var filesChanged []string
	toolCallCount := 0

	for turn := 0; turn < maxTurns; turn++ {
		resp, err := r.client.ChatWithTools(ctx, llm.AgentRequest{Messages: messages, Tools: r.specs})
		if err != nil {
			return Result{Success: false, Error: err.Error(), Turns: turn + 1}, nil
		}

		if len(resp.ToolCalls) == 0 {
			return Result{
				Success:   true,
				Content:   resp.Content,
				Turns:     turn + 1,
				ToolCalls: toolCallCount,
				FilesChanged: filesChanged,
				Metadata: map[string]any{
					"prompt_tokens":     resp.PromptTokens,
					"completion_tokens": resp.CompletionTokens,
					"finish_reason":     resp.FinishReason,
				},
			}, nil
		}

		messages = append(messages, llm.Message{Role: "assistant", Content: resp.Content, ToolCalls: resp.ToolCalls})

		for _, call := range resp.ToolCalls {
			toolCallCount++
			args, _ := llm.ParseToolArguments[map[string]any](call.Arguments)

			var result tools.Result
			if r.registry != nil {
				result = r.registry.Execute(ctx, call.Name, args)
			} else {
				result = tools.Result{Success: false, Error: "no tool registry configured"}
			}
			filesChanged = append(filesChanged, result.FilesChanged...)

			content := result.Output
			if !result.Success {
				content = fmt.Sprintf("error: %s", result.Error)
			}
			messages = append(messages, llm.Message{Role: "tool", Content: content, ToolCallID: call.ID})
		}
	}

	return Result{Success: false, Error: "max turns exceeded", Turns: maxTurns, ToolCalls: toolCallCount, FilesChanged: filesChanged}, nil
}

// RegisterDefaults registers the "local_vllm" and "anthropic" backends,
// exactly the two runtime types the original factory supports.
func RegisterDefaults(reg *Registry, vllmCfg llm.Config, anthropicCfg llm.Config, toolRegistry *tools.Registry, node *snowflake.Node) {
	reg.Register("local_vllm", func(agentConfig map[string]any) (AgentRuntime, error) {
		cfg := vllmCfg
		if model, ok := agentConfig["model"].(string); ok && model != "" {
			cfg.Model = model
		}
		client, err := llm.NewAgentClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("runtime: create local_vllm client: %w", err)
		}
		return newAgenticRuntime(client, toolRegistry, node), nil
	})

	reg.Register("anthropic", func(agentConfig map[string]any) (AgentRuntime, error) {
		cfg := anthropicCfg
		if model, ok := agentConfig["model"].(string); ok && model != "" {
			cfg.Model = model
		}
		client, err := llm.NewAnthropicClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("runtime: create anthropic client: %w", err)
		}
		return newAgenticRuntime(client, toolRegistry, node), nil
	})
}
