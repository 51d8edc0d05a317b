package runtime

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"sprintbench.app/core/common/llm"
)

type fakeAgentClient struct {
	responses []llm.AgentResponse
	errOn     int // -1 disables
	calls     int
}

func (f *fakeAgentClient) Model() string { return "fake-model" }

func (f *fakeAgentClient) ChatWithTools(ctx context.Context, req llm.AgentRequest) (*llm.AgentResponse, error) {
	idx := f.calls
	f.calls++
	if f.errOn == idx {
		return nil, errors.New("upstream error")
	}
	if idx >= len(f.responses) {
		return &llm.AgentResponse{Content: "done"}, nil
	}
	resp := f.responses[idx]
	return &resp, nil
}

var _ = Describe("agenticRuntime", func() {
	It("stops when no tool calls are requested", func() {
		client := &fakeAgentClient{
			responses: []llm.AgentResponse{{Content: "final answer", FinishReason: "stop"}},
			errOn:     -1,
		}
		rt := newAgenticRuntime(client, nil, nil)

		result, err := rt.ExecuteTask(context.Background(), "system", "do the thing", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Success).To(BeTrue())
		Expect(result.Content).To(Equal("final answer"))
		Expect(result.Turns).To(Equal(1))
	})

	It("loops on tool calls then stops", func() {
		client := &fakeAgentClient{
			responses: []llm.AgentResponse{
				{ToolCalls: []llm.ToolCall{{ID: "1", Name: "noop", Arguments: "{}"}}, FinishReason: "tool_calls"},
				{Content: "wrapped up", FinishReason: "stop"},
			},
			errOn: -1,
		}
		rt := newAgenticRuntime(client, nil, nil)

		result, err := rt.ExecuteTask(context.Background(), "system", "do the thing", 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Success).To(BeTrue())
		Expect(result.Turns).To(Equal(2))
		Expect(result.ToolCalls).To(Equal(1))
	})

	It("exhausts max turns as a soft failure", func() {
		client := &fakeAgentClient{
			responses: []llm.AgentResponse{
				{ToolCalls: []llm.ToolCall{{ID: "1", Name: "noop", Arguments: "{}"}}, FinishReason: "tool_calls"},
				{ToolCalls: []llm.ToolCall{{ID: "2", Name: "noop", Arguments: "{}"}}, FinishReason: "tool_calls"},
			},
			errOn: -1,
		}
		rt := newAgenticRuntime(client, nil, nil)

		result, err := rt.ExecuteTask(context.Background(), "system", "do the thing", 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Success).To(BeFalse())
		Expect(result.Error).To(Equal("max turns exceeded"))
	})

	It("treats a client error as a soft failure, not a Go error", func() {
		client := &fakeAgentClient{errOn: 0}
		rt := newAgenticRuntime(client, nil, nil)

		result, err := rt.ExecuteTask(context.Background(), "system", "do the thing", 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Success).To(BeFalse())
		Expect(result.Error).To(Equal("upstream error"))
	})

	It("coerces maxTurns <= 0 to 1", func() {
		client := &fakeAgentClient{responses: []llm.AgentResponse{{Content: "ok"}}, errOn: -1}
		rt := newAgenticRuntime(client, nil, nil)

		result, err := rt.ExecuteTask(context.Background(), "system", "go", 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Turns).To(Equal(1))
	})
})

var _ = Describe("Registry", func() {
	It("lists registered types when asked to create an unknown one", func() {
		reg := NewRegistry()
		reg.Register("local_vllm", func(map[string]any) (AgentRuntime, error) { return nil, nil })

		_, err := reg.Create("bogus", nil)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("local_vllm"))
	})
})

var _ = Describe("ResolveRuntimeConfig", func() {
	BeforeEach(func() {
		GinkgoT().Setenv("AGENT_RUNTIME_MODE", "")
	})

	It("lets agentConfig select the runtime type and merges its model override", func() {
		global := GlobalConfig{
			DefaultRuntime: "local_vllm",
			PerType: map[string]map[string]any{
				"local_vllm": {"endpoint": "http://local"},
				"anthropic":  {"endpoint": "http://anthropic"},
			},
		}

		rtType, merged := ResolveRuntimeConfig(global, map[string]any{"runtime": "anthropic", "model": "claude-x"})
		Expect(rtType).To(Equal("anthropic"))
		Expect(merged["endpoint"]).To(Equal("http://anthropic"))
		Expect(merged["model"]).To(Equal("claude-x"))

		rtType, _ = ResolveRuntimeConfig(global, nil)
		Expect(rtType).To(Equal("local_vllm"))
	})

	It("lets the environment override win over agentConfig", func() {
		GinkgoT().Setenv("AGENT_RUNTIME_MODE", "anthropic")

		global := GlobalConfig{DefaultRuntime: "local_vllm"}
		rtType, _ := ResolveRuntimeConfig(global, map[string]any{"runtime": "local_vllm"})
		Expect(rtType).To(Equal("anthropic"))
	})
})
