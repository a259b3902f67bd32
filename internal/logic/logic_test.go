package logic

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"azquote-api/internal/config"
	"azquote-api/internal/session"
	"azquote-api/internal/svc"
	"azquote-api/pkg/agent"
	"azquote-api/pkg/llm"
)

// scriptedLLM replays canned replies in order.
type scriptedLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
}

func (f *scriptedLLM) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if len(f.replies) == 0 {
		return nil, errors.New("scriptedLLM: no replies left")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return &llm.ChatResponse{
		Choices: []llm.Choice{{Message: llm.Message{Role: "assistant", Content: reply}}},
	}, nil
}

func (f *scriptedLLM) ChatStream(ctx context.Context, req *llm.ChatRequest) (<-chan llm.StreamResponse, error) {
	return nil, errors.New("scriptedLLM: streaming not supported")
}

func (f *scriptedLLM) GetConfig() *llm.Config { return &llm.Config{} }
func (f *scriptedLLM) Close() error           { return nil }

type staticResolver struct {
	price float64
}

func (r *staticResolver) GetPrice(ctx context.Context, serviceName, sku, region string) float64 {
	return r.price
}

func newTestServiceContext(t *testing.T, client llm.LLMClient, resolver agent.PriceResolver) *svc.ServiceContext {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"question.tmpl", "bom.tmpl", "proposal.tmpl"} {
		content := "instructions"
		if name == "question.tmpl" {
			content = "Gather requirements. Reply with {{.DoneSentinel}} when done."
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	agentCfg := &agent.Config{
		Question:       agent.AgentConfig{Model: "gpt-5", PromptTemplate: filepath.Join(dir, "question.tmpl")},
		BOM:            agent.AgentConfig{Model: "gpt-5", PromptTemplate: filepath.Join(dir, "bom.tmpl")},
		Proposal:       agent.AgentConfig{Model: "gpt-5", PromptTemplate: filepath.Join(dir, "proposal.tmpl")},
		MaxTurns:       20,
		DoneSentinel:   "We are DONE!",
		PricingWorkers: 2,
	}
	require.NoError(t, agentCfg.Validate())

	questionAgent, err := agent.NewQuestionAgent(client, agentCfg.Question, agentCfg.DoneSentinel)
	require.NoError(t, err)

	workflow, err := agent.NewWorkflow(agentCfg, client, resolver, "USD")
	require.NoError(t, err)

	store, err := session.NewStore(time.Minute)
	require.NoError(t, err)

	return &svc.ServiceContext{
		Config:        config.Config{},
		LLMClient:     client,
		AgentConfig:   agentCfg,
		QuestionAgent: questionAgent,
		Workflow:      workflow,
		Sessions:      store,
	}
}
