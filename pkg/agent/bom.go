package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"azquote-api/pkg/llm"
)

// BOMAgent turns a requirements transcript into a bill-of-materials response.
// The raw reply is fed to bom.ParseResponse by the caller; this agent does not
// interpret it.
type BOMAgent struct {
	client llm.LLMClient
	cfg    AgentConfig
	tmpl   *llm.PromptTemplate
}

// NewBOMAgent loads the BOM prompt template.
func NewBOMAgent(client llm.LLMClient, cfg AgentConfig) (*BOMAgent, error) {
	if client == nil {
		return nil, errors.New("agent: llm client cannot be nil")
	}
	tmpl, err := llm.NewPromptTemplate(cfg.PromptTemplate, nil)
	if err != nil {
		return nil, fmt.Errorf("agent: bom prompt: %w", err)
	}
	return &BOMAgent{client: client, cfg: cfg, tmpl: tmpl}, nil
}

// GenerateBOM asks the model for a BOM covering the gathered requirements and
// returns the raw reply text.
func (a *BOMAgent) GenerateBOM(ctx context.Context, requirements string) (string, error) {
	system, err := a.tmpl.Render(nil)
	if err != nil {
		return "", err
	}

	resp, err := a.client.Chat(ctx, &llm.ChatRequest{
		Model: a.cfg.Model,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: "Customer requirements conversation:\n\n" + requirements},
		},
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("agent: bom chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("agent: bom chat returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
