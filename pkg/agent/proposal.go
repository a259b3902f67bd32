package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"azquote-api/pkg/llm"
)

// ProposalAgent composes the customer-facing proposal from the requirements
// transcript and the priced quote.
type ProposalAgent struct {
	client llm.LLMClient
	cfg    AgentConfig
	tmpl   *llm.PromptTemplate
}

// NewProposalAgent loads the proposal prompt template.
func NewProposalAgent(client llm.LLMClient, cfg AgentConfig) (*ProposalAgent, error) {
	if client == nil {
		return nil, errors.New("agent: llm client cannot be nil")
	}
	tmpl, err := llm.NewPromptTemplate(cfg.PromptTemplate, nil)
	if err != nil {
		return nil, fmt.Errorf("agent: proposal prompt: %w", err)
	}
	return &ProposalAgent{client: client, cfg: cfg, tmpl: tmpl}, nil
}

// ComposeProposal renders the proposal prompt and asks the model for the
// final document. The quote is passed through as indented JSON so the model
// quotes exact figures instead of recomputing them.
func (a *ProposalAgent) ComposeProposal(ctx context.Context, requirements string, quote PricedQuote) (string, error) {
	system, err := a.tmpl.Render(nil)
	if err != nil {
		return "", err
	}

	quoteJSON, err := json.MarshalIndent(quote, "", "  ")
	if err != nil {
		return "", fmt.Errorf("agent: encode quote: %w", err)
	}

	user := fmt.Sprintf("Customer requirements conversation:\n\n%s\n\nPriced bill of materials (%s):\n\n%s",
		requirements, quote.Currency, quoteJSON)

	resp, err := a.client.Chat(ctx, &llm.ChatRequest{
		Model: a.cfg.Model,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("agent: proposal chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("agent: proposal chat returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
