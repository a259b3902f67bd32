package agent

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"azquote-api/pkg/bom"
	"azquote-api/pkg/llm"
)

// Workflow runs the sequential quote pipeline: BOM generation, BOM parsing,
// pricing, and proposal composition.
type Workflow struct {
	bomAgent      *BOMAgent
	pricer        *Pricer
	proposalAgent *ProposalAgent
}

// Result carries every intermediate artifact so callers can inspect or store
// the full pipeline output.
type Result struct {
	BOMText  string         `json:"bomText"`
	Items    []bom.LineItem `json:"items"`
	Quote    PricedQuote    `json:"quote"`
	Proposal string         `json:"proposal"`
}

// NewWorkflow wires the pipeline from a config, an LLM client, and a price
// resolver.
func NewWorkflow(cfg *Config, client llm.LLMClient, resolver PriceResolver, currency string) (*Workflow, error) {
	bomAgent, err := NewBOMAgent(client, cfg.BOM)
	if err != nil {
		return nil, err
	}
	proposalAgent, err := NewProposalAgent(client, cfg.Proposal)
	if err != nil {
		return nil, err
	}
	return &Workflow{
		bomAgent:      bomAgent,
		pricer:        NewPricer(resolver, currency, cfg.PricingWorkers),
		proposalAgent: proposalAgent,
	}, nil
}

// Run executes the pipeline for a finished requirements transcript. A BOM
// that fails extraction or validation surfaces as an error so the caller can
// decide whether to re-prompt; pricing failures degrade to zero-cost lines
// inside the quote.
func (w *Workflow) Run(ctx context.Context, requirements string) (*Result, error) {
	logger := logx.WithContext(ctx)

	logger.Info("workflow: generating bill of materials")
	bomText, err := w.bomAgent.GenerateBOM(ctx, requirements)
	if err != nil {
		return nil, err
	}

	items, err := bom.ParseResponse(bomText)
	if err != nil {
		return nil, fmt.Errorf("workflow: parse bom: %w", err)
	}
	logger.Infof("workflow: bom parsed, %d line items", len(items))

	quote := w.pricer.PriceBOM(ctx, items)
	logger.Infof("workflow: quote total %.2f %s/month", quote.TotalMonthly, quote.Currency)

	proposal, err := w.proposalAgent.ComposeProposal(ctx, requirements, quote)
	if err != nil {
		return nil, err
	}

	return &Result{
		BOMText:  bomText,
		Items:    items,
		Quote:    quote,
		Proposal: proposal,
	}, nil
}
