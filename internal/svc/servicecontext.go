package svc

import (
	"log"

	"azquote-api/internal/config"
	"azquote-api/internal/session"
	agentpkg "azquote-api/pkg/agent"
	"azquote-api/pkg/journal"
	llmpkg "azquote-api/pkg/llm"
	pricingpkg "azquote-api/pkg/pricing"
)

type ServiceContext struct {
	Config config.Config

	LLMClient     llmpkg.LLMClient
	PricingClient *pricingpkg.Client
	AgentConfig   *agentpkg.Config
	QuestionAgent *agentpkg.QuestionAgent
	Workflow      *agentpkg.Workflow

	Sessions *session.Store
	Journal  *journal.Writer
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{Config: c}

	if c.LLM.Value == nil {
		log.Fatal("llm config section is required")
	}
	llmClient, err := llmpkg.NewClient(c.LLM.Value)
	if err != nil {
		log.Fatalf("failed to init llm client: %v", err)
	}
	svc.LLMClient = llmClient

	pricingCfg := c.Pricing.Value
	if pricingCfg == nil {
		pricingCfg = pricingpkg.DefaultConfig()
	}
	pricingClient, err := pricingpkg.NewClient(pricingCfg)
	if err != nil {
		log.Fatalf("failed to init pricing client: %v", err)
	}
	svc.PricingClient = pricingClient

	if c.Agents.Value == nil {
		log.Fatal("agents config section is required")
	}
	svc.AgentConfig = c.Agents.Value

	questionAgent, err := agentpkg.NewQuestionAgent(llmClient, svc.AgentConfig.Question, svc.AgentConfig.DoneSentinel)
	if err != nil {
		log.Fatalf("failed to init question agent: %v", err)
	}
	svc.QuestionAgent = questionAgent

	workflow, err := agentpkg.NewWorkflow(svc.AgentConfig, llmClient, pricingClient, pricingCfg.CurrencyCode)
	if err != nil {
		log.Fatalf("failed to init workflow: %v", err)
	}
	svc.Workflow = workflow

	store, err := session.NewStore(session.TTLFromSeconds(c.Session.TTLSeconds))
	if err != nil {
		log.Fatalf("failed to init session store: %v", err)
	}
	svc.Sessions = store

	if c.Journal.Dir != "" {
		svc.Journal = journal.NewWriter(c.Journal.Dir)
	}

	return svc
}
