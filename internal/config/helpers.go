package config

import (
	"fmt"
	"path/filepath"

	"azquote-api/pkg/agent"
	"azquote-api/pkg/llm"
	"azquote-api/pkg/pricing"
)

// MustLoadLLM loads etc/llm.yaml from the project root and panics on error.
// It isolates the LLM section so tests and tools do not need the full app
// config.
func MustLoadLLM() *llm.Config {
	root := MustProjectRoot()
	path := filepath.Join(root, "etc", "llm.yaml")
	cfg, err := llm.LoadConfig(path)
	if err != nil {
		panic(fmt.Errorf("load llm config %s: %w", path, err))
	}
	return cfg
}

// MustLoadPricing loads etc/pricing.yaml from the project root and panics on error.
func MustLoadPricing() *pricing.Config {
	root := MustProjectRoot()
	path := filepath.Join(root, "etc", "pricing.yaml")
	cfg, err := pricing.LoadConfig(path)
	if err != nil {
		panic(fmt.Errorf("load pricing config %s: %w", path, err))
	}
	return cfg
}

// MustLoadAgents loads etc/agents.yaml from the project root and panics on error.
func MustLoadAgents() *agent.Config {
	root := MustProjectRoot()
	path := filepath.Join(root, "etc", "agents.yaml")
	cfg, err := agent.LoadConfig(path)
	if err != nil {
		panic(fmt.Errorf("load agents config %s: %w", path, err))
	}
	return cfg
}
