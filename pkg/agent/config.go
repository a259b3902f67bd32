package agent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"azquote-api/pkg/confkit"
)

const (
	defaultMaxTurns       = 20
	defaultDoneSentinel   = "We are DONE!"
	defaultPricingWorkers = 8
)

// AgentConfig selects the model and prompt for a single agent role.
type AgentConfig struct {
	Model          string   `yaml:"model"`
	PromptTemplate string   `yaml:"prompt_template"`
	Temperature    *float64 `yaml:"temperature,omitempty"`
	MaxTokens      *int     `yaml:"max_tokens,omitempty"`
}

// Config holds settings for the agent pipeline.
type Config struct {
	Question AgentConfig `yaml:"question"`
	BOM      AgentConfig `yaml:"bom"`
	Proposal AgentConfig `yaml:"proposal"`

	// MaxTurns caps the requirements conversation length.
	MaxTurns int `yaml:"max_turns"`
	// DoneSentinel marks the question agent's handoff reply.
	DoneSentinel string `yaml:"done_sentinel"`
	// PricingWorkers bounds the price lookup fan-out.
	PricingWorkers int `yaml:"pricing_workers"`
}

// LoadConfig reads configuration from disk. Relative prompt template paths are
// resolved against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open agent config: %w", err)
	}
	defer file.Close()

	cfg, err := LoadConfigFromReader(file)
	if err != nil {
		return nil, err
	}
	cfg.resolveTemplatePaths(confkit.BaseDir(path))
	return cfg, nil
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read agent config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal agent config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that each agent role has a prompt template.
func (c *Config) Validate() error {
	for _, role := range []struct {
		name string
		cfg  AgentConfig
	}{
		{"question", c.Question},
		{"bom", c.BOM},
		{"proposal", c.Proposal},
	} {
		if strings.TrimSpace(role.cfg.PromptTemplate) == "" {
			return fmt.Errorf("agent config: %s.prompt_template is required", role.name)
		}
	}
	if c.MaxTurns <= 0 {
		return errors.New("agent config: max_turns must be positive")
	}
	if strings.TrimSpace(c.DoneSentinel) == "" {
		return errors.New("agent config: done_sentinel is required")
	}
	if c.PricingWorkers <= 0 {
		return errors.New("agent config: pricing_workers must be positive")
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (c *Config) applyDefaults() {
	if c.MaxTurns <= 0 {
		c.MaxTurns = defaultMaxTurns
	}
	if strings.TrimSpace(c.DoneSentinel) == "" {
		c.DoneSentinel = defaultDoneSentinel
	}
	if c.PricingWorkers <= 0 {
		c.PricingWorkers = defaultPricingWorkers
	}
}

func (c *Config) resolveTemplatePaths(base string) {
	c.Question.PromptTemplate = confkit.ResolvePath(base, c.Question.PromptTemplate)
	c.BOM.PromptTemplate = confkit.ResolvePath(base, c.BOM.PromptTemplate)
	c.Proposal.PromptTemplate = confkit.ResolvePath(base, c.Proposal.PromptTemplate)
}
