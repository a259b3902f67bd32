package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	agentpkg "azquote-api/pkg/agent"
	"azquote-api/pkg/confkit"
	llmpkg "azquote-api/pkg/llm"
	pricingpkg "azquote-api/pkg/pricing"
)

// SessionConf controls the in-memory conversation store.
type SessionConf struct {
	// TTLSeconds evicts idle sessions after this long.
	TTLSeconds int `json:",default=1800"`
}

// JournalConf controls the proposal run journal.
type JournalConf struct {
	// Dir receives one JSON file per proposal run; empty disables journaling.
	Dir string `json:",optional"`
}

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	Env     string      `json:",default=test"`
	Session SessionConf
	Journal JournalConf `json:",optional"`

	LLM     confkit.Section[llmpkg.Config]     `json:",optional"`
	Pricing confkit.Section[pricingpkg.Config] `json:",optional"`
	Agents  confkit.Section[agentpkg.Config]   `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if c.Session.TTLSeconds <= 0 {
		return errors.New("config: session.ttlseconds must be positive")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir

	if err := c.LLM.Hydrate(base, llmpkg.LoadConfig); err != nil {
		return fmt.Errorf("load llm config: %w", err)
	}
	if err := c.Pricing.Hydrate(base, pricingpkg.LoadConfig); err != nil {
		return fmt.Errorf("load pricing config: %w", err)
	}
	if err := c.Agents.Hydrate(base, agentpkg.LoadConfig); err != nil {
		return fmt.Errorf("load agents config: %w", err)
	}

	return nil
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
