package pricing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultEndpoint       = "https://prices.azure.com/api/retail/prices"
	defaultTimeout        = 10 * time.Second
	defaultMaxAttempts    = 2
	defaultInitialBackoff = 500 * time.Millisecond
	defaultCurrencyCode   = "USD"

	envEndpoint     = "PRICING_ENDPOINT"
	envCurrencyCode = "PRICING_CURRENCY_CODE"
	envTimeout      = "PRICING_TIMEOUT"
)

// FilterFields names the catalog fields used in the lookup filter. Catalogs
// differ in which identifier conventions they index, so the names are
// configuration rather than constants.
type FilterFields struct {
	ServiceName   string `yaml:"service_name"`
	SKUName       string `yaml:"sku_name"`
	ARMSKUName    string `yaml:"arm_sku_name"`
	ARMRegionName string `yaml:"arm_region_name"`
}

// Config holds runtime settings for the retail price client.
type Config struct {
	Endpoint       string        `yaml:"endpoint"`
	CurrencyCode   string        `yaml:"currency_code"`
	Timeout        time.Duration `yaml:"-"`
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"-"`
	Fields         FilterFields  `yaml:"filter_fields"`

	timeoutRaw string
	backoffRaw string
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pricing config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	var raw struct {
		Endpoint       string       `yaml:"endpoint"`
		CurrencyCode   string       `yaml:"currency_code"`
		Timeout        string       `yaml:"timeout"`
		MaxAttempts    int          `yaml:"max_attempts"`
		InitialBackoff string       `yaml:"initial_backoff"`
		Fields         FilterFields `yaml:"filter_fields"`
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pricing config: %w", err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal pricing config: %w", err)
	}

	cfg := &Config{
		Endpoint:     raw.Endpoint,
		CurrencyCode: raw.CurrencyCode,
		MaxAttempts:  raw.MaxAttempts,
		Fields:       raw.Fields,
		timeoutRaw:   raw.Timeout,
		backoffRaw:   raw.InitialBackoff,
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a ready-to-use configuration for the public Azure
// retail prices endpoint.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Timeout = defaultTimeout
	cfg.InitialBackoff = defaultInitialBackoff
	return cfg
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("pricing config: endpoint is required")
	}
	if c.Timeout <= 0 {
		return errors.New("pricing config: timeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return errors.New("pricing config: max_attempts must be at least 1")
	}
	if c.InitialBackoff <= 0 {
		return errors.New("pricing config: initial_backoff must be positive")
	}
	for _, field := range []string{c.Fields.ServiceName, c.Fields.SKUName, c.Fields.ARMSKUName, c.Fields.ARMRegionName} {
		if strings.TrimSpace(field) == "" {
			return errors.New("pricing config: filter field names cannot be empty")
		}
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
	if strings.TrimSpace(c.Endpoint) == "" {
		c.Endpoint = defaultEndpoint
	}
	if strings.TrimSpace(c.CurrencyCode) == "" {
		c.CurrencyCode = defaultCurrencyCode
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if strings.TrimSpace(c.Fields.ServiceName) == "" {
		c.Fields.ServiceName = "serviceName"
	}
	if strings.TrimSpace(c.Fields.SKUName) == "" {
		c.Fields.SKUName = "skuName"
	}
	if strings.TrimSpace(c.Fields.ARMSKUName) == "" {
		c.Fields.ARMSKUName = "armSkuName"
	}
	if strings.TrimSpace(c.Fields.ARMRegionName) == "" {
		c.Fields.ARMRegionName = "armRegionName"
	}
}

func (c *Config) applyEnvOverrides() {
	c.Endpoint = expandAndOverride(c.Endpoint, envEndpoint)
	c.CurrencyCode = expandAndOverride(c.CurrencyCode, envCurrencyCode)
	if raw := os.Getenv(envTimeout); raw != "" {
		c.timeoutRaw = raw
	} else {
		c.timeoutRaw = os.ExpandEnv(c.timeoutRaw)
	}
}

func (c *Config) parseDurations() error {
	c.Timeout = defaultTimeout
	if strings.TrimSpace(c.timeoutRaw) != "" {
		d, err := time.ParseDuration(c.timeoutRaw)
		if err != nil {
			return fmt.Errorf("pricing config: invalid timeout %q: %w", c.timeoutRaw, err)
		}
		c.Timeout = d
	}

	c.InitialBackoff = defaultInitialBackoff
	if strings.TrimSpace(c.backoffRaw) != "" {
		d, err := time.ParseDuration(c.backoffRaw)
		if err != nil {
			return fmt.Errorf("pricing config: invalid initial_backoff %q: %w", c.backoffRaw, err)
		}
		c.InitialBackoff = d
	}
	return nil
}

func expandAndOverride(current, envKey string) string {
	current = os.ExpandEnv(current)
	if envVal := os.Getenv(envKey); envVal != "" {
		return envVal
	}
	return current
}
