package pricing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromReader(t *testing.T) {
	data := `
endpoint: "https://prices.example.com/api/retail/prices"
currency_code: "EUR"
timeout: "5s"
max_attempts: 3
initial_backoff: "250ms"
filter_fields:
  sku_name: "skuDisplayName"
`
	cfg, err := LoadConfigFromReader(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "https://prices.example.com/api/retail/prices", cfg.Endpoint)
	require.Equal(t, "EUR", cfg.CurrencyCode)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, 3, cfg.MaxAttempts)
	require.Equal(t, 250*time.Millisecond, cfg.InitialBackoff)

	// Overridden field name sticks, untouched ones keep catalog defaults.
	require.Equal(t, "skuDisplayName", cfg.Fields.SKUName)
	require.Equal(t, "serviceName", cfg.Fields.ServiceName)
	require.Equal(t, "armSkuName", cfg.Fields.ARMSKUName)
	require.Equal(t, "armRegionName", cfg.Fields.ARMRegionName)
}

func TestLoadConfigFromReader_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, defaultEndpoint, cfg.Endpoint)
	require.Equal(t, defaultCurrencyCode, cfg.CurrencyCode)
	require.Equal(t, defaultTimeout, cfg.Timeout)
	require.Equal(t, defaultMaxAttempts, cfg.MaxAttempts)
	require.Equal(t, defaultInitialBackoff, cfg.InitialBackoff)
}

func TestLoadConfigFromReader_EnvOverrides(t *testing.T) {
	t.Setenv(envEndpoint, "https://mirror.example.com/prices")
	t.Setenv(envTimeout, "2s")

	cfg, err := LoadConfigFromReader(strings.NewReader(`endpoint: "https://prices.example.com"`))
	require.NoError(t, err)
	require.Equal(t, "https://mirror.example.com/prices", cfg.Endpoint)
	require.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoadConfigFromReader_InvalidTimeout(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader(`timeout: "soon"`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid timeout")
}

func TestConfigValidate(t *testing.T) {
	t.Run("zero attempts rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxAttempts = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("empty filter field rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Fields.ARMSKUName = ""
		require.Error(t, cfg.Validate())
	})
}

func TestFilterExpression_CustomFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fields.SKUName = "skuDisplayName"
	client, err := NewClient(cfg)
	require.NoError(t, err)

	got := client.FilterExpression("Virtual Machines", "D2", "eastus")
	require.Equal(t, "serviceName eq 'Virtual Machines' and (skuDisplayName eq 'D2' or armSkuName eq 'D2') and armRegionName eq 'eastus'", got)
}
