package bom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleBOM = `[{"serviceName":"Azure App Service","sku":"P1v2","quantity":1,"region":"East US","armRegionName":"eastus","hoursPerMonth":730}]`

func TestParseResponse_PlainArray(t *testing.T) {
	items, err := ParseResponse(sampleBOM)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Azure App Service", items[0].ServiceName)
	require.Equal(t, "P1v2", items[0].SKU)
	require.Equal(t, 1.0, items[0].Quantity)
	require.Equal(t, "eastus", items[0].ARMRegionName)
	require.Equal(t, 730.0, items[0].HoursPerMonth)
}

func TestParseResponse_FencedWithProse(t *testing.T) {
	text := "Here is the bill of materials you asked for:\n\n```json\n" + sampleBOM + "\n```\n\nLet me know if you want changes."
	items, err := ParseResponse(text)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Azure App Service", items[0].ServiceName)
}

func TestParseResponse_RoundTrip(t *testing.T) {
	original := []LineItem{
		{ServiceName: "Virtual Machines", SKU: "Standard_D2s_v3", Quantity: 2, Region: "East US", ARMRegionName: "eastus", HoursPerMonth: 730},
		{ServiceName: "SQL Database", SKU: "S1", Quantity: 1.5, Region: "West Europe", ARMRegionName: "westeurope", HoursPerMonth: 744},
	}
	data, err := json.Marshal(original)
	require.NoError(t, err)

	parsed, err := ParseResponse(string(data))
	require.NoError(t, err)
	require.Equal(t, original, parsed)
}

func TestParseResponse_PreservesOrderAndDuplicates(t *testing.T) {
	text := `[
		{"serviceName":"B","sku":"s","quantity":1,"region":"East US","armRegionName":"eastus","hoursPerMonth":10},
		{"serviceName":"A","sku":"s","quantity":1,"region":"East US","armRegionName":"eastus","hoursPerMonth":10},
		{"serviceName":"A","sku":"s","quantity":1,"region":"East US","armRegionName":"eastus","hoursPerMonth":10}
	]`
	items, err := ParseResponse(text)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "B", items[0].ServiceName)
	require.Equal(t, "A", items[1].ServiceName)
	require.Equal(t, "A", items[2].ServiceName)
}

func TestParseResponse_FailureKinds(t *testing.T) {
	t.Run("extraction failure", func(t *testing.T) {
		_, err := ParseResponse("no json here at all")
		var extractErr *ExtractionError
		require.ErrorAs(t, err, &extractErr)
	})

	t.Run("decode failure", func(t *testing.T) {
		_, err := ParseResponse("```json\n[{\"serviceName\": }]\n```")
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.ErrorContains(t, err, "invalid JSON format")
		require.Error(t, validationErr.Unwrap())
	})

	t.Run("schema failure", func(t *testing.T) {
		_, err := ParseResponse(`[{"serviceName":"x"}]`)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.ErrorContains(t, err, "missing required fields")
		require.NoError(t, validationErr.Unwrap())
	})
}
