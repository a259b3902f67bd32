package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveModelID(t *testing.T) {
	tests := []struct {
		name  string
		alias string
		cfg   ModelConfig
		want  string
	}{
		{"alias already qualified", "openai/gpt-4o", ModelConfig{Provider: "azure", ModelName: "other"}, "openai/gpt-4o"},
		{"alias mapped through config", "gpt-4o", ModelConfig{Provider: "openai", ModelName: "gpt-4o-2024"}, "openai/gpt-4o-2024"},
		{"no model name falls back to alias", "gpt-4o", ModelConfig{Provider: "openai"}, "openai/gpt-4o"},
		{"no provider keeps bare name", "gpt-4o", ModelConfig{ModelName: "gpt-4o-mini"}, "gpt-4o-mini"},
		{"qualified model name wins", "quote", ModelConfig{Provider: "openai", ModelName: "openai/gpt-4o"}, "openai/gpt-4o"},
		{"whitespace trimmed", "  gpt-4o  ", ModelConfig{Provider: "openai", ModelName: "gpt-4o"}, "openai/gpt-4o"},
		{"empty config passes alias through", "gpt-4o", ModelConfig{}, "gpt-4o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveModelID(tt.alias, tt.cfg))
		})
	}
}

func TestParseModelID(t *testing.T) {
	tests := []struct {
		input        string
		wantProvider string
		wantName     string
	}{
		{"openai/gpt-4o", "openai", "gpt-4o"},
		{"gpt-4o", "", "gpt-4o"},
		{"openai/gpt-4o/preview", "openai", "gpt-4o/preview"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			provider, name := ParseModelID(tt.input)
			require.Equal(t, tt.wantProvider, provider)
			require.Equal(t, tt.wantName, name)
		})
	}
}
