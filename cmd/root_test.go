package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timvw/pitch-check/internal/config"
)

func TestNewProvider(t *testing.T) {
	t.Setenv("AZURE_RESOURCE_NAME", "")

	tests := []struct {
		provider string
		name     string
	}{
		{config.ProviderGemini, "gemini"},
		{config.ProviderOpenAI, "openai"},
		{config.ProviderAnthropic, "anthropic"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &config.Config{Provider: tt.provider, APIKey: "key", Model: "m"}
			p, err := newProvider(context.Background(), cfg)
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, tt.name, p.Name())
			assert.Equal(t, "m", p.Model())
		})
	}
}

func TestNewProviderWithoutKey(t *testing.T) {
	p, err := newProvider(context.Background(), &config.Config{Provider: config.ProviderGemini, APIKey: "  "})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := newProvider(context.Background(), &config.Config{Provider: "llama", APIKey: "key"})
	assert.Error(t, err)
}

func TestAzureHeaders(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		provider string
		baseURL  string
		want     map[string]string
	}{
		{name: "openai via resource", resource: "res", provider: config.ProviderOpenAI, want: map[string]string{"api-key": "key"}},
		{name: "anthropic via resource", resource: "res", provider: config.ProviderAnthropic, want: map[string]string{"api-key": "key"}},
		{name: "openai via azure url", provider: config.ProviderOpenAI, baseURL: "https://res.openai.azure.com/openai/v1", want: map[string]string{"api-key": "key"}},
		{name: "gemini with resource set", resource: "res", provider: config.ProviderGemini, want: nil},
		{name: "openai without azure", provider: config.ProviderOpenAI, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AZURE_RESOURCE_NAME", tt.resource)
			cfg := &config.Config{Provider: tt.provider, APIKey: "key", BaseURL: tt.baseURL}
			assert.Equal(t, tt.want, azureHeaders(cfg))
		})
	}
}
