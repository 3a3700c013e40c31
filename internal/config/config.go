// Package config loads pitch-check configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by cmd)
//  2. Environment variables (PITCH_CHECK_*, provider API key variables)
//  3. Config file
//  4. Built-in defaults
//
// A .env file in the current directory is loaded into the environment first;
// it never overrides variables that are already set.
//
// Config file search order:
//  1. .pitch-check.yaml in current directory
//  2. ~/.config/pitch-check/config.yaml
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all pitch-check configuration.
type Config struct {
	// LLM settings
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	MaxTokens int64  `yaml:"max_tokens"`
	Timeout   string `yaml:"timeout"` // Go duration string, e.g. "60s"; "0" disables

	// HTTP server
	ListenAddr     string   `yaml:"listen_addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // "console" or "json"

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs, e.g. "Authorization=Basic abc123"

	// Parsed durations (not from YAML, set after loading)
	TimeoutDuration time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values. Model is left empty and
// resolved from the provider by Load.
func Defaults() *Config {
	return &Config{
		Provider:   ProviderGemini,
		MaxTokens:  4096,
		Timeout:    "60s",
		ListenAddr: ":8080",
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4.1-mini"
	case ProviderAnthropic:
		return "claude-sonnet-4-5"
	default:
		return "gemini-3-flash-preview"
	}
}

// Load reads configuration from .env, file and environment variables.
// Environment variables always override file values; overrides (command-line
// flags) are applied last. A missing API key is not an error here; evaluation
// reports it.
func Load(overrides ...func(*Config)) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Defaults()

	// Try to load config file
	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	// Environment variables override the file
	mergeEnv(cfg)

	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize fills derived values (provider default model, API key and Azure
// base URL fallbacks, parsed timeout) and validates the result.
func (c *Config) Finalize() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported provider %q (want gemini, openai or anthropic)", c.Provider)
	}
	if c.Model == "" {
		c.Model = DefaultModel(c.Provider)
	}
	if c.APIKey == "" {
		c.APIKey = apiKeyFromEnv(c.Provider)
	}
	if c.BaseURL == "" {
		c.BaseURL = azureBaseURL(c.Provider)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format %q (want console or json)", c.LogFormat)
	}

	var err error
	c.TimeoutDuration, err = parseDurationOrDisable(c.Timeout, 60*time.Second)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".pitch-check.yaml"); err == nil {
		return ".pitch-check.yaml", data, nil
	}

	// 2. ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "pitch-check", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Provider != "" {
		cfg.Provider = file.Provider
	}
	if file.Model != "" {
		cfg.Model = file.Model
	}
	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.APIKey != "" {
		cfg.APIKey = file.APIKey
	}
	if file.MaxTokens > 0 {
		cfg.MaxTokens = file.MaxTokens
	}
	if file.Timeout != "" {
		cfg.Timeout = file.Timeout
	}
	if file.ListenAddr != "" {
		cfg.ListenAddr = file.ListenAddr
	}
	if len(file.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = file.AllowedOrigins
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.LogFormat != "" {
		cfg.LogFormat = file.LogFormat
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("PITCH_CHECK_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("PITCH_CHECK_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PITCH_CHECK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PITCH_CHECK_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PITCH_CHECK_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("PITCH_CHECK_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PITCH_CHECK_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("PITCH_CHECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PITCH_CHECK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}

// apiKeyFromEnv returns the first provider-specific API key variable that is set.
func apiKeyFromEnv(provider string) string {
	var names []string
	switch provider {
	case ProviderGemini:
		names = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case ProviderOpenAI:
		names = []string{"AZURE_OPENAI_API_KEY", "OPENAI_API_KEY"}
	case ProviderAnthropic:
		names = []string{"AZURE_OPENAI_API_KEY", "ANTHROPIC_API_KEY"}
	}
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// azureBaseURL derives an Azure AI Foundry endpoint from AZURE_RESOURCE_NAME.
func azureBaseURL(provider string) string {
	rn := os.Getenv("AZURE_RESOURCE_NAME")
	if rn == "" {
		return ""
	}
	switch provider {
	case ProviderAnthropic:
		return fmt.Sprintf("https://%s.services.ai.azure.com/anthropic/", rn)
	case ProviderOpenAI:
		return fmt.Sprintf("https://%s.openai.azure.com/openai/v1", rn)
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDurationOrDisable parses a duration string. "0", "off", "disable" return 0.
// Empty string returns the fallback value.
func parseDurationOrDisable(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	if s == "0" || s == "off" || s == "disable" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// IsAzureEndpoint returns true if the URL is an Azure endpoint.
func IsAzureEndpoint(url string) bool {
	return strings.Contains(url, ".azure.com") || strings.Contains(url, ".azure.us")
}
