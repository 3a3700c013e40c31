package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/timvw/pitch-check/internal/config"
	"github.com/timvw/pitch-check/internal/evaluator"
	"github.com/timvw/pitch-check/internal/logging"
	telem "github.com/timvw/pitch-check/internal/otel"
	"go.uber.org/zap"
)

var (
	// Global flags.
	flagProvider  string
	flagModel     string
	flagBaseURL   string
	flagAPIKey    string
	flagMaxTokens int64
	flagTimeout   string
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "pitch-check",
	Short: "Evaluate business proposals with a generative AI model",
	Long: `pitch-check sends a free-text business proposal to a generative AI model
and returns a structured evaluation: SWOT analysis, risk assessment,
strategic suggestions, an overall score and a summary.

All analysis is done by the model. pitch-check builds the request, validates
the response against a fixed schema and renders the result.

Configuration is loaded from .pitch-check.yaml, ~/.config/pitch-check/config.yaml,
.env and PITCH_CHECK_* environment variables. Flags override everything.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "LLM provider: gemini, openai, anthropic (default: gemini)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "LLM model name (default: gemini-3-flash-preview for gemini, gpt-4.1-mini for openai, claude-sonnet-4-5 for anthropic)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "override LLM API base URL")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "override LLM API key")
	rootCmd.PersistentFlags().Int64Var(&flagMaxTokens, "max-tokens", 0, "max completion tokens (default: 4096)")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "per-evaluation timeout, e.g. 30s; 0 disables (default: 60s)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig loads configuration and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfg, err := config.Load(func(c *config.Config) {
		if flags.Changed("provider") {
			c.Provider = flagProvider
		}
		if flags.Changed("model") {
			c.Model = flagModel
		}
		if flags.Changed("base-url") {
			c.BaseURL = flagBaseURL
		}
		if flags.Changed("api-key") {
			c.APIKey = flagAPIKey
		}
		if flags.Changed("max-tokens") {
			c.MaxTokens = flagMaxTokens
		}
		if flags.Changed("timeout") {
			c.Timeout = flagTimeout
		}
		if flags.Changed("log-level") {
			c.LogLevel = flagLogLevel
		}
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// app bundles everything a command needs to evaluate proposals.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	tel    *telem.Telemetry
	client *evaluator.Client
}

type appOptions struct {
	// logFile redirects logs to a file (TUI). Empty with fileLogging set
	// disables logging.
	logFile     string
	fileLogging bool
	prometheus  bool
}

// newApp loads configuration and wires logging, telemetry and the client.
func newApp(ctx context.Context, cmd *cobra.Command, opts appOptions) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	var logger *zap.Logger
	if opts.fileLogging {
		logger, err = logging.NewFile(cfg.LogLevel, opts.logFile)
	} else {
		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
	}
	if err != nil {
		return nil, err
	}
	if cfg.ConfigFile != "" {
		logger.Debug("config loaded", zap.String("path", cfg.ConfigFile))
	}

	// Wire build version into OTEL service metadata
	telem.Version = Version

	// Initialize OTEL (no-op if no endpoint configured)
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint:   cfg.OTELEndpoint,
		Headers:    cfg.OTELHeaders,
		Prometheus: opts.prometheus,
	})
	if err != nil {
		logger.Warn("otel init failed", zap.Error(err))
	}
	var metrics *telem.Metrics
	if tel != nil {
		metrics = tel.Metrics
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		logger.Warn("no API key configured; evaluations will fail",
			zap.String("provider", cfg.Provider))
	}

	client := evaluator.NewClient(provider, cfg.APIKey,
		evaluator.WithLogger(logger),
		evaluator.WithMetrics(metrics))

	return &app{cfg: cfg, logger: logger, tel: tel, client: client}, nil
}

// Close flushes telemetry and logs.
func (a *app) Close(ctx context.Context) {
	if a.tel != nil {
		a.tel.Shutdown(ctx)
	}
	_ = a.logger.Sync()
}

// newProvider builds the configured model provider. It returns nil without
// an error when no API key is configured.
func newProvider(ctx context.Context, cfg *config.Config) (evaluator.Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}

	pc := evaluator.ProviderConfig{
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		MaxTokens:    cfg.MaxTokens,
		ExtraHeaders: azureHeaders(cfg),
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		p, err := evaluator.NewGeminiProvider(ctx, pc)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderOpenAI:
		return evaluator.NewOpenAIProvider(pc), nil
	case config.ProviderAnthropic:
		return evaluator.NewAnthropicProvider(pc), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (supported: gemini, openai, anthropic)", cfg.Provider)
	}
}

// azureHeaders returns the "api-key" header Azure AI Foundry expects next to
// each SDK's own auth header. Only the OpenAI and Anthropic providers are
// served through Azure; Gemini traffic never carries it.
func azureHeaders(cfg *config.Config) map[string]string {
	switch cfg.Provider {
	case config.ProviderOpenAI, config.ProviderAnthropic:
	default:
		return nil
	}
	if os.Getenv("AZURE_RESOURCE_NAME") == "" && !config.IsAzureEndpoint(cfg.BaseURL) {
		return nil
	}
	return map[string]string{"api-key": cfg.APIKey}
}
