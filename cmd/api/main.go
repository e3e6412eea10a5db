package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nyashahama/market-entry-advisor/internal/ai"
	"github.com/nyashahama/market-entry-advisor/internal/api"
	"github.com/nyashahama/market-entry-advisor/internal/auth"
	"github.com/nyashahama/market-entry-advisor/internal/config"
	"github.com/nyashahama/market-entry-advisor/internal/estimate"
	"github.com/nyashahama/market-entry-advisor/internal/metrics"
	"github.com/nyashahama/market-entry-advisor/internal/orchestrator"
	"github.com/nyashahama/market-entry-advisor/internal/store"
	"github.com/nyashahama/market-entry-advisor/internal/transport"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, cfgErr := config.Load()

	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	env, level := os.Getenv("ENV"), "info"
	if cfgErr == nil {
		env, level = cfg.Env, cfg.LogLevel
	}
	logger := newLogger(env, level)
	slog.SetDefault(logger)

	if cfgErr != nil {
		logger.Error("fatal", "error", fmt.Errorf("config: %w", cfgErr))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func newLogger(env, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port, "version", version)

	// Root context cancelled by OS signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Metrics ───────────────────────────────────────────────────────────────
	m := metrics.New()

	// ── AI ────────────────────────────────────────────────────────────────────
	llm, err := buildCompleter(ctx, cfg, m, logger)
	if err != nil {
		return fmt.Errorf("ai: %w", err)
	}

	// ── Estimators ────────────────────────────────────────────────────────────
	// With a model: try the cached remote estimator under a timeout, fall back
	// to the tables. Without one: tables only.
	deterministic := estimate.NewDeterministic()
	var primary estimate.Estimator
	if llm != nil {
		remote := estimate.NewRemote(llm, estimate.RemoteConfig{
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
		})
		primary = estimate.NewCached(remote, cfg.CacheSize, cfg.CacheTTL, m)
	}
	est := estimate.NewFallback(primary, deterministic, cfg.EstimatorTimeout, logger, m)

	// ── Session store ─────────────────────────────────────────────────────────
	sessions := store.New(store.WithObserver(m))
	defer sessions.Close()

	// ── Orchestrator ──────────────────────────────────────────────────────────
	orch := orchestrator.New(est, sessions, logger,
		orchestrator.WithConcurrency(cfg.CompareConcurrency),
	)

	// ── HTTP + gRPC ───────────────────────────────────────────────────────────
	handler := api.NewServer(
		orch,
		auth.New(cfg.AuthTokens, cfg.AuthTokenPrefix),
		m,
		api.Config{
			Env:               cfg.Env,
			Version:           version,
			AllowedOrigins:    cfg.AllowedOrigins,
			RequestTimeout:    cfg.RequestTimeout,
			RateLimitRequests: cfg.RateLimitRequests,
			RateLimitWindow:   cfg.RateLimitWindow,
		},
		logger,
	)

	lis, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	srv := transport.New(handler, transport.Config{
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 20 * time.Second,
	}, logger)

	// Blocks until a signal arrives or the server dies unexpectedly.
	return srv.Run(ctx, lis)
}

// buildCompleter assembles every configured provider into one fallback chain,
// in the order DeepSeek, Anthropic, Gemini, Bedrock. It returns nil when no
// provider is configured.
func buildCompleter(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (ai.Completer, error) {
	var chain []ai.Completer

	if cfg.DeepSeekAPIKey != "" {
		chain = append(chain, ai.Instrument(ai.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.DeepSeekModel), m))
	}
	if cfg.AnthropicAPIKey != "" {
		chain = append(chain, ai.Instrument(ai.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), m))
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		chain = append(chain, ai.Instrument(gemini, m))
	}
	if cfg.BedrockEnabled {
		bedrock, err := ai.NewBedrockClient(ctx, cfg.AWSRegion, cfg.BedrockModelID)
		if err != nil {
			return nil, fmt.Errorf("bedrock client: %w", err)
		}
		chain = append(chain, ai.Instrument(bedrock, m))
	}

	llm := ai.Chain(logger, chain...)
	if llm == nil {
		logger.Info("ai: no provider configured, serving deterministic estimates only")
		return nil, nil
	}
	logger.Info("ai: provider chain ready", "chain", llm.Name())
	return llm, nil
}
