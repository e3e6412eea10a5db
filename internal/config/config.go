// Package config loads and validates all environment variables at startup.
// Every other package receives typed values; nothing reads os.Getenv directly.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port           string        // default "8080"
	Env            string        // "development" | "staging" | "production"
	LogLevel       string        // "debug" | "info" | "warn" | "error"
	RequestTimeout time.Duration // default 60s
	AllowedOrigins []string      // default ["*"]

	// ── Auth & rate limiting ──────────────────────────────────────────────────
	// When AuthTokens is empty any bearer token carrying AuthTokenPrefix is
	// accepted.
	AuthTokens        []string
	AuthTokenPrefix   string        // default "demo_"
	RateLimitRequests int           // default 100 per window
	RateLimitWindow   time.Duration // default 1h

	// ── Anthropic ─────────────────────────────────────────────────────────────
	AnthropicAPIKey string
	AnthropicModel  string // default "claude-opus-4-6"

	// ── DeepSeek ──────────────────────────────────────────────────────────────
	DeepSeekAPIKey string
	DeepSeekModel  string // default "deepseek-chat"

	// ── Gemini ────────────────────────────────────────────────────────────────
	GeminiAPIKey string
	GeminiModel  string // default "gemini-2.5-flash"

	// ── Bedrock ───────────────────────────────────────────────────────────────
	// Credentials come from the default AWS chain, not from here.
	BedrockEnabled bool
	AWSRegion      string // default "us-east-1"
	BedrockModelID string // default "anthropic.claude-3-sonnet-20240229-v1:0"

	// ── Estimation ────────────────────────────────────────────────────────────
	// None of the model keys is required. With no provider configured the
	// service answers from the deterministic tables only.
	LLMMaxTokens       int           // default 4000
	LLMTemperature     float64       // default 0.1
	EstimatorTimeout   time.Duration // default 30s
	CacheTTL           time.Duration // default 1h
	CacheSize          int           // default 256
	CompareConcurrency int           // default 3
}

// HasLLM reports whether at least one model provider is configured.
func (c *Config) HasLLM() bool {
	return c.AnthropicAPIKey != "" || c.DeepSeekAPIKey != "" || c.GeminiAPIKey != "" || c.BedrockEnabled
}

var defaults = map[string]any{
	"PORT":                "8080",
	"ENV":                 "development",
	"LOG_LEVEL":           "info",
	"REQUEST_TIMEOUT":     "60s",
	"ALLOWED_ORIGINS":     "*",
	"AUTH_TOKENS":         "",
	"AUTH_TOKEN_PREFIX":   "demo_",
	"RATE_LIMIT_REQUESTS": 100,
	"RATE_LIMIT_WINDOW":   "1h",
	"ANTHROPIC_MODEL":     "claude-opus-4-6",
	"DEEPSEEK_MODEL":      "deepseek-chat",
	"GEMINI_MODEL":        "gemini-2.5-flash",
	"BEDROCK_ENABLED":     false,
	"AWS_REGION":          "us-east-1",
	"BEDROCK_MODEL_ID":    "anthropic.claude-3-sonnet-20240229-v1:0",
	"LLM_MAX_TOKENS":      4000,
	"LLM_TEMPERATURE":     0.1,
	"ESTIMATOR_TIMEOUT":   "30s",
	"CACHE_TTL":           "1h",
	"CACHE_SIZE":          256,
	"COMPARE_CONCURRENCY": 3,
}

// Load reads all environment variables and returns a validated Config.
// It loads a .env file from the working directory when present, so plain
// `go run ./cmd/api` works in development without any wrapper. Real
// environment variables always take precedence over .env values.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an
// error.
func LoadFrom(dotenv string) (*Config, error) {
	// godotenv.Load never overwrites variables that are already set.
	_ = godotenv.Load(dotenv)

	v := viper.New()
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var errs []error
	dur := func(key string) time.Duration {
		d, err := durationSetting(v.GetString(key))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}

	c := &Config{
		Port:               v.GetString("PORT"),
		Env:                v.GetString("ENV"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		RequestTimeout:     dur("REQUEST_TIMEOUT"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		AuthTokens:         splitList(v.GetString("AUTH_TOKENS")),
		AuthTokenPrefix:    v.GetString("AUTH_TOKEN_PREFIX"),
		RateLimitRequests:  v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:    dur("RATE_LIMIT_WINDOW"),
		AnthropicAPIKey:    v.GetString("ANTHROPIC_API_KEY"),
		AnthropicModel:     v.GetString("ANTHROPIC_MODEL"),
		DeepSeekAPIKey:     v.GetString("DEEPSEEK_API_KEY"),
		DeepSeekModel:      v.GetString("DEEPSEEK_MODEL"),
		GeminiAPIKey:       v.GetString("GEMINI_API_KEY"),
		GeminiModel:        v.GetString("GEMINI_MODEL"),
		BedrockEnabled:     v.GetBool("BEDROCK_ENABLED"),
		AWSRegion:          v.GetString("AWS_REGION"),
		BedrockModelID:     v.GetString("BEDROCK_MODEL_ID"),
		LLMMaxTokens:       v.GetInt("LLM_MAX_TOKENS"),
		LLMTemperature:     v.GetFloat64("LLM_TEMPERATURE"),
		EstimatorTimeout:   dur("ESTIMATOR_TIMEOUT"),
		CacheTTL:           dur("CACHE_TTL"),
		CacheSize:          v.GetInt("CACHE_SIZE"),
		CompareConcurrency: v.GetInt("COMPARE_CONCURRENCY"),
	}

	errs = append(errs, c.validate())
	return c, errors.Join(errs...)
}

func (c *Config) validate() error {
	var errs []error

	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a TCP port number, got %q", c.Port))
	}

	switch c.Env {
	case "development", "staging", "production":
	default:
		errs = append(errs, fmt.Errorf("ENV must be development, staging or production, got %q", c.Env))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}

	positive := map[string]int{
		"RATE_LIMIT_REQUESTS": c.RateLimitRequests,
		"LLM_MAX_TOKENS":      c.LLMMaxTokens,
		"CACHE_SIZE":          c.CacheSize,
		"COMPARE_CONCURRENCY": c.CompareConcurrency,
	}
	for name, val := range positive {
		if val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, val))
		}
	}

	positiveDur := map[string]time.Duration{
		"REQUEST_TIMEOUT":   c.RequestTimeout,
		"RATE_LIMIT_WINDOW": c.RateLimitWindow,
		"ESTIMATOR_TIMEOUT": c.EstimatorTimeout,
		"CACHE_TTL":         c.CacheTTL,
	}
	for name, val := range positiveDur {
		if val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive duration, got %s", name, val))
		}
	}

	if c.LLMTemperature < 0 || c.LLMTemperature > 1 {
		errs = append(errs, fmt.Errorf("LLM_TEMPERATURE must be within [0, 1], got %g", c.LLMTemperature))
	}

	if len(c.AuthTokens) == 0 && c.AuthTokenPrefix == "" {
		errs = append(errs, errors.New("one of AUTH_TOKENS or AUTH_TOKEN_PREFIX must be set"))
	}

	if c.BedrockEnabled && c.BedrockModelID == "" {
		errs = append(errs, errors.New("BEDROCK_MODEL_ID is required when BEDROCK_ENABLED is true"))
	}

	return errors.Join(errs...)
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

// durationSetting accepts a plain integer (seconds) or Go duration syntax:
// "30s", "5m", "1h".
func durationSetting(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// splitList splits a comma-separated value and drops blank items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
