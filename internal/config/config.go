// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, upstream API credentials, cache TTLs, retry policy, rate limiting,
// and observability settings.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "boxing-analyst")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// BoxingConfig holds credentials and endpoints for the fighter-data REST API.
type BoxingConfig struct {
	BaseURL string        // BOXING_API_BASE_URL
	APIKey  string        // BOXING_API_KEY (sent as X-RapidAPI-Key)
	APIHost string        // BOXING_API_HOST (sent as X-RapidAPI-Host)
	Timeout time.Duration // per-attempt deadline
}

// GroqConfig holds credentials and model selection for the LLM completion API.
// FastModel serves search and profile synthesis; Model serves deep analysis
// and Q&A.
type GroqConfig struct {
	BaseURL        string        // GROQ_API_BASE_URL
	APIKey         string        // GROQ_API_KEY
	Model          string        // GROQ_MODEL
	FastModel      string        // GROQ_FAST_MODEL
	SearchTimeout  time.Duration // per-attempt deadline for search
	ProfileTimeout time.Duration // per-attempt deadline for profile synthesis
	AnswerTimeout  time.Duration // per-attempt deadline for analysis/Q&A
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 45s (AI calls are slow)
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging
	LogLevel    string // debug|info|warn|error|fatal|panic
	LogPretty   bool   // pretty console logs in dev
	APIBasePath string // base path for API routes

	// Upstreams
	Boxing BoxingConfig
	Groq   GroqConfig

	// Caches
	ProfileTTL time.Duration // fighter profile cache validity window
	AnswerTTL  time.Duration // Q&A answer cache validity window

	// Retry
	MaxRetries   int           // attempts beyond the first
	RetryBackoff time.Duration // base delay, doubled per attempt

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 45*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:   getbool("LOG_PRETTY", false),
		APIBasePath: normalizeBasePath(getenv("API_BASE_PATH", "/api")),

		// Upstreams
		Boxing: BoxingConfig{
			BaseURL: getenv("BOXING_API_BASE_URL", "https://boxing-data-api.p.rapidapi.com/v1"),
			APIKey:  getenv("BOXING_API_KEY", ""),
			APIHost: getenv("BOXING_API_HOST", "boxing-data-api.p.rapidapi.com"),
			Timeout: getdur("BOXING_API_TIMEOUT", 10*time.Second),
		},
		Groq: GroqConfig{
			BaseURL:        getenv("GROQ_API_BASE_URL", "https://api.groq.com/openai/v1"),
			APIKey:         getenv("GROQ_API_KEY", ""),
			Model:          getenv("GROQ_MODEL", "groq/compound"),
			FastModel:      getenv("GROQ_FAST_MODEL", "groq/compound-mini"),
			SearchTimeout:  getdur("GROQ_SEARCH_TIMEOUT", 10*time.Second),
			ProfileTimeout: getdur("GROQ_PROFILE_TIMEOUT", 15*time.Second),
			AnswerTimeout:  getdur("GROQ_ANSWER_TIMEOUT", 20*time.Second),
		},

		// Caches
		ProfileTTL: getdur("PROFILE_CACHE_TTL", 5*time.Minute),
		AnswerTTL:  getdur("ANSWER_CACHE_TTL", 3*time.Minute),

		// Retry
		MaxRetries:   getint("MAX_RETRIES", 2),
		RetryBackoff: getdur("RETRY_BACKOFF", 500*time.Millisecond),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "boxing-analyst"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.Boxing.BaseURL) == "" {
		return cfg, errors.New("BOXING_API_BASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.Groq.BaseURL) == "" {
		return cfg, errors.New("GROQ_API_BASE_URL must not be empty")
	}
	if cfg.ProfileTTL <= 0 || cfg.AnswerTTL <= 0 {
		return cfg, errors.New("cache TTLs must be positive durations")
	}
	if cfg.MaxRetries < 0 {
		return cfg, errors.New("MAX_RETRIES must be >= 0")
	}
	if cfg.RetryBackoff <= 0 {
		return cfg, errors.New("RETRY_BACKOFF must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
