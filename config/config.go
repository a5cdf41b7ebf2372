package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	obs "github.com/Black-And-White-Club/alliance-bot/pkg/observability"
)

// ServiceName names the process in logs, traces and metrics.
const ServiceName = "alliance-bot"

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// NATSConfig holds NATS configuration. An empty URL keeps domain events in process.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// HTTPConfig holds the API listener configuration.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment     string  `yaml:"environment"`
	LogLevel        string  `yaml:"log_level"`
	MetricsAddress  string  `yaml:"metrics_address"`
	OTLPEndpoint    string  `yaml:"otlp_endpoint"`
	TempoSampleRate float64 `yaml:"tempo_sample_rate"`
}

// LoadConfig loads the configuration from a YAML file, then applies environment
// overrides. A missing file falls back to the environment alone.
func LoadConfig(filename string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, cfg.Validate()
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, cfg.Validate()
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("DATABASE_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_MAX_OPEN_CONNS value: %w", err)
		}
		cfg.Postgres.MaxOpenConns = n
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_DEFAULT_TTL value: %w", err)
		}
		cfg.JWT.DefaultTTL = d
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS value: %w", err)
		}
		cfg.HTTP.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST value: %w", err)
		}
		cfg.HTTP.RateLimitBurst = n
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("TEMPO_SAMPLE_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TEMPO_SAMPLE_RATE value: %w", err)
		}
		cfg.Observability.TempoSampleRate = f
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Postgres.MaxOpenConns == 0 {
		c.Postgres.MaxOpenConns = 20
	}
	if c.JWT.DefaultTTL == 0 {
		c.JWT.DefaultTTL = 24 * time.Hour
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = ServiceName
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateLimitRPS == 0 {
		c.HTTP.RateLimitRPS = 10
	}
	if c.HTTP.RateLimitBurst == 0 {
		c.HTTP.RateLimitBurst = 20
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Observability.TempoSampleRate == 0 {
		c.Observability.TempoSampleRate = 0.1
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres dsn is required"))
	}
	if len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("jwt secret must be at least 32 characters"))
	}
	if c.Observability.TempoSampleRate < 0 || c.Observability.TempoSampleRate > 1 {
		errs = append(errs, errors.New("tempo sample rate must be within [0, 1]"))
	}
	return errors.Join(errs...)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func ToObsConfig(appCfg *Config) obs.Config {
	return obs.Config{
		ServiceName:  ServiceName,
		Environment:  appCfg.Observability.Environment,
		Version:      "0.1.0",
		LogLevel:     appCfg.Observability.LogLevel,
		OTLPEndpoint: appCfg.Observability.OTLPEndpoint,
		SampleRate:   appCfg.Observability.TempoSampleRate,
	}
}
