// Package config loads application configuration from an optional YAML file
// overridden by LAUNCHLIST_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variables before mapping them onto
// config keys: LAUNCHLIST_SERVER_PORT -> server.port.
const envPrefix = "LAUNCHLIST_"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	SMS       SMSConfig       `koanf:"sms"`
	Countdown CountdownConfig `koanf:"countdown"`
}

// ServerConfig configures the HTTP listeners.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port"`
	MetricsPort       string        `koanf:"metricsport"`
	Environment       string        `koanf:"environment"`
	ReadTimeout       time.Duration `koanf:"readtimeout"`
	ReadHeaderTimeout time.Duration `koanf:"readheadertimeout"`
	WriteTimeout      time.Duration `koanf:"writetimeout"`
	IdleTimeout       time.Duration `koanf:"idletimeout"`
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"maxopenconns"`
	MaxIdleConns    int           `koanf:"maxidleconns"`
	ConnMaxLifetime time.Duration `koanf:"connmaxlifetime"`
	ConnectTimeout  time.Duration `koanf:"connecttimeout"`
	ConnectAttempts int           `koanf:"connectattempts"`
}

// CORSConfig configures cross-origin access.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowedorigins"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// RateLimitConfig configures the per-IP request limiter.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

// SMSConfig configures the Twilio messaging provider.
type SMSConfig struct {
	Enabled    bool   `koanf:"enabled"`
	AccountSID string `koanf:"accountsid"`
	AuthToken  string `koanf:"authtoken"`
	FromNumber string `koanf:"fromnumber"`
	// MessagingServiceSID is preferred over FromNumber when both are set.
	MessagingServiceSID string `koanf:"messagingservicesid"`
	DefaultRegion       string `koanf:"defaultregion"`
	ConfirmationBody    string `koanf:"confirmationbody"`
}

// CountdownConfig configures the landing page countdown target.
type CountdownConfig struct {
	// LaunchTime is the RFC 3339 instant the page counts down to.
	LaunchTime string `koanf:"launchtime"`
}

// Default returns the compiled-in configuration defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              "8080",
			MetricsPort:       "9090",
			Environment:       "development",
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
			ConnectTimeout:  30 * time.Second,
			ConnectAttempts: 5,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     5,
			Burst:   10,
		},
		SMS: SMSConfig{
			DefaultRegion: "US",
		},
		Countdown: CountdownConfig{
			LaunchTime: "2026-12-01T00:00:00Z",
		},
	}
}

// Load reads configuration from an optional YAML file at path (skipped when
// empty) and from the environment, layered over Default().
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("config: database url is required")
	}
	if c.SMS.Enabled && c.SMS.AccountSID == "" {
		return errors.New("config: sms account SID is required when sms is enabled")
	}
	if _, err := time.Parse(time.RFC3339, c.Countdown.LaunchTime); err != nil {
		return fmt.Errorf("config: invalid countdown launch time: %w", err)
	}
	return nil
}

func envToKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
}
