// Package config loads runtime settings from the environment and from an
// optional YAML file with ${VAR} expansion.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// TranslatorConfig selects and tunes the outbound translation provider.
type TranslatorConfig struct {
	Provider       string `yaml:"provider"`        // "identity", "http", or "llm"
	URL            string `yaml:"url"`             // http provider endpoint
	APIKey         string `yaml:"api_key"`         // http provider key, optional
	TimeoutSeconds int    `yaml:"timeout_seconds"` // per-request timeout
	MaxAttempts    int    `yaml:"max_attempts"`    // retry budget
	BreakerTrips   int    `yaml:"breaker_trips"`   // failures before the circuit opens
	BreakerResetMS int    `yaml:"breaker_reset_ms"`
}

// ClassifierConfig tunes the intent/tone classification chain.
type ClassifierConfig struct {
	UseModel bool   `yaml:"use_model"` // put the LLM strategy ahead of the rules
	Provider string `yaml:"provider"`  // "openai" (compatible endpoint) or "googleai"
	Model    string `yaml:"model"`
}

// PipelineConfig holds reply-pipeline defaults.
type PipelineConfig struct {
	DefaultUserLang string `yaml:"default_user_lang"` // assumed when detection is inconclusive
	DefaultSendLang string `yaml:"default_send_lang"` // empty follows the user's language
	RandSeed        int64  `yaml:"rand_seed"`         // 0 means time-seeded
}

// Config is the full assistant configuration.
type Config struct {
	Translator TranslatorConfig `yaml:"translator"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
}

// EnvConfig holds environment variables controlling the servers.
type EnvConfig struct {
	APIPort  int
	WSPort   int
	LogLevel string

	GoogleAPIKey string

	TranslatorProvider string
	TranslatorURL      string
	TranslatorAPIKey   string

	ConfigPath string
}

// LoadEnv loads environment variables, reading a .env file when present.
func LoadEnv() (*EnvConfig, error) {
	_ = godotenv.Load()

	cfg := &EnvConfig{
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		GoogleAPIKey:       getEnv("GOOGLE_API_KEY", ""),
		TranslatorProvider: getEnv("TRANSLATOR_PROVIDER", ""),
		TranslatorURL:      getEnv("TRANSLATOR_URL", ""),
		TranslatorAPIKey:   getEnv("TRANSLATOR_API_KEY", ""),
		ConfigPath:         getEnv("ASSISTANT_CONFIG", ""),
	}

	cfg.APIPort = getEnvInt("API_PORT", 8080)
	cfg.WSPort = getEnvInt("WS_PORT", 8085)

	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Translator: TranslatorConfig{
			Provider:       "identity",
			TimeoutSeconds: 8,
			MaxAttempts:    3,
			BreakerTrips:   5,
			BreakerResetMS: 30000,
		},
		Classifier: ClassifierConfig{
			UseModel: false,
			Provider: "openai",
		},
		Pipeline: PipelineConfig{
			DefaultUserLang: "en",
		},
	}
}

// Load reads the YAML configuration, expanding ${VAR} references from the
// environment. An empty path returns the defaults. Env overrides for the
// translator are applied on top.
func Load(path string, env *EnvConfig) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if env != nil {
		if env.TranslatorProvider != "" {
			cfg.Translator.Provider = env.TranslatorProvider
		}
		if env.TranslatorURL != "" {
			cfg.Translator.URL = env.TranslatorURL
		}
		if env.TranslatorAPIKey != "" {
			cfg.Translator.APIKey = env.TranslatorAPIKey
		}
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the servers cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Translator.Provider) {
	case "identity", "llm":
	case "http":
		if c.Translator.URL == "" {
			return fmt.Errorf("translator provider %q requires a url", c.Translator.Provider)
		}
	default:
		return fmt.Errorf("unsupported translator provider: %s (supported: identity, http, llm)", c.Translator.Provider)
	}

	switch strings.ToLower(c.Classifier.Provider) {
	case "", "openai", "googleai":
	default:
		return fmt.Errorf("unsupported classifier provider: %s (supported: openai, googleai)", c.Classifier.Provider)
	}

	if c.Translator.MaxAttempts < 1 {
		c.Translator.MaxAttempts = 1
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func expandEnvVars(s string) string {
	// Replace ${VAR_NAME} with environment variable values
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}
