// Package config loads service settings from an optional TOML file, a .env
// file and SMARTBUDGET_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/govalues/money"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tinoosan/smartbudget/internal/slug"
)

// EnvPrefix prefixes every environment override: http.addr -> SMARTBUDGET_HTTP_ADDR.
const EnvPrefix = "SMARTBUDGET"

type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	Log        LogConfig        `mapstructure:"log"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Auth       AuthConfig       `mapstructure:"auth"`
	AMQP       AMQPConfig       `mapstructure:"amqp"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	// Currency is the ISO 4217 code used to format amounts.
	Currency        string         `mapstructure:"currency"`
	DefaultCategory string         `mapstructure:"default_category"`
	Categories      []CategoryRule `mapstructure:"categories"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StorageConfig struct {
	// Backend is memory, sqlite or postgres.
	Backend     string `mapstructure:"backend"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	DatabaseURL string `mapstructure:"database_url"`
}

type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// AMQPConfig enables event publishing when URL is set.
type AMQPConfig struct {
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
}

type ClassifierConfig struct {
	// Provider is none or gemini.
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CategoryRule is one [[categories]] entry; order is match order.
type CategoryRule struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.sqlite_path", "./data/smartbudget.db")
	v.SetDefault("storage.database_url", "")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "smartbudget")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "smartbudget")
	v.SetDefault("amqp.routing_key", "transaction.recorded")
	v.SetDefault("classifier.provider", "none")
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.model", "")
	v.SetDefault("classifier.timeout", 3*time.Second)
	v.SetDefault("currency", "BRL")
	v.SetDefault("default_category", "Other")
}

// Load reads configuration. path may be empty; a missing .env is ignored.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Classifier.Provider = strings.ToLower(strings.TrimSpace(cfg.Classifier.Provider))
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	return &cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case "memory":
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			problems = append(problems, "storage.sqlite_path cannot be empty when using the sqlite backend")
		}
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			problems = append(problems, "storage.database_url is required when using the postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage.backend %q: must be one of [memory sqlite postgres]", c.Storage.Backend))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log.level %q", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		problems = append(problems, fmt.Sprintf("invalid log.format %q: must be json or text", c.Log.Format))
	}

	if _, err := money.ParseCurr(c.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid currency %q: %v", c.Currency, err))
	}

	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.token_ttl must be positive")
	}

	if c.AMQP.URL != "" {
		if u, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid amqp.url: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid amqp.url scheme %q: must be amqp or amqps", u.Scheme))
		}
		if c.AMQP.Exchange == "" {
			problems = append(problems, "amqp.exchange cannot be empty when amqp.url is set")
		}
	}

	switch c.Classifier.Provider {
	case "", "none":
	case "gemini":
		if c.Classifier.APIKey == "" {
			problems = append(problems, "classifier.api_key is required for the gemini provider")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid classifier.provider %q: must be none or gemini", c.Classifier.Provider))
	}

	for i, r := range c.Categories {
		if strings.TrimSpace(r.Name) == "" {
			problems = append(problems, fmt.Sprintf("categories[%d]: name is required", i))
		} else if !slug.IsSlug(slug.Slugify(r.Name)) {
			problems = append(problems, fmt.Sprintf("categories[%d]: name %q has no usable code", i, r.Name))
		}
		if len(r.Keywords) == 0 {
			problems = append(problems, fmt.Sprintf("categories[%d]: at least one keyword is required", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
