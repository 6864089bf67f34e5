// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/contact-crawler/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Crawl  CrawlConfig  `yaml:"crawl" mapstructure:"crawl"`
	Enrich EnrichConfig `yaml:"enrich" mapstructure:"enrich"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// CrawlConfig configures per-domain crawl behavior.
type CrawlConfig struct {
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSec    float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	UseRenderFallback bool    `yaml:"use_render_fallback" mapstructure:"use_render_fallback"`
	IncludeCompany    bool    `yaml:"include_company" mapstructure:"include_company"`
	IncludeContacts   bool    `yaml:"include_contacts" mapstructure:"include_contacts"`
	IncludeSocials    bool    `yaml:"include_socials" mapstructure:"include_socials"`
	IncludeTeam       bool    `yaml:"include_team" mapstructure:"include_team"`
}

// Options converts the crawl section into per-run options.
func (c CrawlConfig) Options() model.CrawlOptions {
	return model.CrawlOptions{
		TimeoutSecs:       c.TimeoutSecs,
		UseRenderFallback: c.UseRenderFallback,
		IncludeCompany:    c.IncludeCompany,
		IncludeContacts:   c.IncludeContacts,
		IncludeSocials:    c.IncludeSocials,
		IncludeTeam:       c.IncludeTeam,
	}
}

// EnrichConfig configures optional LLM enrichment.
type EnrichConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Key     string `yaml:"key" mapstructure:"key"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// StoreConfig configures the output backend. Format is "jsonl" or "sqlite";
// Path is the output file or database path ("-" means stdout for jsonl).
type StoreConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentDomains int `yaml:"max_concurrent_domains" mapstructure:"max_concurrent_domains"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CRAWLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("crawl.timeout_secs", 30)
	v.SetDefault("crawl.requests_per_sec", 4.0)
	v.SetDefault("crawl.use_render_fallback", true)
	v.SetDefault("crawl.include_company", true)
	v.SetDefault("crawl.include_contacts", true)
	v.SetDefault("crawl.include_socials", true)
	v.SetDefault("crawl.include_team", true)
	v.SetDefault("enrich.enabled", false)
	v.SetDefault("enrich.model", "claude-haiku-4-5-20251001")
	v.SetDefault("store.format", "jsonl")
	v.SetDefault("store.path", "-")
	v.SetDefault("batch.max_concurrent_domains", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
