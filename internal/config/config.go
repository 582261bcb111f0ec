package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"agriwatch/internal/forecast"
	"agriwatch/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Source    SourceConfig    `mapstructure:"source"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Alerting  AlertingConfig  `mapstructure:"alerting"`
	Predictor PredictorConfig `mapstructure:"predictor"`
	Export    ExportConfig    `mapstructure:"export"`
	Token     TokenConfig     `mapstructure:"token"`
	Recorder  RecorderConfig  `mapstructure:"recorder"`
	Chat      ChatConfig      `mapstructure:"chat"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// SourceConfig covers the open-data transaction endpoint.
type SourceConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Retries        int           `mapstructure:"retries"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// DatabaseConfig locates the local SQLite file for alert rules.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SchedulerConfig governs the watch-loop cadence.
type SchedulerConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	AlignToStart bool          `mapstructure:"align_to_start"`
	StartupDelay time.Duration `mapstructure:"startup_delay"`
}

// AlertingConfig defines alert routing.
type AlertingConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

// WebhookConfig 描述 webhook 預警通道。
type WebhookConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	URL            string        `mapstructure:"url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// PredictorConfig selects the forecasting strategy.
type PredictorConfig struct {
	Strategy string `mapstructure:"strategy"`
	Horizon  int    `mapstructure:"horizon"`
}

// ExportConfig sets report output behaviour.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// TokenConfig locates the premium token file.
type TokenConfig struct {
	Path string `mapstructure:"path"`
}

// RecorderConfig locates the observation data directory.
type RecorderConfig struct {
	Dir string `mapstructure:"dir"`
}

// ChatConfig covers the local Ollama endpoint.
type ChatConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AGRIWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "agriwatch")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("source.base_url", "https://data.moa.gov.tw/Service/OpenData/FromM/FarmTransData.aspx")
	v.SetDefault("source.request_timeout", "30s")
	v.SetDefault("source.retries", 3)
	v.SetDefault("source.retry_delay", "2s")
	v.SetDefault("source.user_agent", "agriwatch/1.0")

	v.SetDefault("database.path", "data/agriwatch.db")

	v.SetDefault("scheduler.interval", "1h")
	v.SetDefault("scheduler.align_to_start", false)
	v.SetDefault("scheduler.startup_delay", "0s")

	v.SetDefault("alerting.enabled", true)
	v.SetDefault("alerting.webhook.enabled", false)
	v.SetDefault("alerting.webhook.request_timeout", "10s")

	v.SetDefault("predictor.strategy", forecast.StrategyBlended)
	v.SetDefault("predictor.horizon", forecast.DefaultHorizon)

	v.SetDefault("export.dir", "exports")

	v.SetDefault("token.path", "token.txt")

	v.SetDefault("recorder.dir", "data_records")

	v.SetDefault("chat.base_url", "http://127.0.0.1:11434")
	v.SetDefault("chat.model", "gemma3:1b")
	v.SetDefault("chat.request_timeout", "120s")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url 必須配置")
	}
	if c.Source.Retries < 1 {
		return fmt.Errorf("source.retries must be at least 1")
	}
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be greater than zero")
	}
	if c.Predictor.Horizon <= 0 {
		return fmt.Errorf("predictor.horizon must be greater than zero")
	}
	if _, err := forecast.New(c.Predictor.Strategy); err != nil {
		return err
	}
	if c.Alerting.Webhook.Enabled && c.Alerting.Webhook.URL == "" {
		return fmt.Errorf("alerting.webhook.url 必須配置")
	}
	return nil
}
