package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port     int    `yaml:"port"`
		BasePath string `yaml:"basePath"`
		// RateLimit is requests per second per client, Burst the bucket size.
		RateLimit float64 `yaml:"rateLimit"`
		Burst     int     `yaml:"burst"`
	} `yaml:"server"`

	Auth struct {
		AnonKey     string   `yaml:"anonKey"`
		ServiceKeys []string `yaml:"serviceKeys"`
	} `yaml:"auth"`

	AI struct {
		Provider  string `yaml:"provider"` // gemini | openai | anthropic
		APIKey    string `yaml:"apiKey"`
		Model     string `yaml:"model"`
		BaseURL   string `yaml:"baseURL"`
		TimeoutMS int    `yaml:"timeoutMs"`
	} `yaml:"ai"`

	Google struct {
		APIKey string `yaml:"apiKey"`
		// Base URLs are overridable for tests and proxies.
		TranslateURL string `yaml:"translateURL"`
		SpeechURL    string `yaml:"speechURL"`
		VisionURL    string `yaml:"visionURL"`
	} `yaml:"google"`

	KV struct {
		Driver string `yaml:"driver"` // memory | postgres | mysql | redis | sqlite
		DSN    string `yaml:"dsn"`
	} `yaml:"kv"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Batch struct {
		Concurrency int `yaml:"concurrency"`
	} `yaml:"batch"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json | console
	} `yaml:"log"`
}

// Load baca file config.yaml, lalu override dari env. A missing file is not
// an error; every field has a default.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, eris.Wrapf(err, "config: parse %s", path)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, eris.Wrapf(err, "config: read %s", path)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.AI.Provider, "AI_PROVIDER")
	setString(&c.AI.Model, "AI_MODEL")
	setString(&c.Google.APIKey, "GOOGLE_CLOUD_API_KEY")
	setString(&c.KV.Driver, "KV_DRIVER")
	setString(&c.KV.DSN, "KV_DSN")
	setString(&c.Auth.AnonKey, "ANON_KEY")
	setString(&c.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	// provider-specific key wins over the shared google key
	switch strings.ToLower(c.AI.Provider) {
	case "openai":
		setString(&c.AI.APIKey, "OPENAI_API_KEY")
	case "anthropic":
		setString(&c.AI.APIKey, "ANTHROPIC_API_KEY")
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/make-server-76a6fe9f"
	}
	if c.Server.RateLimit <= 0 {
		c.Server.RateLimit = 5
	}
	if c.Server.Burst <= 0 {
		c.Server.Burst = 20
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "gemini"
	}
	c.AI.Provider = strings.ToLower(c.AI.Provider)
	if c.AI.Provider == "gemini" && c.AI.APIKey == "" {
		c.AI.APIKey = c.Google.APIKey
	}
	if c.AI.TimeoutMS <= 0 {
		c.AI.TimeoutMS = 30000
	}
	if c.KV.Driver == "" {
		c.KV.Driver = "memory"
	}
	if c.Batch.Concurrency <= 0 {
		c.Batch.Concurrency = 4
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// AITimeout is the bound applied to every outbound model call.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutMS) * time.Millisecond
}

// MinioEnabled is false when no endpoint is configured; video scripts are
// then not uploaded.
func (c *Config) MinioEnabled() bool {
	return c.Minio.Endpoint != "" && c.Minio.BucketName != ""
}

// NewLogger builds the zap logger described by the log section.
func (c *Config) NewLogger() (*zap.Logger, error) {
	var zapCfg zap.Config
	if c.Log.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	return logger, nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
