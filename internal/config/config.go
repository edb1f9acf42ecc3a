package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Completion CompletionConfig `yaml:"completion"`
	Paths      PathsConfig      `yaml:"paths"`
	Store      StoreConfig      `yaml:"store"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watch      WatchConfig      `yaml:"watch"`
}

type CompletionConfig struct {
	Provider    string        `yaml:"provider" validate:"oneof=groq openai gemini"`
	BaseURL     string        `yaml:"base_url" validate:"omitempty,url"`
	Model       string        `yaml:"model" validate:"required"`
	Temperature float32       `yaml:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`

	// APIKey is only ever read from the environment.
	APIKey string `yaml:"-"`
}

type PathsConfig struct {
	Transcript string `yaml:"transcript" validate:"required"`
	Store      string `yaml:"store" validate:"required"`
	Reports    string `yaml:"reports"`
}

type StoreConfig struct {
	Sheet string `yaml:"sheet" validate:"required,max=31"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

type WatchConfig struct {
	Inbox    string `yaml:"inbox"`
	Archived string `yaml:"archived"`
}

type envOverrides struct {
	GroqAPIKey   string `envconfig:"GROQ_API_KEY"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	Provider     string `envconfig:"MEETLOG_PROVIDER"`
	BaseURL      string `envconfig:"MEETLOG_BASE_URL"`
	Model        string `envconfig:"MEETLOG_MODEL"`
	Transcript   string `envconfig:"MEETLOG_TRANSCRIPT"`
	Store        string `envconfig:"MEETLOG_STORE"`
	LogLevel     string `envconfig:"MEETLOG_LOG_LEVEL"`
}

var validate = validator.New()

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Completion: CompletionConfig{
			Provider:    ProviderGroq,
			Temperature: 0.2,
			Timeout:     60 * time.Second,
		},
		Paths: PathsConfig{
			Transcript: "Text_Summarizer.docx",
			Store:      "Meeting_summary_template.xlsx",
		},
		Store: StoreConfig{
			Sheet: "Sheet1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies .env and
// environment overrides, then validates. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	overrides := []struct {
		value  string
		target *string
	}{
		{env.Provider, &c.Completion.Provider},
		{env.BaseURL, &c.Completion.BaseURL},
		{env.Model, &c.Completion.Model},
		{env.Transcript, &c.Paths.Transcript},
		{env.Store, &c.Paths.Store},
		{env.LogLevel, &c.Logging.Level},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}

	switch strings.ToLower(c.Completion.Provider) {
	case ProviderGemini:
		c.Completion.APIKey = env.GeminiAPIKey
	case ProviderOpenAI:
		c.Completion.APIKey = env.OpenAIAPIKey
	default:
		c.Completion.APIKey = env.GroqAPIKey
	}

	return nil
}

// Validate fills provider-dependent defaults and checks the result.
func (c *Config) Validate() error {
	c.Completion.Provider = strings.ToLower(c.Completion.Provider)
	if c.Completion.Provider == "" {
		c.Completion.Provider = ProviderGroq
	}

	switch c.Completion.Provider {
	case ProviderGroq:
		if c.Completion.BaseURL == "" {
			c.Completion.BaseURL = "https://api.groq.com/openai/v1"
		}
		if c.Completion.Model == "" {
			c.Completion.Model = "llama-3.1-8b-instant"
		}
	case ProviderOpenAI:
		if c.Completion.BaseURL == "" {
			c.Completion.BaseURL = "https://api.openai.com/v1"
		}
		if c.Completion.Model == "" {
			c.Completion.Model = "gpt-4o-mini"
		}
	case ProviderGemini:
		if c.Completion.Model == "" {
			c.Completion.Model = "gemini-2.5-flash"
		}
	}

	if c.Completion.Timeout == 0 {
		c.Completion.Timeout = 60 * time.Second
	}
	if c.Store.Sheet == "" {
		c.Store.Sheet = "Sheet1"
	}
	if c.Watch.Inbox == "" {
		c.Watch.Inbox = "data/inbox"
	}
	if c.Watch.Archived == "" {
		c.Watch.Archived = "data/archived"
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
