package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Inference InferenceConfig
	Chat      ChatConfig
}

type ServerConfig struct {
	Host string `validate:"required"`
	Port int    `validate:"min=1,max=65535"`
}

type LogConfig struct {
	Level  string
	Format string `validate:"oneof=text json"`
}

type InferenceConfig struct {
	Enabled      bool
	BaseURL      string        `validate:"required,url"`
	Model        string        `validate:"required"`
	Timeout      time.Duration `validate:"gt=0"`
	MaxNewTokens int           `validate:"min=1"`
	Temperature  float64       `validate:"gte=0"`
	TopK         int           `validate:"gte=0"`
	TopP         float64       `validate:"gte=0,lte=1"`
	APIToken     string
}

type ChatConfig struct {
	BaseURL string        `validate:"omitempty,url"`
	Model   string        `validate:"required"`
	Timeout time.Duration `validate:"gt=0"`
	APIKey  string
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 4100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Inference: InferenceConfig{
			Enabled:      true,
			BaseURL:      "https://api-inference.huggingface.co/models",
			Model:        "google/flan-t5-small",
			Timeout:      30 * time.Second,
			MaxNewTokens: 300,
			Temperature:  0.8,
			TopK:         50,
			TopP:         0.95,
		},
		Chat: ChatConfig{
			Model:   "gpt-3.5-turbo",
			Timeout: 30 * time.Second,
		},
	}
}

// Store reads and writes configuration through an afero filesystem.
type Store struct {
	fs    afero.Fs
	paths Paths
}

// NewStore creates a Store rooted at the given paths on fs.
func NewStore(fs afero.Fs, paths Paths) *Store {
	return &Store{fs: fs, paths: paths}
}

// DefaultStore uses the OS filesystem and the XDG paths.
func DefaultStore() *Store {
	return NewStore(afero.NewOsFs(), DefaultPaths())
}

// Paths returns the files the store reads.
func (s *Store) Paths() Paths { return s.paths }

// Load reads configuration from the default store.
//
// The layers are, lowest first: built-in defaults, the JSON file at
// $XDG_CONFIG_HOME/qgen/config.json, QGEN_* environment variables, and for
// secrets still unset after the environment, $XDG_DATA_HOME/qgen/secrets.json.
func Load() (Config, error) {
	return DefaultStore().Load()
}

// Load reads and validates the layered configuration. No key is
// mandatory; missing credentials only disable the features that need them.
func (s *Store) Load() (Config, error) {
	return loadWith(s.backend(), s.secrets())
}

// secretReader abstracts the secret store for testing.
type secretReader interface {
	Get(service, account string) (string, error)
}

func loadWith(b ConfigBackend, sr secretReader) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)
	applySecrets(&cfg, sr)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applySecrets(cfg *Config, sr secretReader) {
	for _, s := range specs {
		if !s.secret || s.extract(*cfg).(string) != "" {
			continue
		}
		if v, err := sr.Get(secretService, s.account()); err == nil && v != "" {
			s.apply(cfg, v)
		}
	}
}
