package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/at-ishikawa/flash/internal/narration"
	"github.com/at-ishikawa/flash/internal/speech"
	"github.com/at-ishikawa/flash/internal/speech/openai"
	"github.com/spf13/viper"
)

type Config struct {
	Narration NarrationConfig `mapstructure:"narration"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
}

type NarrationConfig struct {
	CacheDirectory string `mapstructure:"cache_directory" validate:"required"`
	// Voice and Language are the narration defaults, checked only when narration is enabled
	Voice    string `mapstructure:"voice"`
	Language string `mapstructure:"language"`
	// Player overrides the platform audio player, e.g. "mpv --no-video"
	Player string `mapstructure:"player"`
}

type OpenAIConfig struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model" validate:"required"`
	BaseURL          string `mapstructure:"base_url" validate:"required,url"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
}

type ConfigLoader struct {
	viper     *viper.Viper
	validator *Validator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/flash")
	}

	return &ConfigLoader{
		viper:     v,
		validator: validate,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("os.UserHomeDir > %w", err)
	}
	v.SetDefault("narration.cache_directory", filepath.Join(homeDir, ".flash"))
	v.SetDefault("narration.voice", narration.DefaultVoice)
	v.SetDefault("narration.language", "")
	v.SetDefault("narration.player", "")
	v.SetDefault("openai.model", openai.DefaultModel)
	v.SetDefault("openai.base_url", openai.DefaultBaseURL)
	v.SetDefault("openai.max_retry_attempts", speech.DefaultMaxRetryAttempts)

	// Environment variables take precedence over the config file
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_TTS_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_TTS_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("openai.base_url", "OPENAI_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_BASE_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.Narration.CacheDirectory = expandHome(cfg.Narration.CacheDirectory, homeDir)

	if err := loader.validator.Validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
