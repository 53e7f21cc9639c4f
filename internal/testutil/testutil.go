// Package testutil provides shared test helpers for creating config files and flashcard fixtures.
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type narrationConfig struct {
	CacheDirectory string `yaml:"cache_directory"`
	Voice          string `yaml:"voice,omitempty"`
	Language       string `yaml:"language,omitempty"`
	Player         string `yaml:"player,omitempty"`
}

type openAIConfig struct {
	BaseURL          string `yaml:"base_url,omitempty"`
	MaxRetryAttempts uint   `yaml:"max_retry_attempts,omitempty"`
}

type testConfig struct {
	Narration narrationConfig `yaml:"narration"`
	OpenAI    openAIConfig    `yaml:"openai,omitempty"`
}

// ConfigOption configures optional fields when creating a config file fixture.
type ConfigOption func(*testConfig)

// WithPlayer sets the command used to play narrations.
func WithPlayer(command string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.Narration.Player = command
	}
}

// WithVoice sets the default narration voice and language.
func WithVoice(voice, language string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.Narration.Voice = voice
		cfg.Narration.Language = language
	}
}

// WithOpenAIBaseURL points the speech client to a test server, allowing a single retry.
func WithOpenAIBaseURL(baseURL string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.OpenAI.BaseURL = baseURL
		cfg.OpenAI.MaxRetryAttempts = 1
	}
}

// SetupTestConfig creates a config file whose narration cache is under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		Narration: narrationConfig{
			CacheDirectory: CacheDirectory(tmpDir),
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	content, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CacheDirectory returns the narration cache directory of a config created by SetupTestConfig.
func CacheDirectory(tmpDir string) string {
	return filepath.Join(tmpDir, "cache")
}

// WriteCSV writes rows into a CSV file under dir and returns its path.
func WriteCSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, file.Close())
	}()

	writer := csv.NewWriter(file)
	require.NoError(t, writer.WriteAll(rows))
	return path
}
