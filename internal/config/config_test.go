package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func(homeDir string) *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `narration:
  cache_directory: /tmp/flash-cache
  voice: nova
  language: japanese
  player: mpv --no-video
openai:
  model: tts-1
  base_url: http://localhost:8080/v1
  max_retry_attempts: 5
`,
			want: func(homeDir string) *Config {
				return &Config{
					Narration: NarrationConfig{
						CacheDirectory: "/tmp/flash-cache",
						Voice:          "nova",
						Language:       "japanese",
						Player:         "mpv --no-video",
					},
					OpenAI: OpenAIConfig{
						Model:            "tts-1",
						BaseURL:          "http://localhost:8080/v1",
						MaxRetryAttempts: 5,
					},
				}
			},
		},
		{
			name:          "no config file uses defaults",
			configContent: "",
			want: func(homeDir string) *Config {
				return &Config{
					Narration: NarrationConfig{
						CacheDirectory: filepath.Join(homeDir, ".flash"),
						Voice:          "onyx",
					},
					OpenAI: OpenAIConfig{
						Model:            "gpt-4o-mini-tts",
						BaseURL:          "https://api.openai.com/v1",
						MaxRetryAttempts: 3,
					},
				}
			},
		},
		{
			name: "home directory is expanded",
			configContent: `narration:
  cache_directory: ~/cache/flash
`,
			useExplicitPath: true,
			want: func(homeDir string) *Config {
				return &Config{
					Narration: NarrationConfig{
						CacheDirectory: filepath.Join(homeDir, "cache", "flash"),
						Voice:          "onyx",
					},
					OpenAI: OpenAIConfig{
						Model:            "gpt-4o-mini-tts",
						BaseURL:          "https://api.openai.com/v1",
						MaxRetryAttempts: 3,
					},
				}
			},
		},
		{
			name:          "environment variables",
			configContent: "",
			env: map[string]string{
				"OPENAI_API_KEY":   "sk-test",
				"OPENAI_TTS_MODEL": "tts-1-hd",
				"OPENAI_BASE_URL":  "http://127.0.0.1:9000/v1",
			},
			want: func(homeDir string) *Config {
				return &Config{
					Narration: NarrationConfig{
						CacheDirectory: filepath.Join(homeDir, ".flash"),
						Voice:          "onyx",
					},
					OpenAI: OpenAIConfig{
						APIKey:           "sk-test",
						Model:            "tts-1-hd",
						BaseURL:          "http://127.0.0.1:9000/v1",
						MaxRetryAttempts: 3,
					},
				}
			},
		},
		{
			name: "invalid YAML format",
			configContent: `narration:
  voice: onyx
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown voice and language are loaded as is",
			configContent: `narration:
  voice: robot
  language: klingon
`,
			useExplicitPath: true,
			want: func(homeDir string) *Config {
				return &Config{
					Narration: NarrationConfig{
						CacheDirectory: filepath.Join(homeDir, ".flash"),
						Voice:          "robot",
						Language:       "klingon",
					},
					OpenAI: OpenAIConfig{
						Model:            "gpt-4o-mini-tts",
						BaseURL:          "https://api.openai.com/v1",
						MaxRetryAttempts: 3,
					},
				}
			},
		},
		{
			name: "invalid base URL",
			configContent: `openai:
  base_url: not a url
`,
			useExplicitPath: true,
			wantErr:         true,
			wantErrorContains: []string{
				"base_url must be a valid URL",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			homeDir := filepath.Join(tempDir, "home")
			require.NoError(t, os.MkdirAll(homeDir, 0755))
			t.Setenv("HOME", homeDir)
			for _, key := range []string{"OPENAI_API_KEY", "OPENAI_TTS_MODEL", "OPENAI_BASE_URL"} {
				t.Setenv(key, tt.env[key])
			}

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "flash.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(homeDir), got)
		})
	}
}

func TestConfigLoader_Load_ConfigInHomeDirectory(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Chdir(t.TempDir())

	configDir := filepath.Join(homeDir, ".config", "flash")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte("narration:\n  voice: coral\n"), 0644))

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "coral", got.Narration.Voice)
}

func TestConfigLoader_Load_MissingExplicitFile(t *testing.T) {
	loader, err := NewConfigLoader(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	_, err = loader.Load()
	assert.Error(t, err)
}
