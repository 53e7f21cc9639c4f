package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSetupTestConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []ConfigOption
		want func(tmpDir string) testConfig
	}{
		{
			name: "default",
			want: func(tmpDir string) testConfig {
				return testConfig{
					Narration: narrationConfig{CacheDirectory: filepath.Join(tmpDir, "cache")},
				}
			},
		},
		{
			name: "with options",
			opts: []ConfigOption{
				WithPlayer("true"),
				WithVoice("nova", "japanese"),
				WithOpenAIBaseURL("http://127.0.0.1:8080/v1"),
			},
			want: func(tmpDir string) testConfig {
				return testConfig{
					Narration: narrationConfig{
						CacheDirectory: filepath.Join(tmpDir, "cache"),
						Voice:          "nova",
						Language:       "japanese",
						Player:         "true",
					},
					OpenAI: openAIConfig{
						BaseURL:          "http://127.0.0.1:8080/v1",
						MaxRetryAttempts: 1,
					},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			got := SetupTestConfig(t, tmpDir, tt.opts...)
			assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

			content, err := os.ReadFile(got)
			require.NoError(t, err)
			var cfg testConfig
			require.NoError(t, yaml.Unmarshal(content, &cfg))
			assert.Equal(t, tt.want(tmpDir), cfg)
			assert.Contains(t, string(content), "cache_directory:")
		})
	}
}

func TestWriteCSV(t *testing.T) {
	tmpDir := t.TempDir()
	rows := [][]string{
		{"Capital of France?", "Paris"},
		{"A, quoted question", "multi\nline"},
	}

	got := WriteCSV(t, tmpDir, "cards.csv", rows)
	assert.Equal(t, filepath.Join(tmpDir, "cards.csv"), got)

	file, err := os.Open(got)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, rows, records)
}
