package flashcard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		promptColumn int
		answerColumn int
		want         []Card
		wantErr      error
	}{
		{
			name:         "basic two column cards",
			path:         filepath.Join("testdata", "basic_cards.csv"),
			promptColumn: 0,
			answerColumn: 1,
			want: []Card{
				{Prompt: "What is the capital of France?", Answer: "Paris"},
				{Prompt: "What is 2+2?", Answer: "4"},
				{Prompt: "Who wrote Romeo and Juliet?", Answer: "Shakespeare"},
				{Prompt: "What color is the sky?", Answer: "Blue"},
			},
		},
		{
			name:         "custom columns",
			path:         filepath.Join("testdata", "multi_column.csv"),
			promptColumn: 1,
			answerColumn: 2,
			want: []Card{
				{Prompt: "one", Answer: "一"},
				{Prompt: "two", Answer: "二"},
				{Prompt: "three", Answer: "三"},
				{Prompt: "four", Answer: "四"},
			},
		},
		{
			name:         "reversed columns",
			path:         filepath.Join("testdata", "multi_column.csv"),
			promptColumn: 3,
			answerColumn: 2,
			want: []Card{
				{Prompt: "いち", Answer: "一"},
				{Prompt: "に", Answer: "二"},
				{Prompt: "さん", Answer: "三"},
				{Prompt: "よん", Answer: "四"},
			},
		},
		{
			name:         "unicode cards",
			path:         filepath.Join("testdata", "unicode_cards.csv"),
			promptColumn: 0,
			answerColumn: 1,
			want: []Card{
				{Prompt: "Здравствуй", Answer: "Hello (Russian)"},
				{Prompt: "こんにちは", Answer: "Hello (Japanese)"},
				{Prompt: "你好", Answer: "Hello (Chinese)"},
				{Prompt: "안녕하세요", Answer: "Hello (Korean)"},
				{Prompt: "🌟", Answer: "Star emoji"},
			},
		},
		{
			name:         "short rows are skipped and empty fields are kept",
			path:         filepath.Join("testdata", "malformed.csv"),
			promptColumn: 0,
			answerColumn: 1,
			want: []Card{
				{Prompt: "Good row", Answer: "Good answer"},
				{Prompt: "", Answer: "Empty question"},
				{Prompt: "Good question", Answer: ""},
				{Prompt: "Another good row", Answer: "Another good answer"},
			},
		},
		{
			name:         "file not found",
			path:         filepath.Join("testdata", "nonexistent.csv"),
			promptColumn: 0,
			answerColumn: 1,
			wantErr:      ErrNotFound,
		},
		{
			name:         "column out of range for every row",
			path:         filepath.Join("testdata", "basic_cards.csv"),
			promptColumn: 0,
			answerColumn: 5,
			wantErr:      ErrEmptyResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.path, tt.promptColumn, tt.answerColumn)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	_, err := Load(path, 0, 1)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir(), 0, 1)
	assert.ErrorIs(t, err, ErrRead)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		promptColumn int
		answerColumn int
		want         []Card
		wantErr      error
	}{
		{
			name:         "quoted fields with commas",
			input:        "\"What is 2+2, really?\",\"4, obviously\"\n\"Simple question\",\"Simple answer\"\n",
			promptColumn: 0,
			answerColumn: 1,
			want: []Card{
				{Prompt: "What is 2+2, really?", Answer: "4, obviously"},
				{Prompt: "Simple question", Answer: "Simple answer"},
			},
		},
		{
			name:         "quoted field with an embedded newline",
			input:        "\"line one\nline two\",answer\n",
			promptColumn: 0,
			answerColumn: 1,
			want: []Card{
				{Prompt: "line one\nline two", Answer: "answer"},
			},
		},
		{
			name:         "fields are not trimmed",
			input:        "  spaced prompt , spaced answer \n",
			promptColumn: 0,
			answerColumn: 1,
			want: []Card{
				{Prompt: "  spaced prompt ", Answer: " spaced answer "},
			},
		},
		{
			name:         "duplicates are kept",
			input:        "a,b\na,b\n",
			promptColumn: 0,
			answerColumn: 1,
			want: []Card{
				{Prompt: "a", Answer: "b"},
				{Prompt: "a", Answer: "b"},
			},
		},
		{
			name:         "row needs more fields than the larger column",
			input:        "a,b,c\nd,e\nf,g,h,i\n",
			promptColumn: 2,
			answerColumn: 0,
			want: []Card{
				{Prompt: "c", Answer: "a"},
				{Prompt: "h", Answer: "f"},
			},
		},
		{
			name:         "bare quote inside an unquoted field",
			input:        "say \"hi\",hello\n",
			promptColumn: 0,
			answerColumn: 1,
			want: []Card{
				{Prompt: "say \"hi\"", Answer: "hello"},
			},
		},
		{
			name:         "only one column",
			input:        "only_one_column\n",
			promptColumn: 0,
			answerColumn: 1,
			wantErr:      ErrEmptyResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input), tt.promptColumn, tt.answerColumn)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ReadError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(errors.New("disk failure")), 0, 1)
	assert.ErrorIs(t, err, ErrRead)
	assert.Contains(t, err.Error(), "disk failure")
}
