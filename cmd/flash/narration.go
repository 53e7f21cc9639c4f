package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/flash/internal/config"
	"github.com/at-ishikawa/flash/internal/narration"
	"github.com/at-ishikawa/flash/internal/speech/openai"
)

var errMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is not set")

// newNarrator checks the narration options and creates a narrator with the OpenAI speech client.
// The returned function releases the client.
func newNarrator(cfg *config.Config, options config.NarrationOptions, validator *config.Validator) (*narration.Narrator, func(), error) {
	if err := validator.Validate(options); err != nil {
		return nil, nil, err
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, nil, errMissingAPIKey
	}

	client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.MaxRetryAttempts)
	narrator, err := narration.NewNarrator(cfg.Narration.CacheDirectory, client, narration.NewPlayer(cfg.Narration.Player))
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("narration.NewNarrator > %w", err)
	}
	slog.Debug("narration is enabled",
		"model", client.GetModel(),
		"voice", options.Voice,
		"language", options.Language,
		"cacheDirectory", cfg.Narration.CacheDirectory,
	)
	return narrator, func() {
		_ = client.Close()
	}, nil
}
