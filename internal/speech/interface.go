package speech

import (
	"context"
	"errors"
	"io"
)

//go:generate mockgen -source=interface.go -destination=../mocks/speech/mock_client.go -package=mock_speech

// Client synthesizes speech audio from text
type Client interface {
	// Synthesize returns the encoded audio stream. Callers must close it.
	Synthesize(ctx context.Context, params SynthesizeRequest) (io.ReadCloser, error)
}

// SynthesizeRequest holds the parameters of a single synthesis call
type SynthesizeRequest struct {
	Text  string
	Voice string
	// Instructions tell the model how to read the text, e.g. in which language.
	// Empty means plain synthesis.
	Instructions string
}

var (
	ErrAuthentication = errors.New("speech API authentication failed. Please check your API key")
	ErrSynthesis      = errors.New("failed to generate audio")
)

const (
	DefaultMaxRetryAttempts = 3
)
