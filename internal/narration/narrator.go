// Package narration reads text aloud, caching synthesized audio on disk by
// content fingerprint.
package narration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/at-ishikawa/flash/internal/speech"
)

var (
	ErrInvalidVoice = errors.New("invalid voice")
	ErrNotFound     = errors.New("audio file not found")
)

// Narrator synthesizes text through a speech client and plays it in the background
type Narrator struct {
	cache        *FileCache
	speechClient speech.Client
	player       Player

	mu        sync.Mutex
	playbacks []*playback
}

type playback struct {
	done chan struct{}
}

func (p *playback) finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// NewNarrator creates the cache directory, including its parents, if it doesn't exist
func NewNarrator(cacheDirectory string, speechClient speech.Client, player Player) (*Narrator, error) {
	if err := os.MkdirAll(cacheDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", cacheDirectory, err)
	}
	return &Narrator{
		cache:        NewFileCache(cacheDirectory),
		speechClient: speechClient,
		player:       player,
	}, nil
}

// Resolve returns the path of a cached audio for the text, synthesizing it on a cache miss.
// An empty voice means DefaultVoice.
func (n *Narrator) Resolve(ctx context.Context, text, voice, language string) (string, error) {
	if voice == "" {
		voice = DefaultVoice
	}
	if !IsValidVoice(voice) {
		return "", fmt.Errorf("%w %q. Choose from: %s", ErrInvalidVoice, voice, strings.Join(Voices, ", "))
	}

	instruction := Instruction(language)
	fingerprint := Fingerprint(text, voice, instruction)
	path, err := n.cache.cache(fingerprint, func() (io.ReadCloser, error) {
		body, err := n.speechClient.Synthesize(ctx, speech.SynthesizeRequest{
			Text:         text,
			Voice:        voice,
			Instructions: instruction,
		})
		if err != nil {
			if errors.Is(err, speech.ErrAuthentication) || errors.Is(err, speech.ErrSynthesis) {
				return nil, fmt.Errorf("speechClient.Synthesize > %w", err)
			}
			return nil, fmt.Errorf("speechClient.Synthesize > %w: %w", speech.ErrSynthesis, err)
		}
		return synthesizedAudio{ReadCloser: body}, nil
	})
	if err != nil {
		return "", fmt.Errorf("cache(%s) > %w", fingerprint, err)
	}
	return path, nil
}

// Play starts playing an audio file in the background and returns immediately.
// Playback failures are only logged.
func (n *Narrator) Play(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("os.Stat(%s) > %w", path, err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.prunePlaybacks()

	p := &playback{done: make(chan struct{})}
	n.playbacks = append(n.playbacks, p)
	go func() {
		defer close(p.done)
		if err := n.player.Play(path); err != nil {
			slog.Default().Debug("failed to play audio",
				"path", path,
				"error", err)
		}
	}()
	return nil
}

// Speak resolves the audio for the text and starts playing it
func (n *Narrator) Speak(ctx context.Context, text, voice, language string) error {
	path, err := n.Resolve(ctx, text, voice, language)
	if err != nil {
		return fmt.Errorf("error speaking text: %w", err)
	}
	if err := n.Play(path); err != nil {
		return fmt.Errorf("error speaking text: %w", err)
	}
	return nil
}

// ActivePlaybacks returns the number of playbacks still running
func (n *Narrator) ActivePlaybacks() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prunePlaybacks()
	return len(n.playbacks)
}

func (n *Narrator) prunePlaybacks() {
	active := n.playbacks[:0]
	for _, p := range n.playbacks {
		if !p.finished() {
			active = append(active, p)
		}
	}
	n.playbacks = active
}

// synthesizedAudio reports a stream broken while reading as a synthesis error.
// io.EOF is returned as is since io.Copy compares it directly.
type synthesizedAudio struct {
	io.ReadCloser
}

func (audio synthesizedAudio) Read(p []byte) (int, error) {
	n, err := audio.ReadCloser.Read(p)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %w", speech.ErrSynthesis, err)
	}
	return n, err
}
