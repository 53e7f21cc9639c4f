package narration

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Player plays an audio file and blocks until playback finishes
type Player interface {
	Play(path string) error
}

// CommandPlayer plays audio with an external command.
// The first installed command of the candidates is used.
type CommandPlayer struct {
	candidates [][]string
	lookPath   func(file string) (string, error)
	run        func(name string, args ...string) error
}

// NewPlayer returns a player for the current platform.
// A non-empty command overrides the platform default, e.g. "mpv --no-video".
func NewPlayer(command string) *CommandPlayer {
	var candidates [][]string
	if fields := strings.Fields(command); len(fields) > 0 {
		candidates = [][]string{fields}
	} else {
		candidates = platformCommands(runtime.GOOS)
	}
	return &CommandPlayer{
		candidates: candidates,
		lookPath:   exec.LookPath,
		run:        runCommand,
	}
}

func platformCommands(goos string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"afplay"}}
	case "windows":
		return [][]string{{"cmd", "/c", "start", ""}}
	default:
		return [][]string{{"mpg123", "-q"}, {"aplay", "-q"}}
	}
}

func (player *CommandPlayer) Play(path string) error {
	for _, candidate := range player.candidates {
		if _, err := player.lookPath(candidate[0]); err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				continue
			}
			return fmt.Errorf("exec.LookPath(%s) > %w", candidate[0], err)
		}

		args := append(append([]string{}, candidate[1:]...), path)
		if err := player.run(candidate[0], args...); err != nil {
			return fmt.Errorf("%s > %w", candidate[0], err)
		}
		return nil
	}
	return fmt.Errorf("no audio player found: %w", exec.ErrNotFound)
}

func runCommand(name string, args ...string) error {
	// stdout and stderr are discarded when left nil
	return exec.Command(name, args...).Run()
}
