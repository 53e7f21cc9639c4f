package narration

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const audioExtension = ".mp3"

// FileCache stores synthesized audio files named by their fingerprints.
// Entries never expire and are never evicted.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (fc *FileCache) filePath(fingerprint string) string {
	return filepath.Join(fc.rootDir, fingerprint+audioExtension)
}

// cache returns the path of the audio file for a fingerprint, fetching and
// storing it first when the file does not exist yet
func (fc *FileCache) cache(fingerprint string, fetch func() (io.ReadCloser, error)) (string, error) {
	localFilePath := fc.filePath(fingerprint)
	if _, err := os.Stat(localFilePath); err == nil {
		slog.Default().Debug("narration cache hit", "path", localFilePath)
		return localFilePath, nil
	}
	slog.Default().Debug("narration cache miss", "path", localFilePath)

	if err := os.MkdirAll(fc.rootDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", fc.rootDir, err)
	}

	contents, err := fetch()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = contents.Close()
	}()

	if err := fc.write(localFilePath, contents); err != nil {
		return "", err
	}
	return localFilePath, nil
}

// write stores contents through a temporary file renamed into place, so that a
// partially written file never counts as a cache hit
func (fc *FileCache) write(localFilePath string, contents io.Reader) error {
	file, err := os.CreateTemp(fc.rootDir, filepath.Base(localFilePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	tempPath := file.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := io.Copy(file, contents); err != nil {
		_ = file.Close()
		return fmt.Errorf("io.Copy > %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tempPath, localFilePath); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}
