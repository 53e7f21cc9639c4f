// Package flashcard loads cards from CSV files and grades answers against them.
package flashcard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrRead        = errors.New("failed to read cards")
	ErrEmptyResult = errors.New("no valid flashcards found")
)

// Load reads cards from a CSV file, taking prompts and answers from the given columns.
func Load(path string, promptColumn, answerColumn int) ([]Card, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: os.Open(%s) > %v", ErrRead, path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	cards, err := Parse(file, promptColumn, answerColumn)
	if err != nil {
		return nil, fmt.Errorf("Parse(%s) > %w", path, err)
	}
	return cards, nil
}

// Parse reads cards from CSV records. Records without enough fields for both
// columns are skipped.
func Parse(r io.Reader, promptColumn, answerColumn int) ([]Card, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	required := max(promptColumn, answerColumn) + 1
	var cards []Card
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRead, err)
		}
		if len(record) < required {
			continue
		}
		cards = append(cards, Card{
			Prompt: record[promptColumn],
			Answer: record[answerColumn],
		})
	}

	if len(cards) == 0 {
		return nil, ErrEmptyResult
	}
	return cards, nil
}
