package cli

import (
	"context"

	"github.com/at-ishikawa/flash/internal/flashcard"
)

//go:generate mockgen -source=narrator.go -destination=../mocks/cli/mock_narrator.go -package=mock_cli

// Narrator reads a text aloud
type Narrator interface {
	Speak(ctx context.Context, text, voice, language string) error
}

// NarrationTarget is the side of a card that is read aloud
type NarrationTarget int

const (
	NarratePrompt NarrationTarget = iota
	NarrateAnswer
)

// NarrationTargetForColumn narrates the prompt when the narration column is the prompt column,
// and the answer otherwise.
func NarrationTargetForColumn(narrationColumn, promptColumn int) NarrationTarget {
	if narrationColumn == promptColumn {
		return NarratePrompt
	}
	return NarrateAnswer
}

type NarrationSettings struct {
	Target   NarrationTarget
	Voice    string
	Language string
}

func (settings NarrationSettings) text(card flashcard.Card) string {
	if settings.Target == NarrateAnswer {
		return card.Answer
	}
	return card.Prompt
}
