package flashcard

import (
	"strings"

	"golang.org/x/text/cases"
)

// Card is a prompt shown to a user and the answer expected back
type Card struct {
	Prompt string
	Answer string
}

// IsCorrect reports whether input matches the answer, ignoring
// surrounding whitespace and letter case
func (card Card) IsCorrect(input string) bool {
	return normalize(input) == normalize(card.Answer)
}

func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
