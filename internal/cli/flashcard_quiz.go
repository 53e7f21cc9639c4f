package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"slices"

	"github.com/at-ishikawa/flash/internal/flashcard"
)

var ErrNarrationDeclined = errors.New("declined to continue without voice")

type FlashcardQuizOptions struct {
	Shuffle bool
	// Confirm requires typing the correct answer after a wrong one
	Confirm bool
	// Recursive repeats rounds on the incorrect cards until none is left
	Recursive bool
}

// RoundResult is the score of a round
type RoundResult struct {
	Round   int
	Correct int
	Total   int
}

func (result RoundResult) Percentage() float64 {
	if result.Total == 0 {
		return 0
	}
	return float64(result.Correct) / float64(result.Total) * 100
}

type SessionResult struct {
	Rounds []RoundResult
	// Remaining are the cards answered incorrectly in the last round
	Remaining []flashcard.Card
}

func (result SessionResult) Mastered() bool {
	return len(result.Rounds) > 0 && len(result.Remaining) == 0
}

// FlashcardQuizCLI manages the interactive CLI session for flashcards loaded from a CSV file
type FlashcardQuizCLI struct {
	*InteractiveQuizCLI
	options   FlashcardQuizOptions
	cards     []flashcard.Card
	narrator  Narrator
	narration NarrationSettings
	shuffle   func(cards []flashcard.Card)
}

func NewFlashcardQuizCLI(stdin io.Reader, stdout io.Writer, options FlashcardQuizOptions) *FlashcardQuizCLI {
	return &FlashcardQuizCLI{
		InteractiveQuizCLI: newInteractiveQuizCLI(stdin, stdout),
		options:            options,
		shuffle:            shuffleCards,
	}
}

// shuffleCards shuffles the cards in place
func shuffleCards(cards []flashcard.Card) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

func (r *FlashcardQuizCLI) EnableNarration(narrator Narrator, settings NarrationSettings) {
	r.narrator = narrator
	r.narration = settings
}

// DisableNarration reports why narration can't be used and asks whether to continue without it.
// ErrNarrationDeclined is returned if the user doesn't continue.
func (r *FlashcardQuizCLI) DisableNarration(reason error) error {
	return r.continueWithoutNarration(fmt.Sprintf("Error: %v", reason))
}

func (r *FlashcardQuizCLI) continueWithoutNarration(message string) error {
	r.println(r.failure.Sprint(message))
	ok, err := r.confirm("Continue without voice?", true)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNarrationDeclined
	}
	r.narrator = nil
	return nil
}

func (r *FlashcardQuizCLI) NarrationEnabled() bool {
	return r.narrator != nil
}

// Start runs a session over the cards until it ends or the process is interrupted
func (r *FlashcardQuizCLI) Start(ctx context.Context, cards []flashcard.Card) error {
	r.cards = cards
	return r.Run(ctx, r)
}

func (r *FlashcardQuizCLI) Session(ctx context.Context) error {
	if _, err := r.RunSession(ctx, r.cards); err != nil {
		return err
	}
	return errEnd
}

// RunSession runs rounds over the cards. In recursive mode, the incorrect cards of a round
// become the next round until a round has no incorrect card.
func (r *FlashcardQuizCLI) RunSession(ctx context.Context, cards []flashcard.Card) (*SessionResult, error) {
	current := slices.Clone(cards)
	if r.options.Shuffle {
		r.shuffle(current)
	}

	result := &SessionResult{}
	for round := 1; len(current) > 0; round++ {
		_, incorrect, err := r.RunRound(ctx, current, round)
		if err != nil {
			return nil, err
		}
		result.Rounds = append(result.Rounds, RoundResult{
			Round:   round,
			Correct: len(current) - len(incorrect),
			Total:   len(current),
		})
		result.Remaining = incorrect

		if !r.options.Recursive || len(incorrect) == 0 {
			break
		}
		if r.options.Shuffle {
			r.shuffle(incorrect)
		}
		current = incorrect
	}

	if r.options.Recursive && len(result.Rounds) > 1 {
		r.printFinalSummary(result)
	}
	return result, nil
}

// RunRound asks every card once and partitions them into correct and incorrect cards in the asked order
func (r *FlashcardQuizCLI) RunRound(ctx context.Context, cards []flashcard.Card, round int) (correct, incorrect []flashcard.Card, err error) {
	r.printf("\n--- Round %d (%d cards) ---\n", round, len(cards))

	for i, card := range cards {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if err := r.narrate(ctx, card); err != nil {
			return nil, nil, err
		}

		r.printf("\n[%d/%d] %s\n", i+1, len(cards), card.Prompt)
		answer, err := r.prompt("Your answer")
		if err != nil {
			return nil, nil, err
		}

		if card.IsCorrect(answer) {
			r.println(r.correct.Sprint("✔"))
			correct = append(correct, card)
			continue
		}

		r.println(r.incorrect.Sprintf("✘ %s", card.Answer))
		incorrect = append(incorrect, card)
		if r.options.Confirm {
			if err := r.confirmAnswer(card); err != nil {
				return nil, nil, err
			}
		}
	}

	if len(cards) > 0 {
		result := RoundResult{Round: round, Correct: len(correct), Total: len(cards)}
		r.printf("\nRound %d: You got %d out of %d correct (%.1f%%).\n",
			result.Round, result.Correct, result.Total, result.Percentage())
	}
	return correct, incorrect, nil
}

func (r *FlashcardQuizCLI) confirmAnswer(card flashcard.Card) error {
	for {
		input, err := r.prompt("Type the correct answer to continue")
		if err != nil {
			return err
		}
		if card.IsCorrect(input) {
			return nil
		}
		r.println(r.incorrect.Sprint("✘"))
	}
}

func (r *FlashcardQuizCLI) narrate(ctx context.Context, card flashcard.Card) error {
	if r.narrator == nil {
		return nil
	}

	err := r.narrator.Speak(ctx, r.narration.text(card), r.narration.Voice, r.narration.Language)
	if err == nil {
		return nil
	}
	slog.Debug("failed to narrate a card",
		"prompt", card.Prompt,
		"error", err,
	)
	return r.continueWithoutNarration(fmt.Sprintf("Voice error: %v", err))
}

func (r *FlashcardQuizCLI) printFinalSummary(result *SessionResult) {
	r.printf("\n--- Final Summary ---\n")
	for _, round := range result.Rounds {
		r.printf("Round %d: %d/%d correct (%.1f%%)\n",
			round.Round, round.Correct, round.Total, round.Percentage())
	}
	if result.Mastered() {
		r.println(r.correct.Sprint("\nCongratulations! You've mastered all the cards!"))
	}
}
