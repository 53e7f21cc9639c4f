package main

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/flash/internal/cli"
	"github.com/at-ishikawa/flash/internal/config"
	"github.com/at-ishikawa/flash/internal/flashcard"
	"github.com/at-ishikawa/flash/internal/narration"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type quizFlags struct {
	shuffle         bool
	confirm         bool
	recursive       bool
	columns         config.QuizOptions
	narrationColumn int
	voice           string
	language        string
}

func addQuizFlags(flags *pflag.FlagSet, quiz *quizFlags) {
	flags.BoolVarP(&quiz.shuffle, "shuffle", "s", false, "Shuffle the flashcards")
	flags.BoolVarP(&quiz.confirm, "confirm", "c", false, "Require typing the correct answer when wrong")
	flags.BoolVarP(&quiz.recursive, "recursive", "r", false, "Recursively test on incorrect cards until all are answered correctly")
	flags.IntVarP(&quiz.columns.PromptColumn, "from", "f", 0, "Column index to use for questions (0-based)")
	flags.IntVarP(&quiz.columns.AnswerColumn, "to", "t", 1, "Column index to use for answers (0-based)")
	flags.IntVarP(&quiz.narrationColumn, "voice", "v", 0, "Column index to read aloud using text-to-speech (0-based)")
	flags.StringVar(&quiz.voice, "voice-type", "",
		fmt.Sprintf("Voice to use for text-to-speech. Available voices: %s (default: narration.voice in the config)", strings.Join(narration.Voices, ", ")))
	flags.StringVarP(&quiz.language, "language", "l", "",
		fmt.Sprintf("Language to use for text-to-speech. Available languages: %s", strings.Join(narration.Languages(), ", ")))
}

// narrationOptions falls back to the config for the voice and the language.
// Narration is enabled only if the voice column is given.
func (quiz quizFlags) narrationOptions(flags *pflag.FlagSet, cfg config.NarrationConfig) config.NarrationOptions {
	options := config.NarrationOptions{
		Voice:    quiz.voice,
		Language: quiz.language,
	}
	if options.Voice == "" {
		options.Voice = cfg.Voice
	}
	if options.Language == "" {
		options.Language = cfg.Language
	}
	if flags.Changed("voice") {
		column := quiz.narrationColumn
		options.Column = &column
	}
	return options
}

func newQuizCommand() *cobra.Command {
	var quiz quizFlags
	command := &cobra.Command{
		Use:   "flash [csv_path]",
		Short: "A simple flashcard CLI tool",
		Long: `A simple flashcard CLI tool.

Provide a CSV file with columns of data. By default, questions are shown from the first column (0)
and answers are expected from the second column (1). Use --from and --to options to customize
which columns to use.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			validator, err := config.NewValidator()
			if err != nil {
				return fmt.Errorf("config.NewValidator > %w", err)
			}
			if err := validator.Validate(quiz.columns); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			quizCLI := cli.NewFlashcardQuizCLI(cmd.InOrStdin(), cmd.OutOrStdout(), cli.FlashcardQuizOptions{
				Shuffle:   quiz.shuffle,
				Confirm:   quiz.confirm,
				Recursive: quiz.recursive,
			})

			narrationOptions := quiz.narrationOptions(cmd.Flags(), cfg.Narration)
			if narrationOptions.Enabled() {
				narrator, closeNarrator, err := newNarrator(cfg, narrationOptions, validator)
				if err != nil {
					if err := quizCLI.DisableNarration(err); err != nil {
						return err
					}
				} else {
					defer closeNarrator()
					quizCLI.EnableNarration(narrator, cli.NarrationSettings{
						Target:   cli.NarrationTargetForColumn(*narrationOptions.Column, quiz.columns.PromptColumn),
						Voice:    narrationOptions.Voice,
						Language: narrationOptions.Language,
					})
				}
			}

			cards, err := flashcard.Load(args[0], quiz.columns.PromptColumn, quiz.columns.AnswerColumn)
			if err != nil {
				return fmt.Errorf("flashcard.Load > %w", err)
			}
			return quizCLI.Start(cmd.Context(), cards)
		},
	}
	addQuizFlags(command.Flags(), &quiz)

	return command
}
