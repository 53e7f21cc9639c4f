package config

// QuizOptions selects the CSV columns used for questions and answers
type QuizOptions struct {
	PromptColumn int `mapstructure:"from" validate:"gte=0"`
	AnswerColumn int `mapstructure:"to" validate:"gte=0"`
}

// NarrationOptions are the text-to-speech options of a quiz.
// A nil Column disables narration.
type NarrationOptions struct {
	Column   *int   `mapstructure:"voice" validate:"omitempty,gte=0"`
	Voice    string `mapstructure:"voice-type" validate:"omitempty,voice"`
	Language string `mapstructure:"language" validate:"omitempty,language"`
}

// Enabled reports whether a narration column is requested
func (options NarrationOptions) Enabled() bool {
	return options.Column != nil
}
