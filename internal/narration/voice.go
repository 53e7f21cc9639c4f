package narration

import (
	"slices"
	"strings"
)

// Voices available for speech synthesis
var Voices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer", "coral"}

const DefaultVoice = "onyx"

// languageInstructions are written in the target language where possible
var languageInstructions = map[string]string{
	"english":    "Read this text in English.",
	"japanese":   "この文章を日本語で読んでください。",
	"chinese":    "请用中文阅读这段文字。",
	"korean":     "이 텍스트를 한국어로 읽어주세요.",
	"spanish":    "Lee este texto en español.",
	"french":     "Lisez ce texte en français.",
	"german":     "Lesen Sie diesen Text auf Deutsch.",
	"italian":    "Leggi questo testo in italiano.",
	"russian":    "Прочитайте этот текст на русском языке.",
	"portuguese": "Leia este texto em português.",
	"arabic":     "اقرأ هذا النص باللغة العربية.",
	"hindi":      "इस पाठ को हिंदी में पढ़ें।",
	"thai":       "อ่านข้อความนี้เป็นภาษาไทย",
	"vietnamese": "Đọc văn bản này bằng tiếng Việt.",
}

func IsValidVoice(voice string) bool {
	return slices.Contains(Voices, voice)
}

// IsValidLanguage reports whether the language has a narration instruction, ignoring case
func IsValidLanguage(language string) bool {
	_, ok := languageInstructions[strings.ToLower(language)]
	return ok
}

// Instruction returns the narration instruction for a language.
// Unknown and empty languages have no instruction.
func Instruction(language string) string {
	if language == "" {
		return ""
	}
	return languageInstructions[strings.ToLower(language)]
}

// Languages returns the supported language names in alphabetical order
func Languages() []string {
	languages := make([]string, 0, len(languageInstructions))
	for language := range languageInstructions {
		languages = append(languages, language)
	}
	slices.Sort(languages)
	return languages
}
