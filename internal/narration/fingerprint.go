package narration

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint identifies a synthesized audio by its inputs.
// The instruction text is hashed instead of the language name, so a changed
// instruction produces a different fingerprint.
func Fingerprint(text, voice, instruction string) string {
	hash := sha256.Sum256([]byte(strings.Join([]string{text, voice, instruction}, ":")))
	return hex.EncodeToString(hash[:])
}
