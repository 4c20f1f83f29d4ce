package security

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const maxTextLength = 1000

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup and control bytes from user supplied text
// before it is stored and later rendered by clients.
func SanitizeText(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = htmlPolicy.Sanitize(input)
	input = strings.TrimSpace(input)

	if utf8.RuneCountInString(input) > maxTextLength {
		runes := []rune(input)
		input = string(runes[:maxTextLength])
	}
	return input
}
