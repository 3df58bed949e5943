package textproc

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	mentionTagPattern = regexp.MustCompile(`@\w+|#\w+`)
	nonLetterPattern  = regexp.MustCompile(`[^a-z\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize cleans raw social-media text for scoring and matching:
// lowercase, drop URLs, mentions and hashtags, strip everything outside
// [a-z ] and squeeze whitespace. The order of steps matters; stripping
// punctuation first would break URL and mention detection.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionTagPattern.ReplaceAllString(text, "")
	text = nonLetterPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
