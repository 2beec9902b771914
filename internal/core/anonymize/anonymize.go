// Package anonymize scrubs personal data out of task text before it is
// logged for offline analysis. Hashing happens before scrubbing so the
// same raw input stays traceable across log rows
package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	rePhone = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// commonNames is a small first-name list; a proper NER pass is out of
// scope for parse-log anonymization
var commonNames = []string{"john", "david", "susan", "mike", "sarah"}

var nameRes = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(commonNames))
	for _, n := range commonNames {
		out = append(out, regexp.MustCompile(`(?i)\b`+n+`\b`))
	}
	return out
}()

// Scrub replaces emails, phone numbers and common first names with
// placeholder tokens
func Scrub(text string) string {
	text = reEmail.ReplaceAllString(text, "[EMAIL]")
	text = rePhone.ReplaceAllString(text, "[PHONE]")
	for _, re := range nameRes {
		text = re.ReplaceAllString(text, "[NAME]")
	}
	return text
}

// Hash returns the hex sha256 of the raw input, the stable key the parse
// log uses in place of the text itself
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ScrubAndHash is the common call pattern: hash first, then scrub
func ScrubAndHash(text string) (scrubbed, hash string) {
	return Scrub(text), Hash(strings.TrimSpace(text))
}
