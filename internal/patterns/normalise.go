package patterns

import (
	"regexp"
	"strings"
)

var (
	dateTokenRe  = regexp.MustCompile(`\d{2}/\d{2}/\d{2,4}`)
	longNumberRe = regexp.MustCompile(`\b\d{6,}\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalise canonicalises a transaction description for pattern
// matching: dates and long reference numbers are stripped, whitespace
// collapsed, and the result upper-cased. An empty result means no
// pattern is possible for the description. The same function serves
// both the save and lookup paths.
func Normalise(desc string) string {
	desc = dateTokenRe.ReplaceAllString(desc, "")
	desc = longNumberRe.ReplaceAllString(desc, "")
	desc = whitespaceRe.ReplaceAllString(desc, " ")
	return strings.ToUpper(strings.TrimSpace(desc))
}
