package usecase

import (
	"regexp"
	"strings"
)

// matchTagRegex captures the trailing machine-parseable tag the collaborator
// is instructed to append. Grammar: [MATCH: id(,id)*] with a case-sensitive
// MATCH keyword and digits, commas, and whitespace inside the brackets.
var matchTagRegex = regexp.MustCompile(`\[MATCH:\s*([0-9,\s]+)\]`)

// ExtractMatchTag parses a collaborator reply into the display text and the
// catalog ids named by its match tag. The tag and surrounding whitespace are
// stripped from the returned text. An absent or malformed tag is a valid,
// non-error outcome: found is false and the reply is returned verbatim
// (trimmed). A present tag with no usable ids still counts as found, so the
// caller replaces the match set with nothing.
func ExtractMatchTag(reply string) (text string, ids []string, found bool) {
	m := matchTagRegex.FindStringSubmatch(reply)
	text = strings.TrimSpace(matchTagRegex.ReplaceAllString(reply, ""))
	if m == nil {
		return text, nil, false
	}

	for _, token := range strings.Split(m[1], ",") {
		if token = strings.TrimSpace(token); token != "" {
			ids = append(ids, token)
		}
	}
	return text, ids, true
}
