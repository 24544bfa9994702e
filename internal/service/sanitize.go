package service

import "strings"

// maxFieldLength caps each request field before it is embedded in a prompt.
const maxFieldLength = 200

// sanitizeField collapses whitespace runs into single spaces, trims the
// result, and truncates it to maxFieldLength runes.
func sanitizeField(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > maxFieldLength {
		return string(runes[:maxFieldLength])
	}
	return s
}
