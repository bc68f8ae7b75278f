// Package naming converts record-model column identifiers into the
// human-friendly titles and Go-style names used across the module.
package naming

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// Title converts a column name into a human-friendly title. It splits on
// underscores/dashes and camelCase boundaries: "dynamic_column" becomes
// "Dynamic Column".
func Title(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		for _, part := range strings.Split(splitCamel(word), " ") {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

// Fold lowers a name and strips separators so "created_at", "CreatedAt" and
// "createdat" all collapse to the same key. Used for lenient matches against
// Go struct fields.
func Fold(name string) string {
	var out strings.Builder
	out.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
		default:
			out.WriteRune(toLower(r))
		}
	}
	return out.String()
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func toLower(r rune) rune {
	if isUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
