package criteria

import "strings"

// normalizeAlias trims and uppercases text for alias-table lookups. Operator
// and keyword spellings are case-insensitive; variable and constant text is
// never passed through this function.
func normalizeAlias(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// skipWhitespace advances i past any run of whitespace in input, returning
// the new index.
func skipWhitespace(input string, i int) int {
	for i < len(input) && isSpace(rune(input[i])) {
		i++
	}
	return i
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// extractQuoted expects input[i] to be a quote symbol. It advances past the
// opening quote, accumulates characters up to the matching unescaped quote
// (honoring '\' as an escape that quotes the following character literally,
// including the delimiter itself), consumes the closing quote if present,
// and returns the unquoted text plus the index just past it.
//
// If input ends before a matching close quote, the text accumulated so far
// is returned and the returned index is len(input).
func extractQuoted(input string, i int) (string, int) {
	open := input[i]
	i++

	var sb strings.Builder
	escaped := false
	for i < len(input) {
		c := input[i]
		switch {
		case escaped:
			sb.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == open:
			i++
			return sb.String(), i
		default:
			sb.WriteByte(c)
		}
		i++
	}
	return sb.String(), i
}
