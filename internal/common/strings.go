package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the String() value of unrecognized enum members.
const UnknownStr = "unknown"

// LowerInitial lowercases the leading upper-case run of an identifier,
// keeping the last upper-case letter of a run that starts a new word.
//
//	Executable -> executable
//	URL        -> url
//	URLPath    -> urlPath
//	URLs       -> urls
//	ID         -> id
func LowerInitial(s string) string {
	runes := []rune(s)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return s
	case n == 1 || n == len(runes):
		// single leading capital or all caps
	default:
		// URLPath: the P belongs to the next word
		if unicode.IsLower(runes[n]) && !pluralInitialism(runes, n) {
			n--
		}
	}

	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// UpperInitial uppercases the first rune of s.
func UpperInitial(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// SnakeCase converts a Go identifier to snake_case, keeping initialisms
// together (HTTPServer -> http_server).
func SnakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1]) &&
				!pluralInitialism(runes, i+1)
			if prevLower || nextLower {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// pluralInitialism reports whether runes[i] is the "s" of a plural
// initialism such as URLs or IDsByName.
func pluralInitialism(runes []rune, i int) bool {
	return runes[i] == 's' && (i+1 == len(runes) || unicode.IsUpper(runes[i+1]))
}
