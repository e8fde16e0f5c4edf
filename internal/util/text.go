package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CollapseSpaces trims s and folds every whitespace run into one space.
func CollapseSpaces(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// SplitSemicolons splits on ";" and returns the trimmed, non-empty parts.
func SplitSemicolons(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(input string) string {
	if input == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(input)
	return string(unicode.ToUpper(first)) + strings.ToLower(input[size:])
}

// Flatten walks nested lists depth-first, left to right, and returns the
// leaves. A non-list value comes back as a one-element slice.
func Flatten(v any) []any {
	switch t := v.(type) {
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			out = append(out, Flatten(item)...)
		}
		return out
	case []string:
		out := make([]any, 0, len(t))
		for _, item := range t {
			out = append(out, item)
		}
		return out
	default:
		return []any{v}
	}
}
