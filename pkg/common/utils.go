package common

import (
	"fmt"
	"unicode/utf8"
)

// The marker that replaces the end of truncated texts.
const Ellipsis = "..."

// Shortens the text to the given number of characters. Longer texts end with an ellipsis.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	if maxLength <= len(Ellipsis) {
		return string([]rune(text)[:maxLength])
	}
	return string([]rune(text)[:maxLength-len(Ellipsis)]) + Ellipsis
}

// Gets a string like "1 project" or "3 projects".
func GetSingularPluralString[T any](values []T, singular, plural string) string {
	if len(values) == 1 {
		return fmt.Sprintf("%d %s", len(values), singular)
	}
	return fmt.Sprintf("%d %s", len(values), plural)
}

// Same as GetSingularPluralString but builds the plural by appending an "s".
func GetSingularPluralStringSimple[T any](values []T, singular string) string {
	return GetSingularPluralString(values, singular, singular+"s")
}

func Ptr[T any](value T) *T {
	return &value
}
