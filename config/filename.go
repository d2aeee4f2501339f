package config

import (
	"strings"
	"unicode"
)

// forbidden in file names on at least one of the platforms results are
// copied to
const forbiddenFileNameChars = `<>":/\|?*`

// CleanFileName removes characters not allowed in file names. Result does not
// depend on the platform program runs on.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbiddenFileNameChars, sym) {
			return -1
		}
		return sym
	}, in), ". ")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}
