package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	classLower = 1
	classUpper = 2
	classDigit = 3
	classOther = 4
)

// ToKebab transforms s from camelCase to kebab-case.
func ToKebab(s string) string {
	var words []string

	for _, word := range split(s) {
		if word = strings.Trim(word, "-_ "); word != "" {
			words = append(words, word)
		}
	}

	return strings.ToLower(strings.Join(words, "-"))
}

// ToCamel transforms s from kebab-case to camelCase.
func ToCamel(s string) string {
	parts := strings.Split(s, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}

		r, size := utf8.DecodeRuneInString(parts[i])
		parts[i] = string(unicode.ToUpper(r)) + parts[i][size:]
	}

	return strings.Join(parts, "")
}

// ToEnv transforms s from kebab-case or camelCase to SCREAMING_SNAKE_CASE.
func ToEnv(s string) string {
	return strings.ToUpper(strings.ReplaceAll(ToKebab(s), "-", "_"))
}

func split(src string) (entries []string) {
	if !utf8.ValidString(src) {
		return []string{src}
	}

	var runes [][]rune
	var class int
	lastClass := 0

	for _, r := range src {
		switch {
		case unicode.IsLower(r):
			class = classLower
		case unicode.IsUpper(r):
			class = classUpper
		case unicode.IsDigit(r):
			class = classDigit
		default:
			class = classOther
		}

		if lastClass != 0 && (class == lastClass || class == classDigit) {
			runes[len(runes)-1] = append(runes[len(runes)-1], r)
		} else {
			runes = append(runes, []rune{r})
		}

		lastClass = class
	}

	// "HTTPServer" splits as "HTTP" "Server", not "HTTPS" "erver".
	for i := 0; i < len(runes)-1; i++ {
		if unicode.IsUpper(runes[i][0]) && unicode.IsLower(runes[i+1][0]) {
			runes[i+1] = append([]rune{runes[i][len(runes[i])-1]}, runes[i+1]...)
			runes[i] = runes[i][:len(runes[i])-1]
		}
	}

	for _, s := range runes {
		if len(s) > 0 {
			entries = append(entries, string(s))
		}
	}

	return entries
}
