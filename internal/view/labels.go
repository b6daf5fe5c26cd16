package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Label turns a stored key such as "experience" or "web-development" into a display label.
func Label(key string) string {
	key = strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(key))
	if key == "" {
		return ""
	}
	return titleCaser.String(key)
}

// Initials returns up to two upper-case initials of a name, used as an avatar fallback.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	return cases.Upper(language.English).String(string(out))
}
