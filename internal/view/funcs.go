package view

import (
	"html/template"
	"strings"
	"time"
)

// FuncMap 返回页面模板使用的辅助函数。
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"label":        Label,
		"initials":     Initials,
		"timelineIcon": TimelineIcon,
		"linkIcon":     LinkIcon,
		"contains":     contains,
		"lines":        Lines,
		"formatDate":   FormatDate,
		"year":         func() int { return time.Now().Year() },
	}
}

// Lines splits multi-line text into trimmed, non-empty lines.
func Lines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// FormatDate renders t like "January 2, 2006"; the zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
