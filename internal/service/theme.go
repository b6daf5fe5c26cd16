package service

import "strings"

// Theme 是站点配色，只有 dark 与 light 两种取值。
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light" in any case.
func ParseTheme(raw string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeDark:
		return ThemeDark, true
	case ThemeLight:
		return ThemeLight, true
	}
	return "", false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// PreferenceStore persists the chosen theme, for example in a cookie.
type PreferenceStore interface {
	Load() (string, bool)
	Save(Theme)
}

// ThemeController 持有当前主题：优先读取已保存的偏好，其次是系统偏好，最后默认 dark。
type ThemeController struct {
	store   PreferenceStore
	current Theme
}

// NewThemeController seeds the controller. osPreference is the client's reported
// color scheme and may be empty. A theme taken from the OS preference is persisted.
func NewThemeController(store PreferenceStore, osPreference string) *ThemeController {
	c := &ThemeController{store: store, current: ThemeDark}

	if store != nil {
		if raw, ok := store.Load(); ok {
			if theme, valid := ParseTheme(raw); valid {
				c.current = theme
				return c
			}
		}
	}

	if theme, ok := ParseTheme(osPreference); ok {
		c.current = theme
		if store != nil {
			store.Save(theme)
		}
	}
	return c
}

// Current returns the active theme.
func (c *ThemeController) Current() Theme {
	return c.current
}

// Toggle flips the theme and persists it.
func (c *ThemeController) Toggle() Theme {
	c.current = c.current.Toggle()
	if c.store != nil {
		c.store.Save(c.current)
	}
	return c.current
}
