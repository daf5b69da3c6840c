// Package user holds the session user, a directory of known users and
// session preferences.
//
// The current user is a detached copy: editing it with UpdateProfile never
// changes the directory entry with the same ID, and vice versa.
package user

import (
	"errors"

	internalstrings "github.com/amonks/workshop/internal/strings"
	"github.com/amonks/workshop/internal/validation"
)

// User is a profile in the directory or the logged-in session user.
type User struct {
	ID     int64  `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// NewUser is a directory entry before an ID is assigned.
type NewUser struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Theme is the color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme is returned when parsing an unknown theme.
var ErrInvalidTheme = errors.New("invalid theme")

// ValidThemes returns all themes.
func ValidThemes() []Theme {
	return []Theme{ThemeLight, ThemeDark}
}

// IsValid returns true if the theme is a known valid value.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ParseTheme parses user input into a theme.
func ParseTheme(value string) (Theme, error) {
	theme := Theme(internalstrings.NormalizeLowerTrimSpace(value))
	if !theme.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidTheme, Theme(value), ValidThemes())
	}
	return theme, nil
}

// Preferences are the session settings.
type Preferences struct {
	Theme         Theme `json:"theme" yaml:"theme"`
	Notifications bool  `json:"notifications" yaml:"notifications"`
	AutoSave      bool  `json:"auto_save" yaml:"auto_save"`
}

// DefaultPreferences returns light theme with notifications and auto-save on.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Notifications: true, AutoSave: true}
}

// ProfileUpdate configures fields to update on the current user.
// Nil pointers mean "don't update this field".
type ProfileUpdate struct {
	ID     *int64  `json:"id,omitempty"`
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// PreferencesUpdate configures preferences to change.
// Nil pointers mean "don't update this field".
type PreferencesUpdate struct {
	Theme         *Theme `json:"theme,omitempty"`
	Notifications *bool  `json:"notifications,omitempty"`
	AutoSave      *bool  `json:"auto_save,omitempty"`
}
