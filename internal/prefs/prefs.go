// Package prefs persists user preferences as JSON under the platform
// config directory.
package prefs

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
)

const (
	appDir    = "infinite-notepad"
	prefsFile = "preferences.json"
)

// Settings is everything remembered between sessions.
type Settings struct {
	PenColor     string  `json:"pen_color"` // #rrggbb
	PenWidth     float32 `json:"pen_width"`
	WindowWidth  float32 `json:"window_width"`
	WindowHeight float32 `json:"window_height"`
	SplitOffset  float64 `json:"split_offset"` // 0..1 position of the notes/canvas divider
}

// Defaults returns the settings used when no preferences file exists.
func Defaults() Settings {
	return Settings{
		PenColor:     "#000000",
		PenWidth:     3,
		WindowWidth:  1200,
		WindowHeight: 800,
		SplitOffset:  0.4,
	}
}

// Path returns the preferences file location, creating nothing.
func Path() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, prefsFile)
}

// Load reads settings from path. A missing or unreadable file yields the
// defaults; a corrupt file yields the defaults for the broken fields only
// insofar as JSON decoding allows, otherwise defaults entirely.
func Load(path string) Settings {
	s := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Defaults()
	}
	if s.PenWidth < 1 {
		s.PenWidth = Defaults().PenWidth
	}
	return s
}

// Save writes settings to path, creating the directory if needed.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Color decodes the stored pen color. Malformed values fall back to black.
func (s Settings) Color() color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s.PenColor, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// SetColor stores c in #rrggbb form.
func (s *Settings) SetColor(c color.Color) {
	r, g, b, _ := c.RGBA()
	s.PenColor = fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
