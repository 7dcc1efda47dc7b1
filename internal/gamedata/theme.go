package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ThemeDef holds the console colour scheme as hex strings.
type ThemeDef struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Debug      string `json:"debug"`
	Info       string `json:"info"`
	Warn       string `json:"warn"`
	Error      string `json:"error"`
	Prompt     string `json:"prompt"`
}

// ThemeFile represents the structure of theme.json.
type ThemeFile struct {
	Theme ThemeDef `json:"theme"`
}

// LoadTheme loads the console theme from the embedded theme.json file.
func LoadTheme() (*ThemeDef, error) {
	file, err := Load[ThemeFile]("theme.json")
	if err != nil {
		return nil, err
	}
	return &file.Theme, nil
}

// Color converts one of the theme's hex strings, falling back to white.
func (t *ThemeDef) Color(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" into a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %q", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}
