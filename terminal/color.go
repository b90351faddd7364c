package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// trueColorEnv is consulted by tcell when the screen is created
const trueColorEnv = "TCELL_TRUECOLOR"

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	// 1. Check COLORTERM (highest priority, set by modern terminals)
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	// 2. Check terminal-specific env vars
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("ALACRITTY_LOG") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	// 3. Check TERM for known true color terminals
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// ParseColorMode resolves the -color flag; "auto" and "" detect from the environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	}
	return ColorMode256, fmt.Errorf("unknown color mode %q", s)
}

// ApplyColorMode configures tcell before the screen is created
// 256 mode disables tcell's RGB output so colors map onto the palette
func ApplyColorMode(m ColorMode) error {
	if m == ColorModeTrueColor {
		return os.Unsetenv(trueColorEnv)
	}
	return os.Setenv(trueColorEnv, "disable")
}
