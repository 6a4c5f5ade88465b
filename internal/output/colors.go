package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Time      func(format string, a ...interface{}) string
	Price     func(format string, a ...interface{}) string
	Estimated func(format string, a ...interface{}) string
	Train     func(format string, a ...interface{}) string
	Platform  func(format string, a ...interface{}) string
	Station   func(format string, a ...interface{}) string
	Header    func(format string, a ...interface{}) string
	Muted     func(format string, a ...interface{}) string
	Warning   func(format string, a ...interface{}) string
	Success   func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	// Determine if we should use colors
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return color.New().Sprintf(format, a...)
		}
		return &Colors{
			Time:      noColor,
			Price:     noColor,
			Estimated: noColor,
			Train:     noColor,
			Platform:  noColor,
			Station:   noColor,
			Header:    noColor,
			Muted:     noColor,
			Warning:   noColor,
			Success:   noColor,
		}
	}

	return &Colors{
		Time:      color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Price:     color.New(color.FgGreen, color.Bold).SprintfFunc(),
		Estimated: color.New(color.FgYellow).SprintfFunc(),
		Train:     color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Platform:  color.New(color.FgMagenta).SprintfFunc(),
		Station:   color.New(color.FgWhite).SprintfFunc(),
		Header:    color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:     color.New(color.FgHiBlack).SprintfFunc(),
		Warning:   color.New(color.FgYellow, color.Bold).SprintfFunc(),
		Success:   color.New(color.FgGreen, color.Bold).SprintfFunc(),
	}
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
