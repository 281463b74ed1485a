// Package ui holds the terminal styling of the CLI.
package ui

import "os"

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Enabled turns styling off when NO_COLOR is set
var Enabled = os.Getenv("NO_COLOR") == ""

func style(code, s string) string {
	if !Enabled {
		return s
	}
	return code + s + ColorReset
}

func Bold(s string) string {
	return style(ColorBold, s)
}

// Title is used for the command name in help pages
func Title(s string) string {
	return style(ColorBold+ColorCyan, s)
}

// Heading is used for help page sections
func Heading(s string) string {
	return style(ColorBold+ColorWhite, s)
}

func Accent(s string) string {
	return style(ColorCyan, s)
}

func Dim(s string) string {
	return style(ColorDim, s)
}

func Success(s string) string {
	return style(ColorGreen, s)
}

func Info(s string) string {
	return style(ColorDim+ColorYellow, s)
}

func Warning(s string) string {
	return style(ColorYellow, s)
}

func Error(s string) string {
	return style(ColorRed, s)
}
