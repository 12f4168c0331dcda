package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiCyan   = "\x1b[36m"
)

// ansiForHex maps the status ramp's hex colors onto terminal colors.
var ansiForHex = map[string]string{
	"#35a173": ansiGreen,
	"#59c48c": ansiGreen,
	"#80d6aa": ansiCyan,
	"#f59e0b": ansiYellow,
	"#e9493e": ansiRed,
}

// colorizeMetric wraps label in the ANSI color matching its hex color.
func colorizeMetric(label, hex string, colorize bool) string {
	if !colorize {
		return label
	}
	color, ok := ansiForHex[hex]
	if !ok {
		return label
	}
	return color + label + ansiReset
}

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderDetailLine(label, value string) string {
	return fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", value)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
