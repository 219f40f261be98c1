package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm displays a warning box on out and reads one line from in. It
// returns true only if the line equals phrase (surrounding whitespace is
// ignored).
func Confirm(in io.Reader, out io.Writer, title string, warnings []string, phrase string) bool {
	width := GetTerminalWidth()

	var lines []string

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   ⚠  WARNING  ─  %s", title))
	lines = append(lines, "", titleLine, "")

	for _, warning := range warnings {
		bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))

	fmt.Fprintln(out, box)
	fmt.Fprintln(out)

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	fmt.Fprint(out, promptStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", phrase)))

	input, err := bufio.NewReader(in).ReadString('\n')
	fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}

	if strings.TrimSpace(input) == phrase {
		return true
	}

	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	fmt.Fprintln(out, cancelStyle.Render("  Operation cancelled."))
	fmt.Fprintln(out)
	return false
}

// ConfirmOverwrite asks before replacing an existing configuration file
func ConfirmOverwrite(in io.Reader, out io.Writer, path string) bool {
	return Confirm(in, out,
		"OVERWRITE CONFIGURATION",
		[]string{
			"A configuration file already exists at " + path,
			"Port nicknames and default volumes stored in it will be lost",
		},
		"yes",
	)
}
