package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			Padding(0, 1)
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✓")
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(12)
	urlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Underline(true)
)

// printBanner prints the dragkit banner.
func printBanner(w io.Writer) {
	fmt.Fprintln(w, bannerStyle.Render("dragkit"))
	fmt.Fprintln(w)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successMark, fmt.Sprintf(format, args...))
}

// field prints an aligned label/value line.
func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s%s\n", labelStyle.Render(label), value)
}
