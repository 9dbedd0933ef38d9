package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders CLI messages. Colours are dropped automatically when out is
// not a terminal.
type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F46E5")),
		label:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Faint(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#15803D")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#B91C1C")),
	}
}
