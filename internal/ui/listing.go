package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Listing is a titled box of preformatted text, used in verbose mode for
// payloads and server lists
type Listing struct {
	Title    string
	Lines    []string
	Width    int
	MaxLines int // 0 = unlimited
}

// NewListing creates a listing box for content
func NewListing(title, content string) *Listing {
	return &Listing{
		Title: title,
		Lines: strings.Split(strings.TrimRight(content, "\n"), "\n"),
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the width for responsive rendering
func (l *Listing) SetWidth(width int) *Listing {
	l.Width = width
	return l
}

// SetMaxLines limits the number of lines displayed
func (l *Listing) SetMaxLines(max int) *Listing {
	l.MaxLines = max
	return l
}

// Render returns the styled listing box as a string
func (l *Listing) Render() string {
	width := clampWidth(l.Width)

	lines := l.Lines
	if l.MaxLines > 0 && len(lines) > l.MaxLines {
		lines = append(lines[:l.MaxLines:l.MaxLines], "... (output truncated)")
	}

	inner := lipgloss.JoinVertical(lipgloss.Left,
		ListingTitleStyle.Render(l.Title),
		"",
		ListingContentStyle.Render(strings.Join(lines, "\n")),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width-4).
		Padding(0, 1).
		MarginLeft(2).
		Render(inner)
}

// String implements fmt.Stringer
func (l *Listing) String() string {
	return l.Render()
}
