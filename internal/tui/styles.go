package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// labelWidth aligns the value column of summaries.
const labelWidth = 13

// Palette is the set of styles used to render summaries.
type Palette struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// StyledPalette colours output for a terminal.
func StyledPalette() Palette {
	return Palette{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Label:   lipgloss.NewStyle().Foreground(ColorSecondary).Width(labelWidth),
		Value:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		Success: lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(ColorError),
	}
}

// PlainPalette keeps only layout, for pipes, files and NO_COLOR.
func PlainPalette() Palette {
	plain := lipgloss.NewStyle()
	return Palette{
		Title:   plain,
		Label:   lipgloss.NewStyle().Width(labelWidth),
		Value:   plain,
		Muted:   plain,
		Success: plain,
		Error:   plain,
	}
}

// PaletteFor returns the palette matching mode.
func PaletteFor(mode Mode) Palette {
	if mode == ModeStyled {
		return StyledPalette()
	}
	return PlainPalette()
}

// Symbols for visual feedback.
const (
	SymbolCheck = "✓"
	SymbolCross = "✗"
)
