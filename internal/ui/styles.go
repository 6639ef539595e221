package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cdoyle/lister-tui/internal/config"
	"github.com/cdoyle/lister-tui/internal/list"
)

// Terminal colors for each list color.
const (
	hexGray   = "#919191"
	hexBlue   = "#4169E1"
	hexGreen  = "#32CD32"
	hexYellow = "#FFD700"
	hexOrange = "#FF8C00"
	hexRed    = "#DC143C"
)

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	Header    lipgloss.Style
	StatusBar lipgloss.Style

	ItemSelected   lipgloss.Style
	ItemUnselected lipgloss.Style
	ItemComplete   lipgloss.Style

	Title  lipgloss.Style
	Subtle lipgloss.Style
	Error  lipgloss.Style
	Accent lipgloss.Style

	listColors map[list.Color]lipgloss.Style
}

// NewStyles creates the style set from the configured theme.
func NewStyles(theme config.ThemeConfig) *Styles {
	subtle := lipgloss.Color(theme.SubtleColor)
	return &Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		ItemSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.AccentColor)).
			Bold(true),

		ItemUnselected: lipgloss.NewStyle(),

		ItemComplete: lipgloss.NewStyle().
			Foreground(subtle).
			Strikethrough(true),

		Title:  lipgloss.NewStyle().Bold(true),
		Subtle: lipgloss.NewStyle().Foreground(subtle),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorColor)),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.AccentColor)),

		listColors: map[list.Color]lipgloss.Style{
			list.ColorGray:   lipgloss.NewStyle().Foreground(lipgloss.Color(hexGray)),
			list.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color(hexBlue)),
			list.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color(hexGreen)),
			list.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color(hexYellow)),
			list.ColorOrange: lipgloss.NewStyle().Foreground(lipgloss.Color(hexOrange)),
			list.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color(hexRed)),
		},
	}
}

// ListColor returns the style for a list color.
func (s *Styles) ListColor(c list.Color) lipgloss.Style {
	if style, ok := s.listColors[c]; ok {
		return style
	}
	return s.listColors[list.ColorGray]
}
