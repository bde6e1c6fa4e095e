package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette — dark slate with teal/indigo accents
	Teal      = lipgloss.Color("#2DD4BF")
	DimTeal   = lipgloss.Color("#134E4A")
	Indigo    = lipgloss.Color("#818CF8")
	MidGray   = lipgloss.Color("#374151")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#E5E7EB")
	Amber     = lipgloss.Color("#FBBF24")
	Red       = lipgloss.Color("#F87171")

	// Header
	TitleStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	// Filter bar
	FilterLabelStyle = lipgloss.NewStyle().
				Foreground(LightGray)

	FilterActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Teal).
				Padding(0, 1)

	FilterIdleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MidGray).
			Padding(0, 1)

	// Detail pane
	DetailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimTeal)

	// Empty-state placeholder in the list area
	EmptyMsgStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Italic(true).
			Padding(1, 2)

	// Status line
	StatusStyle = lipgloss.NewStyle().
			Foreground(Amber)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// Confirmation prompt
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	// Modal form
	FormBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Indigo).
			Padding(1, 2)

	FormTitleStyle = lipgloss.NewStyle().
			Foreground(Indigo).
			Bold(true)

	FormErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	// Help footer
	HelpStyle = lipgloss.NewStyle().
			Foreground(MidGray)
)
