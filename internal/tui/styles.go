package tui

import "github.com/charmbracelet/lipgloss"

var (
	sectionHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	questionStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	citationTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	confidenceStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("150"))
	placeholderDocStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	currentLineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	statusBarStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle             = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	heroAccentColor      = lipgloss.Color("#7f5af0")
	heroTitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#a786df")).Italic(true)
	logoContainerStyle   = lipgloss.NewStyle().Padding(0, 1)
	logoFaceStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff4d0")).Background(lipgloss.Color("#1c1038"))
)
