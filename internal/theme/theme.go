package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header        *lipgloss.Style
	Footer        *lipgloss.Style
	Error         *lipgloss.Style
	Info          *lipgloss.Style
	Filter        *lipgloss.Style
	FilterPrompt  *lipgloss.Style
	Cursor        *lipgloss.Style
	WindowRow     *lipgloss.Style
	ActiveWindow  *lipgloss.Style
	Card          *lipgloss.Style
	CardCursor    *lipgloss.Style
	CardTitle     *lipgloss.Style
	CardURL       *lipgloss.Style
	Current       *lipgloss.Style
	Source        *lipgloss.Style
	Target        *lipgloss.Style
	Marquee       *lipgloss.Style
	StagedBadge   *lipgloss.Style
	Dismiss       *lipgloss.Style
	FooterButton  *lipgloss.Style
	FooterPressed *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	WindowRow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ActiveWindow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Card: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	),
	CardCursor: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")),
	),
	CardTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	CardURL: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	// The three selection colours: current is blue, source green, target
	// orange. Card borders and window strip rows share them.
	Current: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Source: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
	),
	Target: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Marquee: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("201")),
	),
	StagedBadge: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("40")),
	),
	Dismiss: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	),
	FooterButton: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	FooterPressed: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("255")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
