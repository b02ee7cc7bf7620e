package tui

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all explorer views.
var (
	// ColorHeader is used for titles and table headers.
	ColorHeader = lipgloss.Color("39")

	// ColorValue is used for primary data text.
	ColorValue = lipgloss.Color("252")

	// ColorLabel is used for breadcrumbs and secondary labels.
	ColorLabel = lipgloss.Color("245")

	// ColorMuted is used for help text and separators.
	ColorMuted = lipgloss.Color("240")

	// ColorHighlight marks the cursor row and transient notices.
	ColorHighlight = lipgloss.Color("212")

	// ColorAccent marks multi-selected rows.
	ColorAccent = lipgloss.Color("78")

	// ColorError is used for fetch failure banners.
	ColorError = lipgloss.Color("196")

	// ColorSpinner is used for the loading indicator.
	ColorSpinner = lipgloss.Color("205")
)

// Styles shared by all explorer views.
var (
	// HeaderStyle renders the hierarchy title line.
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	// BreadcrumbStyle renders the navigation trail.
	BreadcrumbStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	// TableHeaderStyle renders table column headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorHeader).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted)

	// TableSelectedStyle renders the cursor row.
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	// FooterStyle renders the totals row under a table.
	FooterStyle = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	// HelpStyle renders the key binding hints.
	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// ErrorStyle renders fetch failure banners.
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	// NoticeStyle renders transient status messages.
	NoticeStyle = lipgloss.NewStyle().Foreground(ColorHighlight)

	// SpinnerStyle colors the loading spinner.
	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorSpinner)

	// SelectionStyle renders the selection counter at a multi-select level.
	SelectionStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)
