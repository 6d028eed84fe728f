package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorBorder    = lipgloss.Color("#2A2A4A")
	ColorAccent    = lipgloss.Color("#00FFFF") // cyan, active tabs and card borders
	ColorHighlight = lipgloss.Color("#FF2E97") // pink, page titles
	ColorHealthy   = lipgloss.Color("#39FF14")
	ColorWarning   = lipgloss.Color("#FFAA00")
	ColorCritical  = lipgloss.Color("#FF0055")
	ColorStar      = lipgloss.Color("#FFD700")
	ColorText      = lipgloss.Color("#FFFFFF")
	ColorTextDim   = lipgloss.Color("#B4B4D0")
	ColorTextMuted = lipgloss.Color("#6B6B8D")
)

// Usage thresholds for metric coloring
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	HeaderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	NewEventStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	HelpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(ColorAccent).
				Padding(1, 2)
)

// SpinnerFrames animate the status-bar activity indicator.
var SpinnerFrames = []string{"|", "/", "-", "\\"}

// MetricColor picks a color for a percentage metric using the usage
// thresholds.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a foreground style for the metric's severity.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

// ProgressBar renders a fixed-width usage bar colored by severity.
func ProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return MetricStyle(percent).Render(bar)
}
