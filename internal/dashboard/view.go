package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders one frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width < 40 {
		width = 80
	}

	header := m.renderHeader(width)

	var page string
	switch m.page {
	case PageRepositories:
		page = m.renderRepositoriesPage(width)
	case PageActivity:
		page = m.renderActivityPage(width)
	case PageSettings:
		page = m.renderSettingsPage(width)
	default:
		page = m.renderDashboardPage(width)
	}

	statusBar := m.renderStatusBar(width)

	out := lipgloss.JoinVertical(lipgloss.Left, header, page, statusBar)

	if m.showHelp {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.renderHelpOverlay())
	}

	return out
}

// renderHeader draws the tab bar.
func (m Model) renderHeader(width int) string {
	tabs := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		label := fmt.Sprintf("%d:%s", i+1, tabLabels[i])
		if Page(i) == m.page {
			tabs = append(tabs, TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, TabInactiveStyle.Render(label))
		}
	}

	line := CardTitleStyle.Render("hubdeck") + "  " + strings.Join(tabs, MutedStyle.Render(" | "))
	return HeaderStyle.Width(width - 2).Render(line)
}

var tabLabels = [pageCount]string{"Dashboard", "Repos", "Activity", "Settings"}

// renderDashboardPage lays out the overview, spotlight and logs on the
// left with the system card on the right.
func (m Model) renderDashboardPage(width int) string {
	leftWidth := width * 7 / 10
	rightWidth := width - leftWidth

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderOverviewCard(leftWidth),
		m.renderRepoSpotlight(leftWidth, 5),
		m.renderLogCard(leftWidth),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderClockCard(rightWidth),
		m.renderSystemCard(rightWidth),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderRepositoriesPage(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderRepoSpotlight(width, 10),
		m.renderRecentlyPushed(width, 10),
	)
}

func (m Model) renderActivityPage(width int) string {
	return m.renderActivityFeed(width, 20)
}

func (m Model) renderSettingsPage(width int) string {
	var b strings.Builder

	b.WriteString(CardTitleStyle.Render("Keyboard Controls"))
	b.WriteString("\n")
	for _, bind := range KeybindHelp() {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			ValueStyle.Render(fmt.Sprintf("%8s", bind[0])),
			LabelStyle.Render(bind[1])))
	}

	b.WriteString("\n")
	b.WriteString(CardTitleStyle.Render("Animations"))
	b.WriteString("\n  ")
	switch {
	case m.fx.AnimationsPaused:
		b.WriteString(MetricStyle(WarningThreshold).Render("PAUSED"))
	case m.fx.ReducedMotion:
		b.WriteString(MetricStyle(WarningThreshold).Render("REDUCED"))
	default:
		b.WriteString(MetricStyle(0).Render("ENABLED"))
	}
	b.WriteString(LabelStyle.Render("  (press p to toggle pause)"))
	b.WriteString("\n\n")

	b.WriteString(CardTitleStyle.Render("GitHub API Rate Limit"))
	b.WriteString("\n  ")
	rl := m.github.RateLimit
	rlStyle := MetricStyle(rl.UsagePercent())
	b.WriteString(rlStyle.Render(fmt.Sprintf("%d/%d remaining", rl.Remaining, rl.Limit)))
	if rl.ResetAt != nil {
		b.WriteString(LabelStyle.Render("  resets " + FormatRelative(*rl.ResetAt, time.Now())))
	}
	b.WriteString("\n")

	return CardStyle.Width(width - 2).Render(
		CardTitleStyle.Foreground(ColorHighlight).Render(PageSettings.Title()) + "\n\n" + b.String())
}

// renderHelpOverlay draws the keybinding summary toggled with "?".
func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(CardTitleStyle.Render("Help"))
	b.WriteString("\n")
	for _, bind := range KeybindHelp() {
		b.WriteString(fmt.Sprintf("%8s  %s\n",
			ValueStyle.Render(bind[0]), LabelStyle.Render(bind[1])))
	}
	return HelpOverlayStyle.Render(strings.TrimRight(b.String(), "\n"))
}
