package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hubdeck/hubdeck/internal/logger"
)

// renderOverviewCard shows the profile, aggregate stats and fetch status.
func (m Model) renderOverviewCard(width int) string {
	var b strings.Builder
	b.WriteString(CardTitleStyle.Render("GitHub Overview"))
	b.WriteString("\n\n")

	if m.github.Profile == nil {
		if m.github.Status.IsFetching() {
			b.WriteString(LabelStyle.Render("Loading GitHub profile..."))
		} else {
			b.WriteString(MutedStyle.Render("No profile data\nPress 'r' to refresh"))
		}
		return CardStyle.Width(width - 2).Render(b.String())
	}

	p := m.github.Profile
	name := p.Name
	if name == "" {
		name = p.Login
	}
	b.WriteString(ValueStyle.Bold(true).Render(name))
	b.WriteString(MutedStyle.Render(fmt.Sprintf(" (@%s)", p.Login)))
	b.WriteString("\n")
	if p.Bio != "" {
		b.WriteString(LabelStyle.Render(Truncate(p.Bio, 60)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("[F] %s followers  %s following\n",
		ValueStyle.Render(FormatCount(uint64(p.Followers))),
		ValueStyle.Render(FormatCount(uint64(p.Following)))))

	stats := m.github.Stats
	b.WriteString(fmt.Sprintf("[*] %s  [Y] %s  [R] %s repos",
		lipgloss.NewStyle().Foreground(ColorStar).Render(FormatCount(uint64(stats.TotalStars))),
		ValueStyle.Render(FormatCount(uint64(stats.TotalForks))),
		ValueStyle.Render(fmt.Sprintf("%d", stats.TotalRepos))))

	switch {
	case m.github.Status.IsFetching():
		b.WriteString("\n\n")
		b.WriteString(MetricStyle(WarningThreshold).Render("[~] Refreshing..."))
	case m.github.Status.IsError():
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render("[!] " + Truncate(m.github.Status.Reason(), 40)))
	}

	return CardStyle.Width(width - 2).Render(b.String())
}

// renderRepoSpotlight lists the most starred non-fork repos.
func (m Model) renderRepoSpotlight(width, limit int) string {
	var b strings.Builder
	b.WriteString(CardTitleStyle.Foreground(ColorStar).Render("Top Repositories"))
	b.WriteString("\n\n")

	top := m.github.TopReposByStars(limit)
	if len(top) == 0 {
		if m.github.Status.IsFetching() {
			b.WriteString(LabelStyle.Render("Loading repositories..."))
		} else {
			b.WriteString(MutedStyle.Render("No repositories loaded"))
		}
		return CardStyle.Width(width - 2).Render(b.String())
	}

	for i, repo := range top {
		lang := repo.Language
		if lang == "" {
			lang = "???"
		}
		b.WriteString(fmt.Sprintf("#%-2d %s %s %s\n",
			i+1,
			CardTitleStyle.Render(repo.Name),
			lipgloss.NewStyle().Foreground(ColorStar).Render(fmt.Sprintf("*%d", repo.Stars)),
			MutedStyle.Render("["+lang+"]")))
		if repo.Description != "" {
			b.WriteString("    " + LabelStyle.Render(Truncate(repo.Description, 50)) + "\n")
		}
	}

	return CardStyle.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// renderRecentlyPushed lists repos by most recent push.
func (m Model) renderRecentlyPushed(width, limit int) string {
	var b strings.Builder
	b.WriteString(CardTitleStyle.Foreground(ColorHealthy).Render("Recently Pushed"))
	b.WriteString("\n\n")

	repos := m.github.RecentlyPushed(limit)
	if len(repos) == 0 {
		b.WriteString(MutedStyle.Render("No repositories loaded"))
		return CardStyle.Width(width - 2).Render(b.String())
	}

	now := time.Now()
	for _, repo := range repos {
		pushed := "???"
		if repo.PushedAt != nil {
			pushed = FormatRelative(*repo.PushedAt, now)
		}
		b.WriteString(fmt.Sprintf("%s %s\n",
			CardTitleStyle.Render(repo.Name),
			MutedStyle.Render(pushed)))
	}

	return CardStyle.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// renderActivityFeed lists recent events with type icons; events first
// seen this cycle are highlighted.
func (m Model) renderActivityFeed(width, limit int) string {
	var b strings.Builder
	b.WriteString(CardTitleStyle.Foreground(ColorHighlight).Render("Activity Feed"))
	b.WriteString("\n\n")

	if len(m.github.Events) == 0 {
		if m.github.Status.IsFetching() {
			b.WriteString(LabelStyle.Render("Loading activity..."))
		} else {
			b.WriteString(MutedStyle.Render("No recent activity"))
		}
		return CardStyle.Width(width - 2).Render(b.String())
	}

	now := time.Now()
	events := m.github.Events
	if len(events) > limit {
		events = events[:limit]
	}
	for _, event := range events {
		iconStyle := ValueStyle
		if event.IsNew {
			iconStyle = NewEventStyle
		}

		repoShort := event.RepoName
		if idx := strings.LastIndex(repoShort, "/"); idx >= 0 {
			repoShort = repoShort[idx+1:]
		}

		b.WriteString(fmt.Sprintf("%s %s %s %s",
			iconStyle.Render(event.Type.Icon()),
			ValueStyle.Render(event.Type.Verb()),
			CardTitleStyle.Render(repoShort),
			MutedStyle.Render(FormatRelative(event.CreatedAt, now))))
		if event.IsNew {
			b.WriteString(" " + NewEventStyle.Render("NEW"))
		}
		b.WriteString("\n")
	}

	return CardStyle.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// renderSystemCard shows CPU, memory, uptime and host identity.
func (m Model) renderSystemCard(width int) string {
	sys := m.system
	barWidth := 15

	var b strings.Builder
	b.WriteString(CardTitleStyle.Render("System"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("CPU %s %s\n",
		ProgressBar(barWidth, sys.CPUPercent),
		MetricStyle(sys.CPUPercent).Render(fmt.Sprintf("%5.1f%%", sys.CPUPercent))))

	b.WriteString(fmt.Sprintf("MEM %s %s\n",
		ProgressBar(barWidth, sys.MemoryPercent),
		MetricStyle(sys.MemoryPercent).Render(fmt.Sprintf("%5.1f%%", sys.MemoryPercent))))
	b.WriteString("    " + MutedStyle.Render(
		FormatBytes(sys.MemoryUsed)+" / "+FormatBytes(sys.MemoryTotal)) + "\n\n")

	b.WriteString(LabelStyle.Render("Uptime: ") +
		lipgloss.NewStyle().Foreground(ColorHealthy).Render(sys.UptimeFormatted()) + "\n")
	b.WriteString(LabelStyle.Render("Host:   ") + CardTitleStyle.Render(sys.Hostname) + "\n")
	b.WriteString(LabelStyle.Render("OS:     ") +
		ValueStyle.Render(fmt.Sprintf("%s (%d cpus)", sys.OS, sys.NumCPU)))

	return CardStyle.Width(width - 2).Render(b.String())
}

// renderClockCard shows the wall clock; the seconds line breathes with
// the pulse animation.
func (m Model) renderClockCard(width int) string {
	now := time.Now()

	clockStyle := CardTitleStyle
	if m.fx.ShouldAnimate() && m.fx.PulseValue() < 0.35 {
		clockStyle = clockStyle.Foreground(ColorTextDim)
	}

	content := clockStyle.Render(now.Format("15:04:05")) + "\n" +
		MutedStyle.Render(now.Format("Monday, January 2, 2006"))
	return CardStyle.Width(width - 2).Render(content)
}

// renderLogCard shows the tail of the in-process log ring.
func (m Model) renderLogCard(width int) string {
	content := CardTitleStyle.Foreground(ColorTextDim).Render("Logs") + "\n" + m.logView.View()
	return CardStyle.Width(width - 2).Render(content)
}

// renderLogLines formats ring entries for the log viewport.
func renderLogLines(ring *logger.Ring) string {
	entries := ring.Entries()
	if len(entries) == 0 {
		return MutedStyle.Render("No log messages yet")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		var levelStyle lipgloss.Style
		switch e.Level {
		case "ERR", "FTL":
			levelStyle = ErrorStyle
		case "WRN":
			levelStyle = MetricStyle(WarningThreshold)
		case "INF":
			levelStyle = CardTitleStyle
		default:
			levelStyle = MutedStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s",
			levelStyle.Render("["+e.Level+"]"), e.Message))
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar draws fetch status, rate budget, page indicator and the
// help hint along the bottom.
func (m Model) renderStatusBar(width int) string {
	spinner := " "
	if m.fx.AnimationsPaused {
		spinner = MetricStyle(WarningThreshold).Render("[PAUSED]")
	} else if m.fx.ShouldAnimate() {
		frame := int(m.fx.FrameCount/3) % len(SpinnerFrames)
		spinner = CardTitleStyle.Render(SpinnerFrames[frame])
	}

	status := m.statusMessage()
	statusStyle := MutedStyle
	switch {
	case m.github.Status.IsFetching():
		statusStyle = MetricStyle(WarningThreshold)
	case m.github.Status.IsError():
		statusStyle = ErrorStyle
	case m.github.Status.IsSuccess():
		statusStyle = NewEventStyle
	}

	rl := m.github.RateLimit
	rateStyle := MutedStyle
	if rl.IsLow() {
		rateStyle = ErrorStyle
	}

	parts := []string{
		spinner,
		statusStyle.Render(status),
		rateStyle.Render(fmt.Sprintf("API: %d/%d", rl.Remaining, rl.Limit)),
		CardTitleStyle.Render(fmt.Sprintf("[%d/%d] %s", int(m.page)+1, pageCount, m.page.Title())),
		MutedStyle.Render("Press ? for help"),
	}

	return StatusBarStyle.Width(width - 2).Render(strings.Join(parts, MutedStyle.Render(" │ ")))
}

// statusMessage summarizes the fetch state for the status bar.
func (m Model) statusMessage() string {
	now := time.Now()
	switch {
	case m.github.Status.IsFetching():
		return "Fetching GitHub data..."
	case m.github.Status.IsError():
		return "Error: " + m.github.Status.Reason()
	case m.github.Status.IsSuccess():
		if m.github.LastUpdated != nil {
			return "Updated: " + FormatRelative(*m.github.LastUpdated, now)
		}
		return "Data loaded"
	default:
		if m.github.LastUpdated != nil {
			return "Last updated: " + FormatRelative(*m.github.LastUpdated, now)
		}
		return "No data loaded"
	}
}
