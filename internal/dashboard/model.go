// Package dashboard implements the terminal UI: a fixed-cadence frame
// loop that drains queued key actions, pulls the latest poller snapshots,
// advances the animation clock, and renders the current page. The loop
// itself never touches the network or disk.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hubdeck/hubdeck/internal/github"
	"github.com/hubdeck/hubdeck/internal/logger"
	"github.com/hubdeck/hubdeck/internal/sysinfo"
	"github.com/hubdeck/hubdeck/internal/watch"
)

// TargetFPS is the frame cadence of the UI loop.
const TargetFPS = 30

const frameInterval = time.Second / TargetFPS

// frameMsg drives one frame of the loop.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	githubSub *watch.Sub[github.State]
	systemSub *watch.Sub[sysinfo.State]
	commands  chan<- github.Command
	ring      *logger.Ring

	github github.State
	system sysinfo.State

	page          Page
	focus         FocusArea
	scrollOffset  int
	selectedIndex int
	showHelp      bool
	fx            FxState
	queue         *actionQueue
	logView       viewport.Model

	width     int
	height    int
	lastFrame time.Time
	quitting  bool
}

// NewModel builds the dashboard model around the poller feeds. The
// initial GitHub state (usually the cached snapshot) seeds the display so
// the first frame is not empty.
func NewModel(
	githubFeed *watch.Feed[github.State],
	systemFeed *watch.Feed[sysinfo.State],
	commands chan<- github.Command,
	ring *logger.Ring,
	reducedMotion bool,
) Model {
	m := Model{
		githubSub: githubFeed.Subscribe(),
		systemSub: systemFeed.Subscribe(),
		commands:  commands,
		ring:      ring,
		queue:     newActionQueue(),
		logView:   viewport.New(0, 0),
		lastFrame: time.Now(),
	}
	m.fx.ReducedMotion = reducedMotion

	// Seed from whatever the feeds already hold.
	m.github = m.githubSub.Take()
	m.system = m.systemSub.Take()
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameTick()
}

// Update handles input and frame ticks. Key presses only enqueue actions;
// all state mutation happens on the frame tick so input can never outrun
// rendering.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.queue.Push(ActionFromKey(msg.String()))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 4
		m.logView.Height = logViewportHeight(msg.Height)
		return m, nil

	case frameMsg:
		return m.onFrame(time.Time(msg))
	}

	return m, nil
}

func (m Model) onFrame(now time.Time) (tea.Model, tea.Cmd) {
	var quit bool
	for _, action := range m.queue.Drain() {
		if m.apply(action) {
			quit = true
		}
	}
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	// Last write wins; intermediate snapshots published since the
	// previous frame are deliberately skipped.
	if m.githubSub.Changed() {
		m.github = m.githubSub.Take()
	}
	if m.systemSub.Changed() {
		m.system = m.systemSub.Take()
	}

	delta := now.Sub(m.lastFrame)
	if delta < 0 {
		delta = 0
	}
	m.fx.Tick(float64(delta.Milliseconds()))
	m.lastFrame = now

	m.refreshLogView()

	return m, frameTick()
}

// apply executes one queued action and reports whether it requests quit.
func (m *Model) apply(a Action) bool {
	switch a.Kind {
	case ActionQuit:
		logger.Info().Msg("quit requested")
		return true

	case ActionRefresh:
		logger.Info().Msg("manual refresh requested")
		m.sendCommand(github.CommandRefresh)

	case ActionNextPage:
		m.goToPage(m.page.Next())

	case ActionPrevPage:
		m.goToPage(m.page.Prev())

	case ActionGoToPage:
		m.goToPage(a.Page)

	case ActionCycleFocus:
		m.focus = m.focus.Next()

	case ActionToggleHelp:
		m.showHelp = !m.showHelp

	case ActionTogglePause:
		m.fx.AnimationsPaused = !m.fx.AnimationsPaused
		logger.Info().Bool("paused", m.fx.AnimationsPaused).Msg("animations toggled")

	case ActionScrollUp:
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
		m.logView.ScrollUp(1)

	case ActionScrollDown:
		m.scrollOffset++
		m.logView.ScrollDown(1)

	case ActionSelectNext:
		m.selectedIndex++
	}
	return false
}

func (m *Model) goToPage(p Page) {
	if m.page == p {
		return
	}
	m.page = p
	m.scrollOffset = 0
	m.fx.StartTransition()
}

// sendCommand forwards a command to the poller without ever blocking the
// frame loop. A command already in flight makes this a no-op.
func (m *Model) sendCommand(cmd github.Command) {
	select {
	case m.commands <- cmd:
	default:
	}
}

func (m *Model) refreshLogView() {
	atBottom := m.logView.AtBottom()
	m.logView.SetContent(renderLogLines(m.ring))
	if atBottom {
		m.logView.GotoBottom()
	}
}

func logViewportHeight(totalHeight int) int {
	h := totalHeight/5 - 2
	if h < 3 {
		h = 3
	}
	return h
}
