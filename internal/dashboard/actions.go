package dashboard

// Page identifies one of the dashboard's navigable pages.
type Page int

const (
	PageDashboard Page = iota
	PageRepositories
	PageActivity
	PageSettings

	pageCount = 4
)

// Title returns the display name for the page.
func (p Page) Title() string {
	switch p {
	case PageDashboard:
		return "Dashboard"
	case PageRepositories:
		return "Repositories"
	case PageActivity:
		return "Activity Feed"
	case PageSettings:
		return "Settings & Help"
	default:
		return "Dashboard"
	}
}

// Next cycles to the next page, wrapping around.
func (p Page) Next() Page {
	return Page((int(p) + 1) % pageCount)
}

// Prev cycles to the previous page, wrapping around.
func (p Page) Prev() Page {
	return Page((int(p) + pageCount - 1) % pageCount)
}

// PageFromIndex maps a tab index to a page, defaulting to the dashboard.
func PageFromIndex(i int) Page {
	if i < 0 || i >= pageCount {
		return PageDashboard
	}
	return Page(i)
}

// FocusArea identifies which region of the UI receives list navigation.
type FocusArea int

const (
	FocusMain FocusArea = iota
	FocusSidebar
	FocusList
)

// Next cycles focus through the UI areas.
func (f FocusArea) Next() FocusArea {
	switch f {
	case FocusMain:
		return FocusSidebar
	case FocusSidebar:
		return FocusList
	default:
		return FocusMain
	}
}

// ActionKind enumerates everything a keypress can request.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionRefresh
	ActionNextPage
	ActionPrevPage
	ActionGoToPage
	ActionCycleFocus
	ActionScrollUp
	ActionScrollDown
	ActionSelectNext
	ActionToggleHelp
	ActionTogglePause
)

// Action is one queued UI intent. Page is only meaningful for
// ActionGoToPage.
type Action struct {
	Kind ActionKind
	Page Page
}

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyRefresh     = "r"
	KeyCycleFocus  = "tab"
	KeyPrevPageTab = "shift+tab"
	KeyPrevPage    = "left"
	KeyNextPage    = "right"
	KeyToggleHelp  = "?"
	KeyToggleHelpH = "h"
	KeyTogglePause = "p"
	KeyScrollUp    = "up"
	KeyScrollUpK   = "k"
	KeyScrollDown  = "down"
	KeyScrollDownJ = "j"
	KeySelect      = "enter"
)

// ActionFromKey maps a key string (tea.KeyMsg.String()) to an action.
// Pure lookup with no side effects; unknown keys map to ActionNone.
func ActionFromKey(key string) Action {
	switch key {
	case KeyQuit, KeyQuitAlt:
		return Action{Kind: ActionQuit}
	case KeyRefresh:
		return Action{Kind: ActionRefresh}
	case KeyCycleFocus:
		return Action{Kind: ActionCycleFocus}
	case KeyPrevPageTab, KeyPrevPage:
		return Action{Kind: ActionPrevPage}
	case KeyNextPage:
		return Action{Kind: ActionNextPage}
	case "1":
		return Action{Kind: ActionGoToPage, Page: PageDashboard}
	case "2":
		return Action{Kind: ActionGoToPage, Page: PageRepositories}
	case "3":
		return Action{Kind: ActionGoToPage, Page: PageActivity}
	case "4":
		return Action{Kind: ActionGoToPage, Page: PageSettings}
	case KeyToggleHelp, KeyToggleHelpH:
		return Action{Kind: ActionToggleHelp}
	case KeyTogglePause:
		return Action{Kind: ActionTogglePause}
	case KeyScrollUp, KeyScrollUpK, "pgup":
		return Action{Kind: ActionScrollUp}
	case KeyScrollDown, KeyScrollDownJ, "pgdown":
		return Action{Kind: ActionScrollDown}
	case KeySelect:
		return Action{Kind: ActionSelectNext}
	default:
		return Action{Kind: ActionNone}
	}
}

// KeybindHelp returns the key/description pairs shown on the help pages.
func KeybindHelp() [][2]string {
	return [][2]string{
		{"q", "Quit"},
		{"r", "Refresh GitHub"},
		{"1-4", "Switch pages"},
		{"Tab", "Cycle focus"},
		{"?/h", "Toggle help"},
		{"p", "Pause animations"},
		{"Up/k", "Scroll up"},
		{"Dn/j", "Scroll down"},
		{"L/R", "Prev/Next page"},
	}
}
