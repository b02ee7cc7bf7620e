package tui

// ViewState represents the top-level state of the explorer TUI.
type ViewState int

const (
	// ViewStateLoading indicates the first fetch has not settled yet.
	ViewStateLoading ViewState = iota
	// ViewStateBrowse indicates the table is interactive.
	ViewStateBrowse
	// ViewStateQuitting indicates the application is exiting.
	ViewStateQuitting
)

// Key bindings handled by the explorer.
const (
	keyEnter   = "enter"
	keyEsc     = "esc"
	keyQuit    = "q"
	keyCtrlC   = "ctrl+c"
	keySpace   = " "
	keyTrend   = "t"
	keyCompare = "c"
	keyYear    = "y"
)

// Default dimensions used before the first window size message arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// chromeHeight is the vertical space the header, breadcrumb, footer, and
// help lines take away from the table.
const chromeHeight = 9
