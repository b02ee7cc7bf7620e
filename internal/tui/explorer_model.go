package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/catering"
	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/drill"
)

// Year prompt bounds. Data before 2000 predates the proforma archive.
const (
	minYear = 2000
	maxYear = 2100
)

// fetchOutcomeMsg delivers a finished fetch to the update loop.
type fetchOutcomeMsg struct {
	outcome drill.Outcome
}

// ExplorerModel is the Bubble Tea model for hierarchical drill-down
// exploration. It owns no navigation logic itself: every keypress maps to
// one engine operation, and every engine operation that needs data hands
// back a ticket the model schedules as a background command.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ExplorerModel struct {
	ctx       context.Context
	engine    *drill.Engine
	hierarchy catering.Hierarchy

	// base is the context the session opened with. The year prompt
	// rebuilds it so supplier and month-range filters survive a reset.
	base drill.Context

	// Navigation snapshot from the engine
	state     ViewState
	nav       drill.State
	depth     int
	selection []string

	// Interactive components
	table     table.Model
	loading   *LoadingState
	yearInput textinput.Model

	// promptYear routes key input to the year prompt.
	promptYear bool

	// notice is a transient status line, cleared on the next keypress.
	notice string

	// Display configuration
	width  int
	height int

	// pendingInit is the root fetch ticket issued at construction,
	// scheduled by Init.
	pendingInit drill.Pending

	logger zerolog.Logger
}

// NewExplorerModel opens a drill-down session on eng and returns the
// model for it. The engine must be freshly constructed; the model opens
// it with the given initial context and Init schedules the root fetch.
func NewExplorerModel(
	ctx context.Context,
	eng *drill.Engine,
	hierarchy catering.Hierarchy,
	initial drill.Context,
	logger zerolog.Logger,
) ExplorerModel {
	m := ExplorerModel{
		ctx:       ctx,
		engine:    eng,
		hierarchy: hierarchy,
		base:      initial.Clone(),
		state:     ViewStateLoading,
		width:     defaultWidth,
		height:    defaultHeight,
		yearInput: newYearInput(),
		logger:    logger,
	}
	m.nav, m.pendingInit = eng.Open(initial)
	m.loading = NewLoadingState("Loading " + m.levelTitle() + "...")
	m.rebuildTable()
	return m
}

func newYearInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "2026"
	ti.CharLimit = 4
	ti.Width = 6
	return ti
}

// Init schedules the root fetch and starts the spinner (Bubble Tea
// interface).
func (m ExplorerModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd(m.pendingInit))
}

// fetchCmd runs one fetch ticket in the background and feeds its outcome
// back as a message. References are captured before the closure so the
// goroutine never touches model fields.
func (m ExplorerModel) fetchCmd(p drill.Pending) tea.Cmd {
	eng := m.engine
	ctx := m.ctx
	return func() tea.Msg {
		return fetchOutcomeMsg{outcome: eng.Fetch(ctx, p)}
	}
}

// Update handles messages and updates the model state (Bubble Tea
// interface).
func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil

	case fetchOutcomeMsg:
		return m.handleOutcome(msg.outcome)

	case spinner.TickMsg:
		// Keep the spinner ticking only while a fetch is in flight.
		if m.nav.Loading {
			return m, m.loading.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.promptYear {
			return m.handleYearPromptKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleOutcome applies a finished fetch. Outcomes for views the user has
// already left are rejected by the engine and dropped here.
func (m ExplorerModel) handleOutcome(o drill.Outcome) (tea.Model, tea.Cmd) {
	st, ok := m.engine.Apply(o)
	if !ok {
		return m, nil
	}
	m.nav = st
	m.state = ViewStateBrowse
	m.rebuildTable()
	return m, nil
}

func (m ExplorerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.engine.Close()
		m.state = ViewStateQuitting
		return m, tea.Quit

	case keyEsc:
		return m.goBack()

	case keyEnter:
		return m.drillSelected()

	case keyTrend:
		return m.drillTrend()

	case keySpace:
		return m.toggleSelected()

	case keyCompare:
		return m.fanOut()

	case keyYear:
		m.promptYear = true
		m.yearInput.SetValue(strconv.Itoa(m.nav.Context.Int(catering.KeyYear)))
		m.yearInput.Focus()
		return m, textinput.Blink

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

// goBack restores the parent view from history. At the root it exits the
// program; the popped snapshot renders immediately with no fetch.
func (m ExplorerModel) goBack() (tea.Model, tea.Cmd) {
	st, ok := m.engine.GoBack()
	if !ok {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	m.nav = st
	m.depth = m.engine.Depth()
	m.selection = m.engine.Selection()
	m.state = ViewStateBrowse
	m.rebuildTable()
	return m, nil
}

// drillSelected drills into the highlighted row.
func (m ExplorerModel) drillSelected() (tea.Model, tea.Cmd) {
	spec := m.hierarchy.Spec(m.nav.Level)
	if spec.Next == "" {
		return m, nil
	}
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	return m.drill(spec.Next, row.Delta)
}

// drillTrend drills into the level's trend view, when it has one.
func (m ExplorerModel) drillTrend() (tea.Model, tea.Cmd) {
	spec := m.hierarchy.Spec(m.nav.Level)
	if spec.Trend == "" {
		return m, nil
	}
	return m.drill(spec.Trend, nil)
}

func (m ExplorerModel) drill(next drill.Level, delta drill.Context) (tea.Model, tea.Cmd) {
	st, p, err := m.engine.DrillInto(next, delta)
	if err != nil {
		m.logger.Debug().Err(err).Str("level", string(next)).Msg("drill ignored")
		return m, nil
	}
	return m.startFetch(st, p)
}

// startFetch installs the new loading view and schedules its ticket.
func (m ExplorerModel) startFetch(st drill.State, p drill.Pending) (tea.Model, tea.Cmd) {
	m.nav = st
	m.depth = m.engine.Depth()
	m.selection = m.engine.Selection()
	m.loading = NewLoadingState("Loading " + m.levelTitle() + "...")
	m.rebuildTable()
	return m, tea.Batch(m.loading.Init(), m.fetchCmd(p))
}

// toggleSelected toggles the highlighted row in the selection set.
func (m ExplorerModel) toggleSelected() (tea.Model, tea.Cmd) {
	if m.hierarchy.MultiSelect == "" || m.nav.Level != m.hierarchy.MultiSelect {
		return m, nil
	}
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	wasSelected := m.engine.IsSelected(row.ID)
	if _, err := m.engine.ToggleSelect(row.ID); err != nil {
		m.logger.Debug().Err(err).Msg("toggle ignored")
		return m, nil
	}
	m.selection = m.engine.Selection()
	if !wasSelected && !m.engine.IsSelected(row.ID) {
		m.notice = "Selection is full"
	}
	m.refreshRows()
	return m, nil
}

// fanOut drills into the comparison view for the selected rows.
func (m ExplorerModel) fanOut() (tea.Model, tea.Cmd) {
	if m.hierarchy.FanOut == "" {
		return m, nil
	}
	st, p, err := m.engine.FanOut(m.hierarchy.FanOut)
	switch {
	case errors.Is(err, drill.ErrEmptySelection):
		m.notice = "Select rows with space first"
		return m, nil
	case err != nil:
		m.logger.Debug().Err(err).Msg("fan-out ignored")
		return m, nil
	}
	return m.startFetch(st, p)
}

func (m ExplorerModel) handleYearPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		year, err := strconv.Atoi(strings.TrimSpace(m.yearInput.Value()))
		if err != nil || year < minYear || year > maxYear {
			m.notice = "Enter a four-digit year"
			return m, nil
		}
		m.promptYear = false
		m.yearInput.Blur()
		m.base = m.base.Merge(drill.Context{catering.KeyYear: year})
		st, p := m.engine.ResetToRoot(m.base)
		return m.startFetch(st, p)

	case keyEsc, keyCtrlC:
		m.promptYear = false
		m.yearInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.yearInput, cmd = m.yearInput.Update(msg)
	return m, cmd
}

// selectedRow returns the data row under the table cursor.
func (m ExplorerModel) selectedRow() (catering.Row, bool) {
	data, ok := m.nav.Data.(*catering.Table)
	if !ok || data.Empty() {
		return catering.Row{}, false
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(data.Rows) {
		return catering.Row{}, false
	}
	return data.Rows[cursor], true
}

// levelTitle is the heading for the current level.
func (m ExplorerModel) levelTitle() string {
	if spec := m.hierarchy.Spec(m.nav.Level); spec.Title != "" {
		return spec.Title
	}
	return m.hierarchy.Title
}

// rebuildTable recreates the table component from the current view data.
func (m *ExplorerModel) rebuildTable() {
	data, ok := m.nav.Data.(*catering.Table)
	if !ok || data == nil {
		data = catering.EmptyTable()
	}

	columns := make([]table.Column, len(data.Columns))
	for i, c := range data.Columns {
		width := c.Width
		if m.nav.Level == m.hierarchy.MultiSelect && i == 0 {
			width += len(selectedMark)
		}
		columns[i] = table.Column{Title: c.Title, Width: width}
	}

	height := m.height - chromeHeight
	if rowCap := len(data.Rows) + 1; height > rowCap {
		height = rowCap
	}
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.buildRows(data)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	m.table = t
}

// refreshRows re-renders rows in place, preserving the cursor. Used when
// only selection markers changed.
func (m *ExplorerModel) refreshRows() {
	data, ok := m.nav.Data.(*catering.Table)
	if !ok || data == nil {
		return
	}
	cursor := m.table.Cursor()
	m.table.SetRows(m.buildRows(data))
	m.table.SetCursor(cursor)
}

// selectedMark prefixes multi-selected rows.
const selectedMark = "* "

func (m *ExplorerModel) buildRows(data *catering.Table) []table.Row {
	multiSelect := m.hierarchy.MultiSelect != "" && m.nav.Level == m.hierarchy.MultiSelect
	rows := make([]table.Row, len(data.Rows))
	for i, r := range data.Rows {
		cells := make([]string, len(r.Cells))
		for j, cell := range r.Cells {
			if j < len(data.Columns) && data.Columns[j].Align == catering.AlignRight {
				cells[j] = padLeft(cell, data.Columns[j].Width)
			} else {
				cells[j] = cell
			}
		}
		if multiSelect && len(cells) > 0 {
			if m.engine.IsSelected(r.ID) {
				cells[0] = selectedMark + cells[0]
			} else {
				cells[0] = strings.Repeat(" ", len(selectedMark)) + cells[0]
			}
		}
		rows[i] = table.Row(cells)
	}
	return rows
}

// padLeft right-aligns a cell within its column width.
func padLeft(s string, width int) string {
	if gap := width - len([]rune(s)); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
