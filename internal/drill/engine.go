package drill

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// defaultMaxSelection bounds the multi-select set when the config does not
// override it. Eight series is the most a side-by-side comparison view can
// render legibly in a typical terminal width.
const defaultMaxSelection = 8

// FetchFunc loads the payload for one (level, context) pair. It is called
// at most once per issued ticket, never concurrently with engine state
// mutation, and must honor ctx cancellation. Returning (nil, nil) is
// treated as a failure.
type FetchFunc func(ctx context.Context, level Level, c Context) (Data, error)

// Config describes one navigation hierarchy.
type Config struct {
	// Root is the level the engine opens and resets to.
	Root Level

	// MultiSelect names the single level that supports selection, or ""
	// when the hierarchy has none.
	MultiSelect Level

	// MaxSelection caps the selection set size. Defaults to 8.
	MaxSelection int

	// SelectionKey is the context key that carries the selected IDs into
	// a fan-out fetch. Required when MultiSelect is set.
	SelectionKey string

	// Fetch loads data for a view. Required.
	Fetch FetchFunc

	// Empty produces the placeholder payload shown after a failed fetch.
	// Required.
	Empty func() Data

	// Logger receives engine lifecycle events at debug level and fetch
	// failures at warn level. The zero value disables logging.
	Logger zerolog.Logger
}

// Engine is a hierarchical drill-down navigator. It owns the current view
// state, a linear history of parent views, and the bounded selection set,
// and it serializes fetch results so only the most recent navigation's
// data is ever applied.
//
// Navigation methods mutate state synchronously and return a Pending
// ticket when new data is needed; the caller runs Fetch in the background
// and feeds the Outcome to Apply. This keeps the engine non-blocking
// inside single-threaded event loops such as Bubble Tea programs.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	// open is false before Open and after Close or a root-level back.
	open bool

	// state is the current view.
	state State

	// history holds snapshots of ancestor views, innermost last.
	history []State

	// selection holds selected row IDs in toggle order.
	selection []string

	// seq numbers issued fetch tickets.
	seq uint64

	// await is the ticket sequence whose outcome may still be applied,
	// or zero when no fetch is live.
	await uint64
}

// New validates cfg and returns an engine. The engine starts closed; call
// Open to begin navigating.
func New(cfg Config) (*Engine, error) {
	if cfg.Root == "" {
		return nil, errors.New("drill: config requires a root level")
	}
	if cfg.Fetch == nil {
		return nil, errors.New("drill: config requires a fetch function")
	}
	if cfg.Empty == nil {
		return nil, errors.New("drill: config requires an empty-data constructor")
	}
	if cfg.MultiSelect != "" && cfg.SelectionKey == "" {
		return nil, errors.New("drill: multi-select level requires a selection key")
	}
	if cfg.MaxSelection <= 0 {
		cfg.MaxSelection = defaultMaxSelection
	}
	return &Engine{cfg: cfg}, nil
}

// Open starts navigation at the root level with the given initial context
// and issues a fetch ticket for it. Any prior state, history, and
// selection are discarded, so Open also serves as a full reset.
func (e *Engine) Open(initial Context) (State, Pending) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.openLocked(initial)
}

func (e *Engine) openLocked(initial Context) (State, Pending) {
	e.open = true
	e.history = nil
	e.selection = nil
	e.state = State{
		Level:   e.cfg.Root,
		Context: initial.Clone(),
		Loading: true,
	}
	p := e.issueLocked()
	e.cfg.Logger.Debug().
		Str("level", string(e.state.Level)).
		Str("request_id", p.ID).
		Msg("drill-down opened")
	return e.state.snapshot(), p
}

// DrillInto pushes the current view onto the history stack and navigates
// to next, merging delta over the inherited context. The selection set is
// cleared unless next is itself the multi-select level. Returns ErrClosed
// when the engine is not open.
func (e *Engine) DrillInto(next Level, delta Context) (State, Pending, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return State{}, Pending{}, ErrClosed
	}
	s, p := e.drillLocked(next, delta)
	return s, p, nil
}

func (e *Engine) drillLocked(next Level, delta Context) (State, Pending) {
	e.history = append(e.history, e.state.snapshot())
	e.state = State{
		Level:   next,
		Context: e.state.Context.Merge(delta),
		Loading: true,
	}
	if next != e.cfg.MultiSelect || e.cfg.MultiSelect == "" {
		e.selection = nil
	}
	p := e.issueLocked()
	e.cfg.Logger.Debug().
		Str("level", string(next)).
		Int("depth", len(e.history)).
		Str("request_id", p.ID).
		Msg("drilled into level")
	return e.state.snapshot(), p
}

// GoBack pops the most recent history snapshot and restores it verbatim,
// including its data, without refetching. Any in-flight fetch for the
// abandoned view is retired so its result can no longer apply. At the
// root (empty history) GoBack closes the engine and returns false, which
// callers treat as the signal to dismiss the view entirely.
func (e *Engine) GoBack() (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return State{}, false
	}
	e.await = 0
	if len(e.history) == 0 {
		e.open = false
		e.state = State{}
		e.selection = nil
		e.cfg.Logger.Debug().Msg("drill-down closed from root")
		return State{}, false
	}
	last := len(e.history) - 1
	e.state = e.history[last]
	e.history = e.history[:last]
	// A snapshot taken while its fetch was still in flight has no data to
	// restore. Going back never refetches, so normalize it to an empty,
	// settled view.
	if e.state.Loading {
		e.state.Loading = false
		if e.state.Data == nil {
			e.state.Data = e.cfg.Empty()
		}
	}
	if e.state.Level != e.cfg.MultiSelect || e.cfg.MultiSelect == "" {
		e.selection = nil
	}
	e.cfg.Logger.Debug().
		Str("level", string(e.state.Level)).
		Int("depth", len(e.history)).
		Msg("navigated back")
	return e.state.snapshot(), true
}

// ResetToRoot discards all navigation state and reopens the hierarchy at
// the root with a fresh context. It behaves exactly like Open on a closed
// engine and is how parameter changes that invalidate the whole hierarchy
// (such as picking a different year) are expressed.
func (e *Engine) ResetToRoot(initial Context) (State, Pending) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.openLocked(initial)
}

// ToggleSelect adds id to the selection set, or removes it when already
// present. Adding beyond MaxSelection is a silent no-op; the set is
// capacity-bounded, not an error source. Only valid at the configured
// multi-select level.
func (e *Engine) ToggleSelect(id string) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return State{}, ErrClosed
	}
	if e.cfg.MultiSelect == "" || e.state.Level != e.cfg.MultiSelect {
		return State{}, ErrNotMultiSelect
	}
	for i, sel := range e.selection {
		if sel == id {
			e.selection = append(e.selection[:i], e.selection[i+1:]...)
			return e.state.snapshot(), nil
		}
	}
	if len(e.selection) >= e.cfg.MaxSelection {
		e.cfg.Logger.Debug().
			Int("max_selection", e.cfg.MaxSelection).
			Str("id", id).
			Msg("selection at capacity, toggle ignored")
		return e.state.snapshot(), nil
	}
	e.selection = append(e.selection, id)
	return e.state.snapshot(), nil
}

// FanOut drills from the multi-select level into target, carrying the
// current selection under the configured selection key. The selection
// must be non-empty. The selection order is preserved in the emitted
// context so result series render in toggle order.
func (e *Engine) FanOut(target Level) (State, Pending, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return State{}, Pending{}, ErrClosed
	}
	if e.cfg.MultiSelect == "" || e.state.Level != e.cfg.MultiSelect {
		return State{}, Pending{}, ErrNotMultiSelect
	}
	if len(e.selection) == 0 {
		return State{}, Pending{}, ErrEmptySelection
	}
	delta := Context{e.cfg.SelectionKey: append([]string(nil), e.selection...)}
	s, p := e.drillLocked(target, delta)
	return s, p, nil
}

// Fetch runs the configured FetchFunc for a ticket and packages the
// result. It holds no locks and may be called from any goroutine; pass
// the Outcome to Apply on the event loop. Each ticket must be fetched
// exactly once.
func (e *Engine) Fetch(ctx context.Context, p Pending) Outcome {
	data, err := e.cfg.Fetch(withRequestID(ctx, p.ID), p.Level, p.Context)
	if err == nil && data == nil {
		err = errNoData
	}
	if err != nil {
		data = nil
	}
	return Outcome{
		Seq:     p.Seq,
		ID:      p.ID,
		Level:   p.Level,
		Context: p.Context,
		Data:    data,
		Err:     err,
	}
}

// Apply installs a fetch outcome into the current view. Outcomes whose
// ticket is no longer live, because the user navigated away, reset, or
// closed first, are discarded and reported with ok=false; the view they
// were fetched for no longer exists, so applying them would corrupt the
// display. Failed fetches settle the view with empty data and a recorded
// error rather than propagating a panic or leaving the view loading.
func (e *Engine) Apply(o Outcome) (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open || e.await == 0 || o.Seq != e.await {
		e.cfg.Logger.Debug().
			Uint64("seq", o.Seq).
			Str("request_id", o.ID).
			Str("level", string(o.Level)).
			Msg("stale fetch outcome discarded")
		return e.state.snapshot(), false
	}
	e.await = 0
	e.state.Loading = false
	if o.Err != nil {
		e.state.Data = e.cfg.Empty()
		e.state.Err = o.Err
		e.cfg.Logger.Warn().
			Err(o.Err).
			Str("level", string(o.Level)).
			Str("request_id", o.ID).
			Msg("fetch failed, showing empty view")
	} else {
		e.state.Data = o.Data
		e.state.Err = nil
	}
	return e.state.snapshot(), true
}

// Close shuts the engine down, discarding all state and retiring any
// in-flight fetch. Subsequent navigation returns ErrClosed; Open starts a
// fresh session.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return
	}
	e.open = false
	e.state = State{}
	e.history = nil
	e.selection = nil
	e.await = 0
	e.cfg.Logger.Debug().Msg("drill-down closed")
}

// IsOpen reports whether the engine has an active session.
func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Current returns a snapshot of the current view state. The zero State is
// returned when the engine is closed.
func (e *Engine) Current() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.snapshot()
}

// Depth returns the number of ancestor views on the history stack.
func (e *Engine) Depth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

// Selection returns the selected IDs in toggle order.
func (e *Engine) Selection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.selection...)
}

// IsSelected reports whether id is in the selection set.
func (e *Engine) IsSelected(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, sel := range e.selection {
		if sel == id {
			return true
		}
	}
	return false
}

// issueLocked mints the next fetch ticket for the current state and marks
// it as the one live fetch. Callers must hold e.mu.
func (e *Engine) issueLocked() Pending {
	e.seq++
	e.await = e.seq
	return Pending{
		Seq:     e.seq,
		ID:      newRequestID(),
		Level:   e.state.Level,
		Context: e.state.Context.Clone(),
	}
}
