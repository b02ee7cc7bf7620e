package drill

import "errors"

// Sentinel errors for invalid engine transitions. These indicate a caller
// bug (driving the engine from an impossible state) rather than a data or
// transport failure, so callers typically log and ignore them rather than
// surfacing them to the user.
var (
	// ErrClosed indicates an operation was attempted on a closed engine.
	ErrClosed = errors.New("drill: engine is closed")

	// ErrNotMultiSelect indicates a selection operation was attempted on a
	// level that does not support multi-selection.
	ErrNotMultiSelect = errors.New("drill: level does not support selection")

	// ErrEmptySelection indicates a fan-out was requested with nothing selected.
	ErrEmptySelection = errors.New("drill: selection is empty")
)

// errNoData marks a fetch that returned neither data nor an error. The
// engine treats it as a fetch failure so the view degrades to an empty
// state instead of rendering a nil payload.
var errNoData = errors.New("drill: fetch returned no data")
