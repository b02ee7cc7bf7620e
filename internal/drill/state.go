package drill

// Data is the payload a fetch produces for one view. The engine treats it
// as opaque; it only requires deep-copy support so history snapshots stay
// independent of later mutations by the presentation layer.
type Data interface {
	// CloneData returns a deep copy of the payload.
	CloneData() Data
}

// State is the complete navigation state of one view. States handed out
// by the engine are snapshots: mutating the returned context or data does
// not affect the engine or its history.
type State struct {
	// Level is the current position in the hierarchy.
	Level Level

	// Context holds the accumulated filter parameters for this view.
	Context Context

	// Data is the fetched payload, nil while the first load is in flight.
	Data Data

	// Loading reports whether a fetch for this view is still pending.
	Loading bool

	// Err records the failure of the most recent fetch, nil on success.
	Err error
}

// snapshot deep-copies the state for history storage and for handing out
// to callers.
func (s State) snapshot() State {
	out := State{
		Level:   s.Level,
		Context: s.Context.Clone(),
		Loading: s.Loading,
		Err:     s.Err,
	}
	if s.Data != nil {
		out.Data = s.Data.CloneData()
	}
	return out
}

// Pending is a fetch ticket issued by a navigation operation. The caller
// must pass it to Engine.Fetch exactly once, typically from a background
// command, and feed the resulting Outcome back through Engine.Apply.
type Pending struct {
	// Seq orders fetches; only the most recently issued ticket is live.
	Seq uint64

	// ID is a ULID correlating engine, transport, and log records.
	ID string

	// Level is the hierarchy position the fetch is for.
	Level Level

	// Context is the filter context the fetch is for.
	Context Context
}

// Outcome is the result of running a Pending ticket. Zero or one Outcome
// per ticket is applied; stale outcomes are discarded by Engine.Apply.
type Outcome struct {
	// Seq echoes the ticket sequence for staleness checks.
	Seq uint64

	// ID echoes the ticket ULID.
	ID string

	// Level echoes the ticket level.
	Level Level

	// Context echoes the ticket context.
	Context Context

	// Data is the fetched payload, nil when Err is set.
	Data Data

	// Err is the fetch failure, nil on success.
	Err error
}
