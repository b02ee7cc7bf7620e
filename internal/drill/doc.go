// Package drill implements a reusable hierarchical drill-down navigation
// engine for terminal dashboards.
//
// The engine models navigation through a hierarchy of data views (e.g.
// yearly totals -> sites -> categories -> products) as a small state
// machine. Key features:
//   - Linear history with snapshot semantics: going back restores the
//     previous view, including its data, without refetching
//   - Monotonic fetch sequencing so responses that arrive out of order
//     or after further navigation are discarded instead of applied
//   - Append-only context accumulation: each drill merges new filter
//     keys over the inherited ones
//   - Bounded multi-selection at a designated level, feeding fan-out
//     fetches that compare several entities side by side
//
// The engine is presentation-agnostic: it knows nothing about rendering,
// key bindings, or transport. Callers supply a FetchFunc that loads data
// for a (level, context) pair and drive the engine from their event loop.
// All exported methods are safe for concurrent use.
package drill
