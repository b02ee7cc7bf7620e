// Package catering binds the drill-down navigation engine to the catering
// operations API.
//
// It defines the four navigable hierarchies (costs, quantities, supplier
// budgets, and historical meals), the tabular payload each level renders,
// and the HTTP client that loads them. Key pieces:
//   - Table / Row / Column: the payload type every level produces,
//     implementing drill.Data so history snapshots stay independent
//   - Hierarchy / LevelSpec: declarative wiring of levels, drill targets,
//     trend views, and the multi-select fan-out level
//   - Client: retrying HTTP client with bearer auth, API version gating,
//     and request-correlated logging
//   - FetcherFor: adapts a hierarchy to a drill.FetchFunc, mapping levels
//     to endpoints and parsing responses into tables
//
// Budget and meal hierarchies are aggregated client-side from flat API
// payloads; cost and quantity hierarchies map one level per endpoint.
package catering
