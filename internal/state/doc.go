// Package state provides thread-safe state shared between the forecast poller
// and the UI.
//
// # Overview
//
// The background poller writes the latest sales forecast and the health of
// the recommendation service into a Store; the UI reads a Snapshot on every
// tick. Results of user-initiated requests (product and user recommendations)
// never pass through here, they arrive as Bubble Tea messages.
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ FetchForecast()│            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render panel   │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	store.Update(tree, nil)   // replace forecast, reset failures
//	store.Update(nil, nil)    // service up, nothing to forecast yet
//	store.Update(nil, err)    // keep forecast, record err, failures++
//
// A populated forecast is never cleared again, so the panel never goes back
// to its empty state.
//
// # Copying
//
// Snapshot deep-copies the forecast tree and wraps the error, so the UI can
// render and search a snapshot without holding the lock. The zero Store is
// ready to use.
package state
