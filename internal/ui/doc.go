// Package ui provides the terminal interface for shoplens.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. The left column is an input form
// with three fields: a CSV path to upload, a comma-separated product list and
// a user ID. Submitting a field calls the recommendation service and shows
// the reply as a nested key/value tree in a result panel on the right.
//
// # Result Panels
//
// Three panels exist: product recommendations, user recommendations and the
// sales forecast. A panel stays hidden until its first reply arrives and is
// never hidden again. Failures replace the panel content with a one-entry
// error tree.
//
// Each panel has its own search line ("/"). Matching is case-insensitive
// and literal; every match in keys and leaf values is highlighted. Enter
// scrolls to the first match in display order, and n/N cycle through the
// rest. Scrolling is animated over a few frames.
//
// # Data Flow
//
// The forecast panel is also fed by a background poller through
// state.Store; the model polls the store on a short tick and re-renders
// only when the forecast changes.
package ui
