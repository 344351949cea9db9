// Package app wires configuration, logging, the recommendation client, the
// forecast poller and the UI together.
//
// # Startup
//
//  1. Load .env, then ~/.config/shoplens/config.toml (missing file means defaults)
//  2. Open the JSON log file; the TUI owns the terminal, so nothing logs to stderr
//  3. Restore preferences (theme and last inputs)
//  4. Create the HTTP client with its circuit breaker
//  5. Start the forecast poller and run the TUI until exit or cancellation
//
// # Polling Behavior
//
// The poller fetches the sales forecast immediately and then on every
// interval (default 30 seconds). Before a CSV has been uploaded the service
// answers with a 4xx, which counts as reachable without data. Network and
// 5xx failures back off exponentially up to 30 seconds and mark the service
// offline after two in a row. Previously fetched data is kept.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - invalid configuration file or values
//   - log file cannot be opened
//   - malformed service URL
//
// Everything else is shown in the UI and logged.
package app
