// Package app provides the orchestration layer for cardwallet.
//
// # Overview
//
// This package wires together configuration, logging, the card store
// session, polling and the UI. It is the composition root where every
// dependency is initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config.toml
//	       ├─────> logging.Initialize() Log to file (the TUI owns the terminal)
//	       ├─────> NewSession()         HTTP client or in-memory demo store
//	       ├─────> cardconfig.Load()    Per-card settings (title, ...)
//	       ├─────> prefs.Load()         Theme and last tab
//	       ├─────> StartPoller()        Background reloads
//	       └─────> ui.Run()             Start TUI (blocks)
//
// The UI issues its own reload at startup and after every mutation. The
// poller keeps the shared state.Store fresh in between, so cards shared by
// other users show up without a manual reload.
// The poller reads the session at every tick; the UI reports sessions
// installed later through ui.Options.OnSession.
//
// # Polling Behavior
//
// The poller waits one interval, lists cards, and records the outcome in the
// store. After a failure the next wait doubles per consecutive failure, up to
// 30 seconds. A successful reload resets it.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file unreadable or invalid
//   - Missing user id or token outside demo mode
//   - Card config unreadable
//
// Recoverable errors (logged, polling continues):
//   - Card list failures and timeouts
//   - Unreadable prefs (defaults are used)
package app
