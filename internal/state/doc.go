// Package state holds the card lists shared between the background poller
// and the UI.
//
// # Overview
//
// The Store is the coordination point where reloads meet rendering. The
// poller and the UI's own reload commands both write through Update (via
// Refresh); the UI reads copies through Snapshot.
//
//	Poller / reload cmd:            UI:
//	┌──────────────────┐           ┌──────────────────┐
//	│ lister.List()    │           │                  │
//	│      ↓           │           │                  │
//	│ store.Update()   │──────────→│ store.Snapshot() │
//	│                  │  (mutex)  │      ↓           │
//	│                  │           │ view.Reconcile() │
//	└──────────────────┘           └──────────────────┘
//
// # Update Semantics
//
// A successful Update replaces both lists wholesale, partitioned by the
// current user's id. A failed Update keeps the previous lists and records
// the error:
//
//	store.Update(cards, userID, nil)  → Own/Others replaced, LastError = nil
//	store.Update(nil, userID, err)    → Own/Others unchanged, LastError = err
//
// ConsecutiveFailures counts failed updates since the last success;
// IsOffline reports two or more.
//
// Concurrent reloads are last-write-wins. There is no versioning: whichever
// Update runs last defines what the UI sees next.
//
// # Copies
//
// Snapshot clones both card slices and wraps the error, so callers can hold
// and modify a Snapshot without affecting the Store. The zero Store is ready
// to use.
package state
