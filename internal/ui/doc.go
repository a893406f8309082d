// Package ui is the card wallet's Bubble Tea front end.
//
// # Architecture
//
// Model is the widget controller. It owns a view.State, the latest
// state.Snapshot and the session handed over by the host. Every message is
// handled the same way:
//
//  1. Apply the event to view.State (open a card, type into the form, ...)
//  2. Start any card store call as a tea.Cmd
//  3. Rebuild: view.Reconcile produces a fresh Tree, view.Bind attaches
//     handlers to its element ids, and the text inputs are re-seeded from
//     the pending form values
//  4. Paint the tree in View
//
// Store calls never touch the model directly; they return reloadedMsg,
// createdMsg, savedMsg or deletedMsg, which Update folds back into state.
// Reloads carry a sequence number and an older reload never overwrites a
// newer one.
//
// # Layers
//
// Input is routed to the topmost layer only:
//
//   - help overlay (any key closes)
//   - validation notice (any key dismisses)
//   - edit dialog
//   - card overlay with the code preview
//   - main screen: tabs, card list, new-card form
//
// Transport errors appear as a banner that esc dismisses; they never take
// focus away from what the user was doing.
//
// # Files
//
//   - app.go: Model, Options, Init/Update/View and Run
//   - actions.go: event dispatch and card store commands
//   - input_handlers.go: per-layer key handling
//   - cards.go, detail.go, dialog.go, header.go, help.go: rendering
//   - theme.go, style_helpers.go: colors and Lip Gloss helpers
//
// # Host surface
//
// A host embedding the program hands over a session with SessionMsg (or
// Model.SetSession before starting) and card configuration with ConfigMsg.
package ui
