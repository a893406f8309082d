// Package wallet defines the card model and the stores that persist cards.
//
// # Records
//
// Cards arrive from the card endpoint as JSON records. Records written before
// cards carried a symbology have no "format" field; they are normalized to
// symbol.DefaultFormat when decoded, so every Card in memory has a format.
// Ids may be strings or numbers on the wire and are kept as strings.
//
// # Stores
//
// CardStore is the request interface the UI talks to:
//
//   - Client: REST client for /api/cardwallet with bearer token auth
//   - MemoryStore: process-local store used by demo mode and tests
//
// Update and Delete carry the acting user's id as an authorization hint. The
// server is authoritative; MemoryStore enforces the same owner check and
// reports ErrForbidden.
//
// # Errors
//
// Non-success statuses surface as *APIError. 401/403 unwrap to ErrForbidden
// and 404 to ErrNotFound, so callers can use errors.Is without caring which
// store produced the error. Nothing is retried here; the poller decides the
// refresh cadence.
package wallet
