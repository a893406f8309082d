package wallet

import (
	"context"
	"errors"

	"github.com/five82/cardwallet/internal/symbol"
)

// Card is the canonical in-memory shape of a stored card. Every Card held by
// the application carries a non-empty Format.
type Card struct {
	ID               string
	Name             string
	Code             string
	OwnerID          string
	OwnerDisplayName string
	Format           symbol.Format
}

// OwnedBy reports whether userID created the card.
func (c Card) OwnedBy(userID string) bool {
	return userID != "" && c.OwnerID == userID
}

// User identifies the person using the widget.
type User struct {
	ID   string
	Name string
}

// NewCard carries the fields sent when creating a card.
type NewCard struct {
	Name             string
	Code             string
	OwnerID          string
	OwnerDisplayName string
	Format           symbol.Format
}

// Patch carries a partial update. OwnerID is always sent as an authorization
// hint; nil fields are left untouched.
type Patch struct {
	OwnerID string
	Name    *string
	Format  *symbol.Format
}

// Apply returns c with the patch fields merged in.
func (p Patch) Apply(c Card) Card {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Format != nil && *p.Format != "" {
		c.Format = *p.Format
	}
	return c
}

// CardStore is the request interface to wherever cards live. All calls may
// fail with transport or authorization errors; none are retried.
type CardStore interface {
	List(ctx context.Context) ([]Card, error)
	Create(ctx context.Context, card NewCard) (Card, error)
	Update(ctx context.Context, id string, patch Patch) (Card, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// Session is the authenticated handle the host hands to the widget.
type Session struct {
	User  User
	Store CardStore
}

// Valid reports whether the session can be used to load cards.
func (s Session) Valid() bool {
	return s.Store != nil && s.User.ID != ""
}

var (
	// ErrNotFound is returned for operations on unknown card ids.
	ErrNotFound = errors.New("card not found")
	// ErrForbidden is returned when the owner hint does not match the card.
	ErrForbidden = errors.New("card belongs to another user")
)
