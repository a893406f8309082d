package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/five82/cardwallet/internal/wallet"
)

// Snapshot represents the latest card lists available to the UI.
type Snapshot struct {
	Own                 []wallet.Card
	Others              []wallet.Card
	Loaded              bool
	UserID              string // user the lists were partitioned for
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive reload failures
}

// IsOffline returns true when the card store has been unreachable for
// multiple reloads.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Find looks a card up in either list.
func (s Snapshot) Find(id string) (wallet.Card, bool) {
	if id == "" {
		return wallet.Card{}, false
	}
	for _, list := range [][]wallet.Card{s.Own, s.Others} {
		for _, c := range list {
			if c.ID == id {
				return c, true
			}
		}
	}
	return wallet.Card{}, false
}

// Len returns the number of cards across both lists.
func (s Snapshot) Len() int {
	return len(s.Own) + len(s.Others)
}

// Partition splits cards by ownership, preserving order. Cards repeating an
// id already seen are dropped.
func Partition(cards []wallet.Card, userID string) (own, others []wallet.Card) {
	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if _, dup := seen[c.ID]; dup && c.ID != "" {
			continue
		}
		seen[c.ID] = struct{}{}
		if c.OwnedBy(userID) {
			own = append(own, c)
		} else {
			others = append(others, c)
		}
	}
	return own, others
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored card lists with cards partitioned for userID.
// When err is non-nil the previous data (and the user it belongs to) is kept
// but the error is recorded for visibility.
func (s *Store) Update(cards []wallet.Card, userID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Own, s.snapshot.Others = Partition(cards, userID)
	s.snapshot.UserID = userID
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Patch replaces the card with the same id in whichever list holds it. It
// reports whether a card was replaced.
func (s *Store) Patch(card wallet.Card) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, list := range [][]wallet.Card{s.snapshot.Own, s.snapshot.Others} {
		for i := range list {
			if list[i].ID == card.ID {
				list[i] = card
				return true
			}
		}
	}
	return false
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Own = cloneCards(s.snapshot.Own)
	snap.Others = cloneCards(s.snapshot.Others)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Lister is the read half of wallet.CardStore.
type Lister interface {
	List(ctx context.Context) ([]wallet.Card, error)
}

// Refresh lists cards and records the outcome in store. The returned error
// is the list error, if any.
func Refresh(ctx context.Context, lister Lister, store *Store, userID string) error {
	if lister == nil {
		return fmt.Errorf("card store not configured")
	}
	cards, err := lister.List(ctx)
	store.Update(cards, userID, err)
	return err
}

func cloneCards(cards []wallet.Card) []wallet.Card {
	if len(cards) == 0 {
		return nil
	}
	dup := make([]wallet.Card, len(cards))
	copy(dup, cards)
	return dup
}
