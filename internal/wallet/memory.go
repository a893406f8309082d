package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/cardwallet/internal/symbol"
)

// Ensure MemoryStore implements CardStore at compile time.
var _ CardStore = (*MemoryStore)(nil)

// MemoryStore is a process-local CardStore. It backs demo mode and tests.
type MemoryStore struct {
	mu    sync.Mutex
	order []string
	cards map[string]Card
}

// NewMemoryStore returns a store holding seed. Seed cards without an ID get
// one; cards without a format get the default.
func NewMemoryStore(seed ...Card) *MemoryStore {
	s := &MemoryStore{cards: make(map[string]Card, len(seed))}
	for _, c := range seed {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Format == "" {
			c.Format = symbol.DefaultFormat
		}
		if _, exists := s.cards[c.ID]; exists {
			continue
		}
		s.order = append(s.order, c.ID)
		s.cards[c.ID] = c
	}
	return s
}

func (s *MemoryStore) List(ctx context.Context) ([]Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Card, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.cards[id])
	}
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, card NewCard) (Card, error) {
	if err := ctx.Err(); err != nil {
		return Card{}, err
	}
	format := card.Format
	if format == "" {
		format = symbol.DefaultFormat
	}
	created := Card{
		ID:               uuid.NewString(),
		Name:             card.Name,
		Code:             card.Code,
		OwnerID:          card.OwnerID,
		OwnerDisplayName: card.OwnerDisplayName,
		Format:           format,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, created.ID)
	s.cards[created.ID] = created
	return created, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) (Card, error) {
	if err := ctx.Err(); err != nil {
		return Card{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return Card{}, fmt.Errorf("update card %s: %w", id, ErrNotFound)
	}
	if card.OwnerID != patch.OwnerID {
		return Card{}, fmt.Errorf("update card %s: %w", id, ErrForbidden)
	}
	card = patch.Apply(card)
	s.cards[id] = card
	return card, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return fmt.Errorf("delete card %s: %w", id, ErrNotFound)
	}
	if card.OwnerID != ownerID {
		return fmt.Errorf("delete card %s: %w", id, ErrForbidden)
	}
	delete(s.cards, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// DemoCards returns a small wallet shared between user and one other member.
func DemoCards(user User) []Card {
	return []Card{
		{Name: "Library", Code: "LIB-0042-7781", OwnerID: user.ID, OwnerDisplayName: user.Name, Format: symbol.FormatCODE128},
		{Name: "Grocery club", Code: "5901234123457", OwnerID: user.ID, OwnerDisplayName: user.Name, Format: symbol.FormatEAN13},
		{Name: "Gym", Code: "https://gym.example/member/9131", OwnerID: user.ID, OwnerDisplayName: user.Name},
		{Name: "Pharmacy", Code: "96385074", OwnerID: "demo-partner", OwnerDisplayName: "Sam", Format: symbol.FormatEAN8},
		{Name: "Bookshop", Code: "A40156B", OwnerID: "demo-partner", OwnerDisplayName: "Sam", Format: symbol.FormatCodabar},
	}
}
