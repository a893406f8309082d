package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/five82/cardwallet/internal/symbol"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(Card{ID: "seed", Name: "Seed", OwnerID: "u2"})

	created, err := s.Create(ctx, NewCard{Name: "Gym", Code: "G1", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" || created.Format != symbol.DefaultFormat {
		t.Fatalf("Create = %#v, want id and default format", created)
	}

	cards, _ := s.List(ctx)
	if len(cards) != 2 || cards[0].ID != "seed" || cards[0].Format != symbol.DefaultFormat {
		t.Fatalf("List = %#v", cards)
	}

	name := "Gym+"
	if _, err := s.Update(ctx, created.ID, Patch{OwnerID: "u2", Name: &name}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Update by other user error = %v, want ErrForbidden", err)
	}
	updated, err := s.Update(ctx, created.ID, Patch{OwnerID: "u1", Name: &name})
	if err != nil || updated.Name != name {
		t.Fatalf("Update = %#v, %v", updated, err)
	}

	if err := s.Delete(ctx, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete missing error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, created.ID, "u1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	cards, _ = s.List(ctx)
	if len(cards) != 1 {
		t.Fatalf("List after delete has %d cards, want 1", len(cards))
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemoryStore().List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("List error = %v, want context.Canceled", err)
	}
}

func TestDemoCardsSplitOwnership(t *testing.T) {
	user := User{ID: "me", Name: "Me"}
	var own, other int
	for _, c := range DemoCards(user) {
		if c.OwnedBy(user.ID) {
			own++
		} else {
			other++
		}
	}
	if own == 0 || other == 0 {
		t.Fatalf("demo cards own=%d other=%d, want both tabs populated", own, other)
	}
}
