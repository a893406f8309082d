package state

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/cardwallet/internal/wallet"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	cards := []wallet.Card{
		{ID: "1", Name: "Mine", OwnerID: "u1"},
		{ID: "2", Name: "Theirs", OwnerID: "u2"},
		{ID: "3", Name: "Also mine", OwnerID: "u1"},
	}

	before := time.Now()
	s.Update(cards, "u1", nil)

	snap := s.Snapshot()
	if !snap.Loaded {
		t.Fatalf("Loaded = false after successful update")
	}
	if len(snap.Own) != 2 || snap.Own[0].ID != "1" || snap.Own[1].ID != "3" {
		t.Fatalf("Own = %#v, want cards 1 and 3 in order", snap.Own)
	}
	if len(snap.Others) != 1 || snap.Others[0].ID != "2" {
		t.Fatalf("Others = %#v, want card 2", snap.Others)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Own[0].Name = "changed"
	if s.Snapshot().Own[0].Name != "Mine" {
		t.Fatalf("Snapshot should clone card lists")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]wallet.Card{{ID: "1", OwnerID: "u1"}}, "u1", nil)

	origErr := errors.New("boom")
	s.Update(nil, "u1", origErr)

	snap := s.Snapshot()
	if len(snap.Own) != 1 || snap.Own[0].ID != "1" {
		t.Fatalf("cards changed on error: %#v", snap.Own)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}
	s.Update(nil, "u1", errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
	s.Update(nil, "u1", errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
	s.Update(nil, "u1", nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

func TestStore_Patch(t *testing.T) {
	var s Store
	s.Update([]wallet.Card{{ID: "1", Name: "A", OwnerID: "u1"}, {ID: "2", Name: "B", OwnerID: "u2"}}, "u1", nil)

	if !s.Patch(wallet.Card{ID: "2", Name: "B2", OwnerID: "u2"}) {
		t.Fatalf("Patch existing card returned false")
	}
	if s.Patch(wallet.Card{ID: "9"}) {
		t.Fatalf("Patch missing card returned true")
	}
	c, ok := s.Snapshot().Find("2")
	if !ok || c.Name != "B2" {
		t.Fatalf("Find(2) = %#v, %v; want patched name", c, ok)
	}
}

func TestPartition_DisjointAndComplete(t *testing.T) {
	cards := []wallet.Card{
		{ID: "a", OwnerID: "u1"},
		{ID: "b", OwnerID: "u2"},
		{ID: "c", OwnerID: ""},
		{ID: "a", OwnerID: "u2"},
		{ID: "d", OwnerID: "u1"},
	}
	own, others := Partition(cards, "u1")

	seen := map[string]int{}
	for _, c := range own {
		if c.OwnerID != "u1" {
			t.Fatalf("own holds foreign card %#v", c)
		}
		seen[c.ID]++
	}
	for _, c := range others {
		if c.OwnerID == "u1" {
			t.Fatalf("others holds own card %#v", c)
		}
		seen[c.ID]++
	}
	if len(seen) != 4 {
		t.Fatalf("partition covers %d ids, want 4", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("id %s appears %d times", id, n)
		}
	}

	// An empty user id owns nothing.
	own, _ = Partition(cards, "")
	if len(own) != 0 {
		t.Fatalf("empty user owns %d cards", len(own))
	}
}

type listerFunc func(ctx context.Context) ([]wallet.Card, error)

func (f listerFunc) List(ctx context.Context) ([]wallet.Card, error) { return f(ctx) }

func TestRefresh(t *testing.T) {
	var s Store
	err := Refresh(context.Background(), listerFunc(func(context.Context) ([]wallet.Card, error) {
		return []wallet.Card{{ID: "1", OwnerID: "u1"}}, nil
	}), &s, "u1")
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if snap := s.Snapshot(); len(snap.Own) != 1 {
		t.Fatalf("Own = %#v, want one card", snap.Own)
	}

	failure := errors.New("offline")
	err = Refresh(context.Background(), listerFunc(func(context.Context) ([]wallet.Card, error) {
		return nil, failure
	}), &s, "u1")
	if !errors.Is(err, failure) {
		t.Fatalf("Refresh error = %v, want %v", err, failure)
	}
	if snap := s.Snapshot(); len(snap.Own) != 1 || snap.ConsecutiveFailures != 1 {
		t.Fatalf("snapshot after failed refresh = %#v", snap)
	}

	if err := Refresh(context.Background(), nil, &s, "u1"); err == nil {
		t.Fatalf("Refresh with nil lister returned nil error")
	}
}

func TestStore_UpdateRecordsUser(t *testing.T) {
	var s Store
	s.Update([]wallet.Card{{ID: "1", OwnerID: "u1"}}, "u1", nil)
	if got := s.Snapshot().UserID; got != "u1" {
		t.Fatalf("UserID = %q, want u1", got)
	}

	s.Update(nil, "u2", errors.New("offline"))
	if got := s.Snapshot().UserID; got != "u1" {
		t.Fatalf("UserID = %q after failed update, want u1 kept", got)
	}

	s.Update([]wallet.Card{{ID: "1", OwnerID: "u1"}}, "u2", nil)
	snap := s.Snapshot()
	if snap.UserID != "u2" || len(snap.Own) != 0 || len(snap.Others) != 1 {
		t.Fatalf("snapshot = %+v, want card 1 repartitioned as others for u2", snap)
	}
}
