package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/parkstats/go-revenue-backend/internal/cache"
	"github.com/parkstats/go-revenue-backend/internal/domain"
	"github.com/parkstats/go-revenue-backend/internal/repo"
)

func TestAssignmentUpsert_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, cache.New(time.Minute))
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "a.com", "adsense", "u1", 80); !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("unknown network: got %v", err)
	}
	if _, err := svc.Upsert(ctx, "   ", domain.NetworkSedo, "u1", 80); !errors.Is(err, ErrEmptyDomain) {
		t.Fatalf("empty domain: got %v", err)
	}
	if _, err := svc.Upsert(ctx, "a.com", domain.NetworkSedo, "u1", 101); !errors.Is(err, ErrInvalidRevShare) {
		t.Fatalf("share > 100: got %v", err)
	}
	if _, err := svc.Upsert(ctx, "a.com", domain.NetworkSedo, "missing", 80); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user: got %v", err)
	}
}

func TestAssignmentUpsert_CreateAndUpdateShare(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, cache.New(time.Minute))
	ctx := context.Background()
	pub := seedPublisher(t, db, "pub@test")

	a, err := svc.Upsert(ctx, "WWW.Example.COM.", domain.NetworkSedo, pub.ID, 75)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Domain != "www.example.com" {
		t.Fatalf("domain = %q; want normalized www.example.com", a.Domain)
	}
	if a.AutoAdded {
		t.Fatalf("admin-created assignment must not be auto_added")
	}

	// Same owner, new share: updates in place.
	b, err := svc.Upsert(ctx, "www.example.com", domain.NetworkSedo, pub.ID, 60)
	if err != nil {
		t.Fatalf("update share: %v", err)
	}
	if b.ID != a.ID || b.RevShare != 60 {
		t.Fatalf("update = %+v; want same row at 60%%", b)
	}
}

func TestAssignmentUpsert_RepointDeactivatesPreviousOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, cache.New(time.Minute))
	ctx := context.Background()
	alice := seedPublisher(t, db, "alice@test")
	bob := seedPublisher(t, db, "bob@test")

	first, err := svc.Upsert(ctx, "moved.com", domain.NetworkSedo, alice.ID, 70)
	if err != nil {
		t.Fatalf("assign alice: %v", err)
	}

	second, err := svc.Upsert(ctx, "moved.com", domain.NetworkSedo, bob.ID, 50)
	if err != nil {
		t.Fatalf("re-point to bob: %v", err)
	}
	if second.UserID != bob.ID || !second.IsActive {
		t.Fatalf("new assignment = %+v; want active bob row", second)
	}

	// Alice's row is retained but inactive.
	old, err := repo.FindAssignmentForUser(ctx, db, "moved.com", domain.NetworkSedo, alice.ID)
	if err != nil {
		t.Fatalf("old row lookup: %v", err)
	}
	if old.ID != first.ID || old.IsActive {
		t.Fatalf("old row = %+v; want deactivated original", old)
	}

	// Exactly one active assignment for the pair.
	active, err := repo.FindActiveAssignment(ctx, db, "moved.com", domain.NetworkSedo)
	if err != nil {
		t.Fatalf("active lookup: %v", err)
	}
	if active.UserID != bob.ID {
		t.Fatalf("active owner = %s; want bob", active.UserID)
	}
}

func TestAssignmentUpsert_ReactivatesHistoricalRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, cache.New(time.Minute))
	ctx := context.Background()
	alice := seedPublisher(t, db, "alice@test")
	bob := seedPublisher(t, db, "bob@test")

	aliceRow, err := svc.Upsert(ctx, "back.com", domain.NetworkSedo, alice.ID, 70)
	if err != nil {
		t.Fatalf("assign alice: %v", err)
	}
	if _, err := svc.Upsert(ctx, "back.com", domain.NetworkSedo, bob.ID, 50); err != nil {
		t.Fatalf("re-point to bob: %v", err)
	}

	// Back to alice: her historical row is reactivated, not duplicated
	// (the unique key forbids a second (domain, network, user) row).
	again, err := svc.Upsert(ctx, "back.com", domain.NetworkSedo, alice.ID, 65)
	if err != nil {
		t.Fatalf("re-point back to alice: %v", err)
	}
	if again.ID != aliceRow.ID {
		t.Fatalf("alice row duplicated: %s -> %s", aliceRow.ID, again.ID)
	}
	if !again.IsActive || again.RevShare != 65 {
		t.Fatalf("reactivated row = %+v; want active at 65%%", again)
	}
}

func TestAssignmentRemove(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, cache.New(time.Minute))
	ctx := context.Background()
	pub := seedPublisher(t, db, "pub@test")

	if err := svc.Remove(ctx, "gone.com", domain.NetworkSedo); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("remove missing: got %v", err)
	}

	if _, err := svc.Upsert(ctx, "gone.com", domain.NetworkSedo, pub.ID, 80); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.Remove(ctx, "gone.com", domain.NetworkSedo); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := repo.FindActiveAssignment(ctx, db, "gone.com", domain.NetworkSedo); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("assignment still active after remove: %v", err)
	}
}

func TestAssignmentList_Pagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, cache.New(time.Minute))
	ctx := context.Background()
	pub := seedPublisher(t, db, "pub@test")

	for _, d := range []string{"a.com", "b.com", "c.com"} {
		if _, err := svc.Upsert(ctx, d, domain.NetworkSedo, pub.ID, 80); err != nil {
			t.Fatalf("seed %s: %v", d, err)
		}
	}
	if _, err := svc.Upsert(ctx, "y.com", domain.NetworkYandex, pub.ID, 80); err != nil {
		t.Fatalf("seed yandex: %v", err)
	}

	rows, total, err := svc.List(ctx, domain.NetworkSedo, 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(rows) != 2 {
		t.Fatalf("page 1 = %d rows of %d; want 2 of 3", len(rows), total)
	}
	if rows[0].Domain != "a.com" || rows[1].Domain != "b.com" {
		t.Fatalf("ordering = %s, %s; want a.com, b.com", rows[0].Domain, rows[1].Domain)
	}

	rows, _, err = svc.List(ctx, "", 1, 50)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("all networks = %d rows; want 4", len(rows))
	}

	if _, _, err := svc.List(ctx, "adsense", 1, 50); !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("unknown network list: got %v", err)
	}
}
