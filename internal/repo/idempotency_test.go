package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIdempotency_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec, err := CreateIdempotency(ctx, db, "ana@example.com", "key-1", "purchase-1", 201, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" || rec.PurchaseID != "purchase-1" || rec.Status != 201 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "ana@example.com", "key-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PurchaseID != "purchase-1" {
		t.Fatalf("wrong record: %+v", got)
	}
}

func TestIdempotency_KeyedByBuyerAndKey(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "ana@example.com", "key-1", "p1", 201, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same key, different buyer: not a replay for that buyer.
	if _, err := GetIdempotency(ctx, db, "luis@example.com", "key-1", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other buyer, got %v", err)
	}

	// Different buyer may reuse the same key.
	if _, err := CreateIdempotency(ctx, db, "luis@example.com", "key-1", "p2", 201, time.Hour); err != nil {
		t.Fatalf("create for other buyer: %v", err)
	}

	// Same (buyer, key) tuple is a unique violation.
	if _, err := CreateIdempotency(ctx, db, "ana@example.com", "key-1", "p3", 201, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestIdempotency_ExpiredRecordIsInvisible(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "ana@example.com", "key-ttl", "p1", 201, time.Millisecond); err != nil {
		t.Fatalf("create: %v", err)
	}

	later := time.Now().UTC().Add(time.Minute)
	if _, err := GetIdempotency(ctx, db, "ana@example.com", "key-ttl", later); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
	exists, err := HasIdempotencyKey(ctx, db, "key-ttl", later)
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if exists {
		t.Fatalf("expired key must not be reported as existing")
	}
}

func TestIdempotency_BlankBuyerNeverMatches(t *testing.T) {
	db := newTestDB(t)

	if _, err := GetIdempotency(context.Background(), db, "  ", "key-1", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank buyer, got %v", err)
	}
}

func TestHasIdempotencyKey_IgnoresBuyer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	exists, err := HasIdempotencyKey(ctx, db, "key-x", time.Now().UTC())
	if err != nil || exists {
		t.Fatalf("empty table: exists=%v err=%v", exists, err)
	}

	if _, err := CreateIdempotency(ctx, db, "ana@example.com", "key-x", "p1", 201, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}

	exists, err = HasIdempotencyKey(ctx, db, "key-x", time.Now().UTC())
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if !exists {
		t.Fatalf("key should exist regardless of buyer")
	}
}
