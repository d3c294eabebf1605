package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/booklane/go-purchases-backend/internal/domain"
)

// newTestDB opens a fresh file-backed SQLite database under a temp dir and
// migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPurchase(t *testing.T, db *gorm.DB, isbn, buyer string, status domain.Status, when time.Time) *domain.Purchase {
	t.Helper()
	p, err := CreatePurchase(context.Background(), db, &domain.Purchase{
		BookISBN:     isbn,
		PurchaseDate: when,
		Quantity:     1,
		Buyer:        buyer,
		Status:       status,
	})
	if err != nil {
		t.Fatalf("seed purchase: %v", err)
	}
	return p
}

func TestCreatePurchase_AssignsID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p, err := CreatePurchase(ctx, db, &domain.Purchase{
		BookISBN:     "9780307389732",
		PurchaseDate: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		Quantity:     2,
		Buyer:        "ana@example.com",
		Status:       domain.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(p.ID) != 36 {
		t.Fatalf("expected UUID id, got %q", p.ID)
	}

	got, err := GetPurchase(ctx, db, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.BookISBN != "9780307389732" || got.Quantity != 2 || got.Buyer != "ana@example.com" || got.Status != domain.StatusConfirmed {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestGetPurchase_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetPurchase(context.Background(), db, "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPurchases_EmptyIsConcreteSlice(t *testing.T) {
	db := newTestDB(t)

	out, err := ListPurchases(context.Background(), db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out == nil {
		t.Fatalf("expected non-nil slice")
	}
	if len(out) != 0 {
		t.Fatalf("expected empty slice, got %d", len(out))
	}
}

func TestListPurchases_OrderedByDate(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of order; list must come back date-ascending.
	seedPurchase(t, db, "B", "b@example.com", domain.StatusConfirmed, base.Add(2*time.Hour))
	seedPurchase(t, db, "A", "a@example.com", domain.StatusConfirmed, base)
	seedPurchase(t, db, "C", "c@example.com", domain.StatusConfirmed, base.Add(4*time.Hour))

	out, err := ListPurchases(context.Background(), db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(out))
	}
	if out[0].BookISBN != "A" || out[1].BookISBN != "B" || out[2].BookISBN != "C" {
		t.Fatalf("unexpected order: %s %s %s", out[0].BookISBN, out[1].BookISBN, out[2].BookISBN)
	}
}

func TestSavePurchase_OverwritesFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := seedPurchase(t, db, "9780307389732", "ana@example.com", domain.StatusPending, time.Now().UTC())

	p.Status = domain.StatusCompleted
	p.Quantity = 5
	if _, err := SavePurchase(ctx, db, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := GetPurchase(ctx, db, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusCompleted || got.Quantity != 5 {
		t.Fatalf("save not persisted: %+v", got)
	}
}

func TestDeletePurchase_RemovesRowPhysically(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := seedPurchase(t, db, "9780307389732", "ana@example.com", domain.StatusConfirmed, time.Now().UTC())

	if err := DeletePurchase(ctx, db, p); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := GetPurchase(ctx, db, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Physical delete: the raw count drops to zero, no tombstone rows.
	n, err := CountPurchases(ctx, db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows after delete, got %d", n)
	}
}

func TestCountPurchases(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := CountPurchases(ctx, db)
	if err != nil || n != 0 {
		t.Fatalf("count empty: n=%d err=%v", n, err)
	}

	seedPurchase(t, db, "A", "a@example.com", domain.StatusConfirmed, time.Now().UTC())
	seedPurchase(t, db, "B", "b@example.com", domain.StatusCancelled, time.Now().UTC())

	n, err = CountPurchases(ctx, db)
	if err != nil || n != 2 {
		t.Fatalf("count seeded: n=%d err=%v", n, err)
	}
}

func TestPurchasesStats_TracksCountAndMaxUpdated(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	total, maxTS, err := PurchasesStats(ctx, db)
	if err != nil {
		t.Fatalf("stats empty: %v", err)
	}
	if total != 0 || maxTS != nil {
		t.Fatalf("expected (0, nil) on empty table, got (%d, %v)", total, maxTS)
	}

	seedPurchase(t, db, "A", "a@example.com", domain.StatusConfirmed, time.Now().UTC())

	total, maxTS, err = PurchasesStats(ctx, db)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if total != 1 || maxTS == nil {
		t.Fatalf("expected (1, non-nil), got (%d, %v)", total, maxTS)
	}
}
