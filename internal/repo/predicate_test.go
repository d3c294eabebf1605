package repo

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/booklane/go-purchases-backend/internal/domain"
)

func TestCriteria_Empty(t *testing.T) {
	if !(Criteria{}).Empty() {
		t.Fatalf("zero criteria must be empty")
	}
	if !(Criteria{BookISBN: "  ", Buyer: "\t", Status: ""}).Empty() {
		t.Fatalf("whitespace-only criteria must be empty")
	}
	if (Criteria{BookISBN: "978"}).Empty() {
		t.Fatalf("criteria with ISBN must not be empty")
	}
	if (Criteria{Buyer: "a@example.com"}).Empty() {
		t.Fatalf("criteria with buyer must not be empty")
	}
	if (Criteria{Status: "CONFIRMED"}).Empty() {
		t.Fatalf("criteria with status must not be empty")
	}
}

// seedSearchFixture inserts a small fixed dataset used by the predicate tests.
func seedSearchFixture(t *testing.T) (*gorm.DB, context.Context) {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	seedPurchase(t, db, "9780307389732", "ana@example.com", domain.StatusConfirmed, base)
	seedPurchase(t, db, "9780307389732", "luis@example.com", domain.StatusCancelled, base.Add(time.Hour))
	seedPurchase(t, db, "9781101904220", "ana@example.com", domain.StatusCompleted, base.Add(2*time.Hour))

	return db, ctx
}

func TestBuildPredicate_ISBNSubstring(t *testing.T) {
	db, ctx := seedSearchFixture(t)

	out, err := SearchPurchases(ctx, db, BuildPredicate(Criteria{BookISBN: "030738"}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 substring matches, got %d", len(out))
	}
	for _, p := range out {
		if p.BookISBN != "9780307389732" {
			t.Fatalf("unexpected ISBN %q in result", p.BookISBN)
		}
	}
}

func TestBuildPredicate_BuyerExact(t *testing.T) {
	db, ctx := seedSearchFixture(t)

	// Exact match only: a prefix of the buyer must not match.
	out, err := SearchPurchases(ctx, db, BuildPredicate(Criteria{Buyer: "ana"}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("buyer prefix must not match, got %d rows", len(out))
	}

	out, err = SearchPurchases(ctx, db, BuildPredicate(Criteria{Buyer: "ana@example.com"}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 buyer matches, got %d", len(out))
	}
}

func TestBuildPredicate_StatusExact(t *testing.T) {
	db, ctx := seedSearchFixture(t)

	out, err := SearchPurchases(ctx, db, BuildPredicate(Criteria{Status: "CANCELLED"}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 || out[0].Buyer != "luis@example.com" {
		t.Fatalf("unexpected status match: %+v", out)
	}
}

func TestBuildPredicate_Conjunction(t *testing.T) {
	db, ctx := seedSearchFixture(t)

	out, err := SearchPurchases(ctx, db, BuildPredicate(Criteria{
		BookISBN: "9780307",
		Buyer:    "ana@example.com",
		Status:   "CONFIRMED",
	}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 conjunction match, got %d", len(out))
	}
	if out[0].Buyer != "ana@example.com" || out[0].Status != domain.StatusConfirmed {
		t.Fatalf("wrong row matched: %+v", out[0])
	}
}

func TestBuildPredicate_NoCriteriaMatchesAll(t *testing.T) {
	db, ctx := seedSearchFixture(t)

	out, err := SearchPurchases(ctx, db, BuildPredicate(Criteria{}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("neutral predicate should match all rows, got %d", len(out))
	}
}

func TestSearchPurchases_NoMatchesYieldsEmptySlice(t *testing.T) {
	db, ctx := seedSearchFixture(t)

	out, err := SearchPurchases(ctx, db, BuildPredicate(Criteria{Status: "PENDING"}))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if out == nil {
		t.Fatalf("expected non-nil empty slice")
	}
	if len(out) != 0 {
		t.Fatalf("expected zero matches, got %d", len(out))
	}
}
