// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains the composable filter predicate used by
// purchase search.
package repo

import (
	"strings"

	"gorm.io/gorm"
)

// Criteria carries the optional filter fields accepted by purchase search.
// Blank fields are omitted from the resulting predicate rather than matching
// the empty string.
type Criteria struct {
	// BookISBN filters by substring match on the purchased book's ISBN.
	BookISBN string
	// Buyer filters by exact buyer identity.
	Buyer string
	// Status filters by exact lifecycle state.
	Status string
}

// Empty reports whether no criterion is supplied (every field blank).
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.BookISBN) == "" &&
		strings.TrimSpace(c.Buyer) == "" &&
		strings.TrimSpace(c.Status) == ""
}

// Predicate is a composable boolean filter over stored purchases, expressed
// as a GORM scope. Predicates combine by chaining; the builder below always
// produces a conjunction.
type Predicate func(*gorm.DB) *gorm.DB

// matchAll is the neutral predicate: it adds no conditions.
func matchAll(tx *gorm.DB) *gorm.DB { return tx }

// bookISBNContains matches purchases whose ISBN contains the fragment.
// Partial matching is intentional: callers search by ISBN prefix or segment.
func bookISBNContains(fragment string) Predicate {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("book_isbn LIKE ?", "%"+fragment+"%")
	}
}

// buyerEquals matches purchases made by exactly this buyer.
func buyerEquals(buyer string) Predicate {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("buyer = ?", buyer)
	}
}

// statusEquals matches purchases in exactly this state.
func statusEquals(status string) Predicate {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	}
}

// BuildPredicate converts the supplied criteria into a single predicate that
// is the logical AND of every non-blank criterion. With zero criteria the
// predicate trivially matches all records; the caller decides whether that
// means "list everything".
//
// Match semantics per field (kept asymmetric on purpose):
//   - BookISBN: substring ("contains") match
//   - Buyer:    exact equality
//   - Status:   exact equality
func BuildPredicate(c Criteria) Predicate {
	preds := make([]Predicate, 0, 3)
	if v := strings.TrimSpace(c.BookISBN); v != "" {
		preds = append(preds, bookISBNContains(v))
	}
	if v := strings.TrimSpace(c.Buyer); v != "" {
		preds = append(preds, buyerEquals(v))
	}
	if v := strings.TrimSpace(c.Status); v != "" {
		preds = append(preds, statusEquals(v))
	}
	if len(preds) == 0 {
		return matchAll
	}
	return func(tx *gorm.DB) *gorm.DB {
		for _, p := range preds {
			tx = p(tx)
		}
		return tx
	}
}
