// Package domain defines the persistence model for purchase records. The
// Purchase type is mapped with GORM and forms the core data layer of the
// purchases application.
package domain

import (
	"time"
)

// Status is the lifecycle state of a purchase. It is a closed enumeration;
// writes carrying any other value are rejected at the service layer.
type Status string

// Purchase lifecycle states.
const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether s is one of the known purchase states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a purchase may move from one state to
// another. Reflexive transitions are always allowed so that replaying an
// identical full update stays idempotent.
//
// The table:
//   - PENDING   → CONFIRMED | CANCELLED | COMPLETED
//   - CONFIRMED → COMPLETED | CANCELLED
//   - CANCELLED and COMPLETED are terminal.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled || to == StatusCompleted
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// Purchase represents a single recorded purchase of a catalog item (a book,
// identified by ISBN). Records are created by the availability workflow and
// mutated via full replace or RFC 7386 merge patch.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned at creation and
//     immutable thereafter.
//   - BookISBN: ISBN of the purchased book; indexed for filtered lookup.
//   - PurchaseDate: when the purchase took place; defaults to the service
//     clock when the caller omits it. Stored with second precision.
//   - Quantity: number of copies bought; always >= 1.
//   - Buyer: identifying contact of the buyer (typically an email address).
//   - Status: lifecycle state, see CanTransition.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//
// Deletion is physical; there is no soft-delete marker on this table.
type Purchase struct {
	ID           string    `json:"id"           gorm:"type:char(36);primaryKey"`
	BookISBN     string    `json:"bookIsbn"     gorm:"column:book_isbn;type:varchar(32);not null;index:idx_purchase_isbn"`
	PurchaseDate time.Time `json:"purchaseDate" gorm:"column:purchase_date;not null"`
	Quantity     int       `json:"quantity"     gorm:"not null;check:quantity >= 1"`
	Buyer        string    `json:"buyer"        gorm:"type:varchar(255);not null;index:idx_purchase_buyer"`
	Status       Status    `json:"status"       gorm:"type:varchar(16);not null;check:status IN ('PENDING','CONFIRMED','CANCELLED','COMPLETED')"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Purchase.
func (Purchase) TableName() string { return "purchases" }
