// Package services – PurchaseService
//
// This file implements the PurchaseService, the composition root for all
// purchase operations: filtered listing, lookup, creation (with the
// availability workflow in availability.go), full replace and merge patch
// (update.go), and deletion. Service-level errors (e.g. ErrPurchaseNotFound)
// are returned for predictable cases so handlers can map them to HTTP
// results consistently.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/booklane/go-purchases-backend/internal/catalog"
	"github.com/booklane/go-purchases-backend/internal/clock"
	"github.com/booklane/go-purchases-backend/internal/domain"
	"github.com/booklane/go-purchases-backend/internal/repo"
)

// PurchaseRepo defines the repository contract required by PurchaseService.
// Implementations are responsible for persistence of purchase records.
type PurchaseRepo interface {
	// CreatePurchase inserts a new purchase row, assigning its identifier.
	CreatePurchase(ctx context.Context, db *gorm.DB, p *domain.Purchase) (*domain.Purchase, error)

	// SavePurchase persists the full state of an existing purchase.
	SavePurchase(ctx context.Context, db *gorm.DB, p *domain.Purchase) (*domain.Purchase, error)

	// GetPurchase fetches a purchase by ID (repo.ErrNotFound when absent).
	GetPurchase(ctx context.Context, db *gorm.DB, id string) (*domain.Purchase, error)

	// ListPurchases returns every purchase.
	ListPurchases(ctx context.Context, db *gorm.DB) ([]domain.Purchase, error)

	// SearchPurchases returns the purchases matching the predicate.
	SearchPurchases(ctx context.Context, db *gorm.DB, pred repo.Predicate) ([]domain.Purchase, error)

	// DeletePurchase removes a purchase row permanently.
	DeletePurchase(ctx context.Context, db *gorm.DB, p *domain.Purchase) error
}

// CatalogGateway is the slice of the books-catalogue client the service
// needs: one availability query and one visibility command.
type CatalogGateway interface {
	// GetBook queries the catalogue for a book by ISBN.
	GetBook(ctx context.Context, isbn string) (*catalog.Book, error)
	// SetVisibility flips the catalogue's visible flag for a book.
	SetVisibility(ctx context.Context, isbn string, visible bool) error
}

// PurchaseService provides purchase-level operations. It owns no state
// beyond its collaborators; every call runs to completion independently and
// concurrent mutations of the same record are resolved by the store.
type PurchaseService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the purchase repository used by this service.
	Repo PurchaseRepo
	// Catalog reaches the books-catalogue service through the gateway.
	Catalog CatalogGateway
	// Clock supplies "now" for defaulted purchase dates.
	Clock clock.Clock
}

// NewPurchaseService constructs a PurchaseService with a system clock.
func NewPurchaseService(db *gorm.DB, r PurchaseRepo, cat CatalogGateway) *PurchaseService {
	return &PurchaseService{
		DB:      db,
		Repo:    r,
		Catalog: cat,
		Clock:   clock.NewSystem(),
	}
}

// List returns the purchases matching the given criteria. With zero criteria
// it returns the full unfiltered set; otherwise the result is the
// conjunction of every supplied criterion (substring on ISBN, exact match on
// buyer and status). The result is always a concrete slice, never nil.
func (s *PurchaseService) List(ctx context.Context, c repo.Criteria) ([]domain.Purchase, error) {
	if c.Empty() {
		return s.Repo.ListPurchases(ctx, s.DB)
	}
	return s.Repo.SearchPurchases(ctx, s.DB, repo.BuildPredicate(c))
}

// Get returns a single purchase by ID, or ErrPurchaseNotFound.
func (s *PurchaseService) Get(ctx context.Context, id string) (*domain.Purchase, error) {
	p, err := s.Repo.GetPurchase(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a purchase permanently. Deleting an unknown identifier
// returns ErrPurchaseNotFound and leaves the store unchanged.
func (s *PurchaseService) Delete(ctx context.Context, id string) error {
	p, err := s.Repo.GetPurchase(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPurchaseNotFound
		}
		return err
	}
	return s.Repo.DeletePurchase(ctx, s.DB, p)
}
