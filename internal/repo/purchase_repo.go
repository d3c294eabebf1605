// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Purchase
// model.
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/booklane/go-purchases-backend/internal/domain"
)

// ErrNotFound is returned when a purchase does not exist.
var ErrNotFound = errors.New("not found")

// CreatePurchase inserts a new purchase row, assigning its identifier.
func CreatePurchase(ctx context.Context, db *gorm.DB, p *domain.Purchase) (*domain.Purchase, error) {
	p.ID = uuid.NewString()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// SavePurchase persists the full state of an existing purchase.
func SavePurchase(ctx context.Context, db *gorm.DB, p *domain.Purchase) (*domain.Purchase, error) {
	if err := db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPurchase fetches a purchase by ID, returning ErrNotFound when absent.
func GetPurchase(ctx context.Context, db *gorm.DB, id string) (*domain.Purchase, error) {
	var p domain.Purchase
	err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPurchases returns every purchase ordered deterministically
// (PurchaseDate ASC, ID ASC).
func ListPurchases(ctx context.Context, db *gorm.DB) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	err := db.WithContext(ctx).
		Order("purchase_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

// SearchPurchases returns the purchases matching the predicate, ordered
// deterministically. The result is always a concrete slice; zero matches
// yield an empty one, never nil.
func SearchPurchases(ctx context.Context, db *gorm.DB, pred Predicate) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	err := db.WithContext(ctx).
		Scopes(func(tx *gorm.DB) *gorm.DB { return pred(tx) }).
		Order("purchase_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

// DeletePurchase removes a purchase row permanently.
func DeletePurchase(ctx context.Context, db *gorm.DB, p *domain.Purchase) error {
	return db.WithContext(ctx).Delete(p).Error
}

// CountPurchases uses a raw COUNT so a missing table surfaces as an error.
func CountPurchases(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM purchases").Scan(&total).Error
	return total, err
}
