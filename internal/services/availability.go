// Package services – availability workflow
//
// This file implements purchase creation: validate the request, query the
// books-catalogue for availability, persist the record with the resulting
// status, and issue the best-effort reservation command on the confirmed
// path. Remote failures degrade into a CANCELLED purchase rather than an
// error; only validation can fail this operation.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/booklane/go-purchases-backend/internal/domain"
)

// CreatePurchaseRequest carries the caller-supplied fields for a new
// purchase. Quantity is a pointer so that "absent" and "zero" stay
// distinguishable during validation.
type CreatePurchaseRequest struct {
	// BookISBN identifies the catalogue item to purchase.
	BookISBN string
	// Quantity is the number of copies; must be present and >= 1.
	Quantity *int
	// Buyer identifies who is purchasing (e.g. an email address).
	Buyer string
	// Status is the caller's requested initial state. It must be a known
	// state, but the availability outcome decides the persisted one.
	Status string
	// PurchaseDate is optional; the service clock supplies it when nil.
	PurchaseDate *time.Time
}

// validate checks every required field before any of them is used, so a
// malformed request can never reach the catalogue or the store.
func (r CreatePurchaseRequest) validate() error {
	if strings.TrimSpace(r.BookISBN) == "" {
		return ErrInvalidRequest
	}
	if r.Quantity == nil || *r.Quantity < 1 {
		return ErrInvalidRequest
	}
	if strings.TrimSpace(r.Buyer) == "" {
		return ErrInvalidRequest
	}
	if strings.TrimSpace(r.Status) == "" || !domain.Status(r.Status).Valid() {
		return ErrInvalidRequest
	}
	return nil
}

// Create runs the availability-check-and-reserve workflow:
//
//  1. Validate the request; failure returns ErrInvalidRequest with no remote
//     call made and nothing persisted.
//  2. Query the catalogue. A failed call or a non-visible book both count as
//     unavailable; an unverifiable purchase is never confirmed.
//  3. Persist the purchase: CONFIRMED when available, CANCELLED otherwise.
//     Creation never fails once validation passed; CANCELLED is a successful
//     terminal outcome, not an error.
//  4. On the confirmed path only, issue a one-shot visibility update to
//     reserve the book. Its failure is logged and swallowed: the purchase
//     stays CONFIRMED, nothing is rolled back, and no retry is scheduled.
//     The window between "purchase confirmed" and "catalogue updated" is an
//     accepted inconsistency.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*domain.Purchase, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	available := false
	book, err := s.Catalog.GetBook(ctx, req.BookISBN)
	if err != nil {
		log.Warn().Err(err).Str("isbn", req.BookISBN).
			Msg("availability check failed; treating book as unavailable")
	} else {
		available = book.IsVisible()
		log.Info().Str("isbn", req.BookISBN).Bool("visible", available).Msg("book availability")
	}

	when := s.Clock.Now()
	if req.PurchaseDate != nil {
		when = *req.PurchaseDate
	}

	p := &domain.Purchase{
		BookISBN:     req.BookISBN,
		PurchaseDate: when.Truncate(time.Second),
		Quantity:     *req.Quantity,
		Buyer:        req.Buyer,
		Status:       domain.StatusCancelled,
	}
	if available {
		p.Status = domain.StatusConfirmed
	}

	saved, err := s.Repo.CreatePurchase(ctx, s.DB, p)
	if err != nil {
		return nil, err
	}

	if available {
		if err := s.Catalog.SetVisibility(ctx, req.BookISBN, false); err != nil {
			log.Error().Err(err).Str("isbn", req.BookISBN).Str("purchase_id", saved.ID).
				Msg("failed to update book visibility after confirmed purchase")
		}
	} else {
		log.Info().Str("isbn", req.BookISBN).Str("purchase_id", saved.ID).
			Msg("purchase recorded as CANCELLED, book not available")
	}

	return saved, nil
}
