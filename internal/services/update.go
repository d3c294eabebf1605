// Package services – update dispatcher
//
// This file implements the two update modalities that share the purchase
// entity: full replace (a total payload overwriting every field) and RFC
// 7386 JSON merge patch (a partial document applied to the record's
// canonical JSON form). Both re-validate the result and enforce the status
// transition table; neither persists anything on a failure path.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/booklane/go-purchases-backend/internal/domain"
	"github.com/booklane/go-purchases-backend/internal/repo"
)

// UpdatePurchaseRequest is the total payload for a full replace. Every field
// overwrites the corresponding field on the stored record; there is no
// partial semantics here (that is what Patch is for).
type UpdatePurchaseRequest struct {
	BookISBN     string
	PurchaseDate time.Time
	Quantity     int
	Buyer        string
	Status       string
}

// validate rejects incomplete or out-of-range replacement payloads.
func (r UpdatePurchaseRequest) validate() error {
	if strings.TrimSpace(r.BookISBN) == "" {
		return ErrInvalidRequest
	}
	if r.PurchaseDate.IsZero() {
		return ErrInvalidRequest
	}
	if r.Quantity < 1 {
		return ErrInvalidRequest
	}
	if strings.TrimSpace(r.Buyer) == "" {
		return ErrInvalidRequest
	}
	if !domain.Status(r.Status).Valid() {
		return ErrInvalidRequest
	}
	return nil
}

// Update performs a full replace of the purchase identified by id. The
// payload is total: every field overwrites the stored one. The record's ID
// is immutable and kept. Returns ErrPurchaseNotFound when the target does
// not exist, ErrInvalidRequest for an incomplete payload, and
// ErrInvalidTransition when the status change violates the transition table.
func (s *PurchaseService) Update(ctx context.Context, id string, req UpdatePurchaseRequest) (*domain.Purchase, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetPurchase(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	next := domain.Status(req.Status)
	if !domain.CanTransition(existing.Status, next) {
		return nil, ErrInvalidTransition
	}

	existing.BookISBN = req.BookISBN
	existing.PurchaseDate = req.PurchaseDate.Truncate(time.Second)
	existing.Quantity = req.Quantity
	existing.Buyer = req.Buyer
	existing.Status = next

	return s.Repo.SavePurchase(ctx, s.DB, existing)
}

// purchaseDoc is the canonical JSON form of a purchase for merge-patch
// purposes: exactly the client-visible business fields. Pointer fields keep
// "removed by the patch" distinguishable from zero values after decoding.
type purchaseDoc struct {
	ID           *string        `json:"id"`
	BookISBN     *string        `json:"bookIsbn"`
	PurchaseDate *time.Time     `json:"purchaseDate"`
	Quantity     *int           `json:"quantity"`
	Buyer        *string        `json:"buyer"`
	Status       *domain.Status `json:"status"`
}

// docFromPurchase serializes the stored record into its canonical document.
func docFromPurchase(p *domain.Purchase) purchaseDoc {
	return purchaseDoc{
		ID:           &p.ID,
		BookISBN:     &p.BookISBN,
		PurchaseDate: &p.PurchaseDate,
		Quantity:     &p.Quantity,
		Buyer:        &p.Buyer,
		Status:       &p.Status,
	}
}

// Patch applies an RFC 7386 JSON merge patch to the purchase identified by
// id: keys present in the patch overwrite, null clears, absent keys are left
// untouched. The canonical document is re-validated after patching, so a
// patch that clears a required field, changes the immutable ID, introduces
// unknown members, or carries values that do not coerce to the field's type
// is rejected with ErrMalformedPatch and nothing is persisted. Application
// is atomic: either the fully patched, re-validated record is saved or the
// store is untouched.
func (s *PurchaseService) Patch(ctx context.Context, id string, patch []byte) (*domain.Purchase, error) {
	existing, err := s.Repo.GetPurchase(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	original, err := json.Marshal(docFromPurchase(existing))
	if err != nil {
		return nil, err
	}

	merged, err := jsonpatch.MergePatch(original, patch)
	if err != nil {
		return nil, ErrMalformedPatch
	}

	var doc purchaseDoc
	dec := json.NewDecoder(bytes.NewReader(merged))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, ErrMalformedPatch
	}

	// Required fields must have survived the patch.
	if doc.ID == nil || doc.BookISBN == nil || doc.PurchaseDate == nil ||
		doc.Quantity == nil || doc.Buyer == nil || doc.Status == nil {
		return nil, ErrMalformedPatch
	}
	if *doc.ID != existing.ID {
		return nil, ErrMalformedPatch
	}
	if strings.TrimSpace(*doc.BookISBN) == "" || strings.TrimSpace(*doc.Buyer) == "" {
		return nil, ErrMalformedPatch
	}
	if *doc.Quantity < 1 {
		return nil, ErrMalformedPatch
	}
	if !doc.Status.Valid() {
		return nil, ErrMalformedPatch
	}
	if !domain.CanTransition(existing.Status, *doc.Status) {
		return nil, ErrInvalidTransition
	}

	existing.BookISBN = *doc.BookISBN
	existing.PurchaseDate = doc.PurchaseDate.Truncate(time.Second)
	existing.Quantity = *doc.Quantity
	existing.Buyer = *doc.Buyer
	existing.Status = *doc.Status

	return s.Repo.SavePurchase(ctx, s.DB, existing)
}
