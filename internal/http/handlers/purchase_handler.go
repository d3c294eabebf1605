// Purchase HTTP handlers.
//
// This file exposes REST endpoints for purchase resources:
//   - GET    /purchases          (list, optional filters, ETag support)
//   - GET    /purchases/:id      (fetch one)
//   - POST   /purchases          (create via the availability workflow)
//   - PUT    /purchases/:id      (full replace)
//   - PATCH  /purchases/:id      (RFC 7386 merge patch)
//   - DELETE /purchases/:id      (physical delete)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/booklane/go-purchases-backend/internal/domain"
	"github.com/booklane/go-purchases-backend/internal/http/middleware"
	"github.com/booklane/go-purchases-backend/internal/repo"
	"github.com/booklane/go-purchases-backend/internal/services"
)

//
// Service contract (context-aware)
//

// PurchaseService defines the purchase operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PurchaseService interface {
	// List returns purchases matching the (possibly empty) criteria.
	List(ctx context.Context, c repo.Criteria) ([]domain.Purchase, error)
	// Get returns one purchase by ID.
	Get(ctx context.Context, id string) (*domain.Purchase, error)
	// Create runs the availability workflow and persists a purchase.
	Create(ctx context.Context, req services.CreatePurchaseRequest) (*domain.Purchase, error)
	// Update performs a full replace of an existing purchase.
	Update(ctx context.Context, id string, req services.UpdatePurchaseRequest) (*domain.Purchase, error)
	// Patch applies an RFC 7386 merge patch to an existing purchase.
	Patch(ctx context.Context, id string, patch []byte) (*domain.Purchase, error)
	// Delete removes a purchase permanently.
	Delete(ctx context.Context, id string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for purchases. It depends on the
// abstract service interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	svc     PurchaseService
	idemTTL time.Duration
}

// New constructs and returns a Handlers instance bound to the given service.
// idemTTL bounds how long a given Idempotency-Key replays a stored result.
func New(svc PurchaseService, idemTTL time.Duration) *Handlers {
	return &Handlers{svc: svc, idemTTL: idemTTL}
}

// db exposes the service's GORM handle when the concrete implementation is
// available (ETag stats and idempotency records are best-effort extras that
// bypass the service interface).
func (h *Handlers) db() *gorm.DB {
	if svc, ok := h.svc.(*services.PurchaseService); ok {
		return svc.DB
	}
	return nil
}

//
// DTOs
//

// CreatePurchaseBody is the JSON payload for registering a purchase.
type CreatePurchaseBody struct {
	// BookISBN identifies the book to purchase.
	BookISBN string `json:"bookIsbn" example:"9780307389732"`
	// Quantity is the number of copies (>= 1).
	Quantity *int `json:"quantity" example:"2"`
	// Buyer identifies the purchaser, e.g. an email address.
	Buyer string `json:"buyer" example:"juan.perez@example.com"`
	// Status is the requested initial state; the availability outcome decides
	// the persisted one.
	Status string `json:"status" example:"PENDING"`
	// PurchaseDate is optional; server time is used when omitted.
	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`
}

// UpdatePurchaseBody is the total JSON payload for a full replace.
type UpdatePurchaseBody struct {
	BookISBN     string    `json:"bookIsbn" binding:"required" example:"9780307389732"`
	PurchaseDate time.Time `json:"purchaseDate" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required" example:"1"`
	Buyer        string    `json:"buyer" binding:"required" example:"juan.perez@example.com"`
	Status       string    `json:"status" binding:"required" example:"COMPLETED"`
}

//
// Handlers
//

// ListPurchases godoc
// @ID          listPurchases
// @Summary     List purchases
// @Description Returns all purchases, optionally filtered. Filters combine with AND: bookIsbn matches by substring, buyer and status by equality. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Purchases
// @Produce     json
//
// @Param       bookIsbn       query   string  false "ISBN fragment of the purchased book"  example(9780307)
// @Param       buyer          query   string  false "Exact buyer identity"                 example(juan.perez@example.com)
// @Param       status         query   string  false "Exact purchase status"                example(CONFIRMED)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  domain.Purchase
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /purchases [get]
func (h *Handlers) ListPurchases(c *gin.Context) {
	ctx := c.Request.Context()
	criteria := repo.Criteria{
		BookISBN: c.Query("bookIsbn"),
		Buyer:    c.Query("buyer"),
		Status:   c.Query("status"),
	}

	// ETag pre-check (best effort, unfiltered listings only).
	if db := h.db(); db != nil && criteria.Empty() {
		count, maxTS, err := repo.PurchasesStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"purchases:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.svc.List(ctx, criteria)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	// Zero matches are a valid, explicit empty collection, never "no content".
	ok(c, http.StatusOK, items)
}

// GetPurchase godoc
// @ID          getPurchase
// @Summary     Fetch a purchase
// @Description Returns a single purchase by its identifier.
// @Tags        Purchases
// @Produce     json
//
// @Param       id  path  string  true  "Purchase ID"
//
// @Success     200  {object}  domain.Purchase
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /purchases/{id} [get]
func (h *Handlers) GetPurchase(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPurchaseNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "purchase not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// CreatePurchase godoc
// @ID          createPurchase
// @Summary     Register a purchase
// @Description Validates the payload, checks book availability against the catalogue, and persists the purchase as CONFIRMED or CANCELLED. Supports Idempotency-Key replay.
// @Tags        Purchases
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false  "Key for safe retries"
// @Param       body  body  handlers.CreatePurchaseBody  true  "Purchase to register"
//
// @Success     201  {object}  domain.Purchase
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /purchases [post]
func (h *Handlers) CreatePurchase(c *gin.Context) {
	ctx := c.Request.Context()

	var body CreatePurchaseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// Serve a stored replay when the same (buyer, key) tuple was already
	// processed within the TTL window.
	key, hasKey := middleware.GetIdempotencyKey(c)
	if hasKey {
		if db := h.db(); db != nil {
			rec, err := repo.GetIdempotency(ctx, db, body.Buyer, key, time.Now().UTC())
			if err == nil && rec != nil {
				if p, err := repo.GetPurchase(ctx, db, rec.PurchaseID); err == nil {
					c.Header("Idempotency-Replay", "true")
					ok(c, rec.Status, p)
					return
				}
			}
		}
	}

	created, err := h.svc.Create(ctx, services.CreatePurchaseRequest{
		BookISBN:     body.BookISBN,
		Quantity:     body.Quantity,
		Buyer:        body.Buyer,
		Status:       body.Status,
		PurchaseDate: body.PurchaseDate,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing or invalid purchase fields")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	if hasKey {
		if db := h.db(); db != nil {
			// Best effort: a failed insert only disables replay for this key.
			_, _ = repo.CreateIdempotency(ctx, db, created.Buyer, key, created.ID, http.StatusCreated, h.idemTTL)
		}
	}

	ok(c, http.StatusCreated, created)
}

// UpdatePurchase godoc
// @ID          updatePurchase
// @Summary     Replace a purchase
// @Description Overwrites every field of an existing purchase with the supplied total payload.
// @Tags        Purchases
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                       true  "Purchase ID"
// @Param       body  body  handlers.UpdatePurchaseBody  true  "Replacement payload"
//
// @Success     200  {object}  domain.Purchase
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid payload"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Illegal status transition"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /purchases/{id} [put]
func (h *Handlers) UpdatePurchase(c *gin.Context) {
	var body UpdatePurchaseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), services.UpdatePurchaseRequest{
		BookISBN:     body.BookISBN,
		PurchaseDate: body.PurchaseDate,
		Quantity:     body.Quantity,
		Buyer:        body.Buyer,
		Status:       body.Status,
	})
	if err != nil {
		failForUpdate(c, err)
		return
	}
	ok(c, http.StatusOK, updated)
}

// PatchPurchase godoc
// @ID          patchPurchase
// @Summary     Patch a purchase
// @Description Applies an RFC 7386 JSON merge patch: present keys overwrite, null clears, absent keys stay untouched.
// @Tags        Purchases
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Purchase ID"
// @Param       body  body  string  true  "Merge patch document"
//
// @Success     200  {object}  domain.Purchase
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed patch"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Illegal status transition"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /purchases/{id} [patch]
func (h *Handlers) PatchPurchase(c *gin.Context) {
	if ct := c.ContentType(); ct != "" && ct != "application/merge-patch+json" && ct != "application/json" {
		fail(c, http.StatusUnsupportedMediaType, ErrCodeBadRequest, "expected application/merge-patch+json")
		return
	}

	patch, err := io.ReadAll(c.Request.Body)
	if err != nil || len(strings.TrimSpace(string(patch))) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeMalformedPatch, "empty patch body")
		return
	}

	patched, err := h.svc.Patch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		failForUpdate(c, err)
		return
	}
	ok(c, http.StatusOK, patched)
}

// DeletePurchase godoc
// @ID          deletePurchase
// @Summary     Delete a purchase
// @Description Removes a purchase permanently. There is no soft delete.
// @Tags        Purchases
// @Produce     json
//
// @Param       id  path  string  true  "Purchase ID"
//
// @Success     204  {string}  string  "Deleted"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /purchases/{id} [delete]
func (h *Handlers) DeletePurchase(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrPurchaseNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "purchase not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// failForUpdate maps the shared update/patch error set onto HTTP responses.
func failForUpdate(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPurchaseNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "purchase not found")
	case errors.Is(err, services.ErrMalformedPatch):
		fail(c, http.StatusBadRequest, ErrCodeMalformedPatch, "malformed merge patch")
	case errors.Is(err, services.ErrInvalidRequest):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing or invalid purchase fields")
	case errors.Is(err, services.ErrInvalidTransition):
		fail(c, http.StatusConflict, ErrCodeConflict, "status transition not allowed")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
