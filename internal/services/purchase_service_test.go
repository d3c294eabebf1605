package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/booklane/go-purchases-backend/internal/catalog"
	"github.com/booklane/go-purchases-backend/internal/clock"
	"github.com/booklane/go-purchases-backend/internal/domain"
	"github.com/booklane/go-purchases-backend/internal/repo"
)

//
// Fakes shared by the service tests
//

// fakeRepo is an in-memory PurchaseRepo that records mutations so tests can
// assert what was (or was not) persisted.
type fakeRepo struct {
	byID map[string]*domain.Purchase

	created []*domain.Purchase
	saved   []*domain.Purchase
	deleted []string

	listCalls   int
	searchCalls int

	createErr error
	getErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*domain.Purchase{}}
}

func (f *fakeRepo) put(p *domain.Purchase) *domain.Purchase {
	cp := *p
	f.byID[cp.ID] = &cp
	return &cp
}

func (f *fakeRepo) CreatePurchase(_ context.Context, _ *gorm.DB, p *domain.Purchase) (*domain.Purchase, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = "generated-id"
	f.created = append(f.created, p)
	return f.put(p), nil
}

func (f *fakeRepo) SavePurchase(_ context.Context, _ *gorm.DB, p *domain.Purchase) (*domain.Purchase, error) {
	f.saved = append(f.saved, p)
	return f.put(p), nil
}

func (f *fakeRepo) GetPurchase(_ context.Context, _ *gorm.DB, id string) (*domain.Purchase, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) ListPurchases(_ context.Context, _ *gorm.DB) ([]domain.Purchase, error) {
	f.listCalls++
	out := []domain.Purchase{}
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) SearchPurchases(_ context.Context, _ *gorm.DB, _ repo.Predicate) ([]domain.Purchase, error) {
	f.searchCalls++
	return []domain.Purchase{}, nil
}

func (f *fakeRepo) DeletePurchase(_ context.Context, _ *gorm.DB, p *domain.Purchase) error {
	f.deleted = append(f.deleted, p.ID)
	delete(f.byID, p.ID)
	return nil
}

// visCall records one SetVisibility invocation.
type visCall struct {
	isbn    string
	visible bool
}

// fakeCatalog is a canned CatalogGateway.
type fakeCatalog struct {
	book   *catalog.Book
	getErr error
	visErr error

	getCalls int
	visCalls []visCall
}

func (f *fakeCatalog) GetBook(_ context.Context, _ string) (*catalog.Book, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.book, nil
}

func (f *fakeCatalog) SetVisibility(_ context.Context, isbn string, visible bool) error {
	f.visCalls = append(f.visCalls, visCall{isbn: isbn, visible: visible})
	return f.visErr
}

func visibleBook(isbn string) *catalog.Book {
	v := true
	return &catalog.Book{BookID: 1, ISBN: isbn, Title: "some title", Visible: &v}
}

func hiddenBook(isbn string) *catalog.Book {
	v := false
	return &catalog.Book{BookID: 1, ISBN: isbn, Title: "some title", Visible: &v}
}

// newTestService wires a PurchaseService over fakes with a fixed clock.
func newTestService(fr *fakeRepo, fc *fakeCatalog) *PurchaseService {
	return &PurchaseService{
		DB:      nil,
		Repo:    fr,
		Catalog: fc,
		Clock:   clock.NewFixed(time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC)),
	}
}

//
// List / Get / Delete
//

func TestList_EmptyCriteriaListsEverything(t *testing.T) {
	fr := newFakeRepo()
	svc := newTestService(fr, &fakeCatalog{})

	out, err := svc.List(context.Background(), repo.Criteria{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out == nil {
		t.Fatalf("expected concrete empty slice")
	}
	if fr.listCalls != 1 || fr.searchCalls != 0 {
		t.Fatalf("expected plain list, got list=%d search=%d", fr.listCalls, fr.searchCalls)
	}
}

func TestList_CriteriaGoThroughSearch(t *testing.T) {
	fr := newFakeRepo()
	svc := newTestService(fr, &fakeCatalog{})

	if _, err := svc.List(context.Background(), repo.Criteria{Buyer: "ana@example.com"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if fr.listCalls != 0 || fr.searchCalls != 1 {
		t.Fatalf("expected search, got list=%d search=%d", fr.listCalls, fr.searchCalls)
	}
}

func TestGet_MapsRepoNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeCatalog{})

	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrPurchaseNotFound) {
		t.Fatalf("expected ErrPurchaseNotFound, got %v", err)
	}
}

func TestGet_PassesThroughOtherErrors(t *testing.T) {
	fr := newFakeRepo()
	boom := errors.New("disk on fire")
	fr.getErr = boom
	svc := newTestService(fr, &fakeCatalog{})

	if _, err := svc.Get(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected raw repo error, got %v", err)
	}
}

func TestDelete_RemovesExisting(t *testing.T) {
	fr := newFakeRepo()
	fr.put(&domain.Purchase{ID: "p1", Status: domain.StatusConfirmed})
	svc := newTestService(fr, &fakeCatalog{})

	if err := svc.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(fr.deleted) != 1 || fr.deleted[0] != "p1" {
		t.Fatalf("expected one deletion of p1, got %v", fr.deleted)
	}
}

func TestDelete_UnknownIDLeavesStoreUntouched(t *testing.T) {
	fr := newFakeRepo()
	fr.put(&domain.Purchase{ID: "p1"})
	svc := newTestService(fr, &fakeCatalog{})

	if err := svc.Delete(context.Background(), "other"); !errors.Is(err, ErrPurchaseNotFound) {
		t.Fatalf("expected ErrPurchaseNotFound, got %v", err)
	}
	if len(fr.deleted) != 0 {
		t.Fatalf("nothing should have been deleted, got %v", fr.deleted)
	}
}
