package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"ticketresale/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository that mirrors the SQL semantics:
// substring filters, AND composition, date ordering and seller counts.
type fakeEventRepo struct {
	byID        map[int64]*domain.Event
	nextID      int64
	sellers     *fakeSellerRepo
	createErr   error
	listErr     error
	sawDeadline bool
	lastFilter  domain.EventFilter
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[int64]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	_, f.sawDeadline = ctx.Deadline()
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = f.nextID
	f.nextID++
	e.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := *e
	f.byID[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	events, err := f.List(ctx, domain.EventFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}
	return events[0], nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	_, f.sawDeadline = ctx.Deadline()
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	if filter.ID != nil {
		if err := checkIDRange(*filter.ID); err != nil {
			return nil, err
		}
	}
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if filter.City != "" && !containsFold(e.City, filter.City) {
			continue
		}
		if filter.Name != "" && !containsFold(e.Name, filter.Name) {
			continue
		}
		if filter.Date != nil && e.Date != *filter.Date {
			continue
		}
		if filter.ID != nil && e.ID != *filter.ID {
			continue
		}
		cp := *e
		if f.sellers != nil {
			cp.SellerCount = f.sellers.countFor(e.ID)
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.String() < out[j].Date.String()
		}
		return out[i].ID < out[j].ID
	})
	if p := filter.Pagination; p != nil {
		start := min(p.Offset(), len(out))
		end := min(start+p.PageSize, len(out))
		out = out[start:end]
	}
	return out, nil
}

// checkIDRange fails like PostgreSQL does when an id does not fit an INTEGER column.
func checkIDRange(id int64) error {
	if id > math.MaxInt32 {
		return domain.NewValidationError(fmt.Sprintf("value \"%d\" is out of range for type integer", id))
	}
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// fakeSellerRepo is an in-memory SellerRepository enforcing the event reference.
type fakeSellerRepo struct {
	rows      []*domain.Seller
	nextID    int64
	events    *fakeEventRepo
	createErr error
	listErr   error
}

func newFakeSellerRepo(events *fakeEventRepo) *fakeSellerRepo {
	r := &fakeSellerRepo{nextID: 1, events: events}
	events.sellers = r
	return r
}

func (f *fakeSellerRepo) Create(ctx context.Context, s *domain.Seller) error {
	if f.createErr != nil {
		return f.createErr
	}
	if err := checkIDRange(s.EventID); err != nil {
		return err
	}
	if _, ok := f.events.byID[s.EventID]; !ok {
		return fmt.Errorf("insert seller: %w", domain.ErrReference)
	}
	s.ID = f.nextID
	f.nextID++
	s.CreatedAt = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	stored := *s
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeSellerRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Seller, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if err := checkIDRange(eventID); err != nil {
		return nil, err
	}
	var out []*domain.Seller
	for _, s := range f.rows {
		if s.EventID == eventID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (f *fakeSellerRepo) countFor(eventID int64) int {
	n := 0
	for _, s := range f.rows {
		if s.EventID == eventID {
			n++
		}
	}
	return n
}

// fakeTransactor restores both fake repositories when fn fails.
type fakeTransactor struct {
	events  *fakeEventRepo
	sellers *fakeSellerRepo
	calls   int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	f.calls++
	savedEvents := make(map[int64]*domain.Event, len(f.events.byID))
	for k, v := range f.events.byID {
		savedEvents[k] = v
	}
	savedSellers := append([]*domain.Seller(nil), f.sellers.rows...)

	if err := fn(ctx, domain.Repositories{Events: f.events, Sellers: f.sellers}); err != nil {
		f.events.byID = savedEvents
		f.sellers.rows = savedSellers
		return err
	}
	return nil
}

type testStore struct {
	events     *fakeEventRepo
	sellers    *fakeSellerRepo
	transactor *fakeTransactor
	svc        domain.ListingService
}

func newTestStore() *testStore {
	events := newFakeEventRepo()
	sellers := newFakeSellerRepo(events)
	tx := &fakeTransactor{events: events, sellers: sellers}
	return &testStore{
		events:     events,
		sellers:    sellers,
		transactor: tx,
		svc:        NewListingService(events, sellers, tx, 5*time.Second),
	}
}
