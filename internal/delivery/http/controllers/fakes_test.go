package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"ticketresale/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var createdAt = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

// fakeListingService implements domain.ListingService for handler tests.
type fakeListingService struct {
	events  []*domain.Event
	event   *domain.Event
	sellers []*domain.Seller
	err     error

	lastFilter       domain.EventFilter
	lastGetID        int64
	lastSellersEvent int64
	lastEventInput   *domain.CreateEventInput
	lastSellerInput  *domain.CreateSellerInput
	lastListingInput *domain.CreateListingInput
}

func (f *fakeListingService) ListEvents(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	if f.events == nil {
		return []*domain.Event{}, nil
	}
	return f.events, nil
}

func (f *fakeListingService) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	f.lastGetID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeListingService) ListSellers(_ context.Context, eventID int64) ([]*domain.Seller, error) {
	f.lastSellersEvent = eventID
	if f.err != nil {
		return nil, f.err
	}
	if f.sellers == nil {
		return []*domain.Seller{}, nil
	}
	return f.sellers, nil
}

func (f *fakeListingService) CreateEvent(_ context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	f.lastEventInput = &in
	if f.err != nil {
		return nil, f.err
	}
	ev := domain.NewEvent(in.Normalize())
	ev.ID = 1
	ev.CreatedAt = createdAt
	return ev, nil
}

func (f *fakeListingService) CreateSeller(_ context.Context, in domain.CreateSellerInput) (*domain.Seller, error) {
	f.lastSellerInput = &in
	if f.err != nil {
		return nil, f.err
	}
	s := domain.NewSeller(in.Normalize())
	s.ID = 7
	s.CreatedAt = createdAt
	return s, nil
}

func (f *fakeListingService) CreateListing(_ context.Context, in domain.CreateListingInput) (*domain.Event, *domain.Seller, error) {
	f.lastListingInput = &in
	if f.err != nil {
		return nil, nil, f.err
	}
	var ev *domain.Event
	sellerIn := in.Seller.Normalize()
	if in.Event != nil {
		ev = domain.NewEvent(in.Event.Normalize())
		ev.ID = 3
		ev.CreatedAt = createdAt
		sellerIn.EventID = ev.ID
	}
	s := domain.NewSeller(sellerIn)
	s.ID = 9
	s.CreatedAt = createdAt
	return ev, s, nil
}

type fakeInitializer struct {
	already bool
	err     error
	calls   int
}

func (f *fakeInitializer) Initialize(context.Context) (bool, error) {
	f.calls++
	return f.already, f.err
}

type fakePinger struct {
	err         error
	hadDeadline bool
}

func (f *fakePinger) PingContext(ctx context.Context) error {
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}
