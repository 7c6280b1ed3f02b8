package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ticketresale/internal/domain"
)

type listingService struct {
	eventRepo      domain.EventRepository
	sellerRepo     domain.SellerRepository
	transactor     domain.Transactor
	contextTimeout time.Duration
}

func NewListingService(eventRepo domain.EventRepository,
	sellerRepo domain.SellerRepository,
	transactor domain.Transactor,
	timeout time.Duration,
) domain.ListingService {
	return &listingService{
		eventRepo:      eventRepo,
		sellerRepo:     sellerRepo,
		transactor:     transactor,
		contextTimeout: timeout,
	}
}

func (s *listingService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	filter.City = strings.TrimSpace(filter.City)
	filter.Name = strings.TrimSpace(filter.Name)
	if p := filter.Pagination; p != nil && (p.Page < 1 || p.PageSize < 1) {
		return nil, domain.NewValidationError("page and page_size must be positive")
	}
	if filter.ID != nil && *filter.ID > domain.MaxID {
		return []*domain.Event{}, nil
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *listingService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id <= 0 || id > domain.MaxID {
		return nil, domain.ErrNotFound
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *listingService) ListSellers(ctx context.Context, eventID int64) ([]*domain.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID <= 0 {
		return nil, domain.NewValidationError("event_id is required")
	}
	if eventID > domain.MaxID {
		return []*domain.Seller{}, nil
	}
	sellers, err := s.sellerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	if sellers == nil {
		sellers = []*domain.Seller{}
	}
	return sellers, nil
}

func (s *listingService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	event := domain.NewEvent(in)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *listingService) CreateSeller(ctx context.Context, in domain.CreateSellerInput) (*domain.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.EventID > domain.MaxID {
		return nil, fmt.Errorf("create seller: %w", domain.ErrReference)
	}
	seller := domain.NewSeller(in)
	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, fmt.Errorf("create seller: %w", err)
	}
	return seller, nil
}

// CreateListing attaches a seller to an existing event, or creates the event and the seller in
// one transaction so a failed seller insert leaves no orphan event behind.
func (s *listingService) CreateListing(ctx context.Context, in domain.CreateListingInput) (*domain.Event, *domain.Seller, error) {
	if in.Event == nil {
		seller, err := s.CreateSeller(ctx, in.Seller)
		if err != nil {
			return nil, nil, err
		}
		return nil, seller, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventIn := in.Event.Normalize()
	sellerIn := in.Seller.Normalize()
	var problems []string
	if err := eventIn.Validate(); err != nil {
		problems = append(problems, prefixProblems("event", err)...)
	}
	if err := sellerIn.ValidateDetails(); err != nil {
		problems = append(problems, prefixProblems("seller", err)...)
	}
	if len(problems) > 0 {
		return nil, nil, domain.NewValidationError(problems...)
	}

	var event *domain.Event
	var seller *domain.Seller
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		e := domain.NewEvent(eventIn)
		if err := repos.Events.Create(ctx, e); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		sellerIn.EventID = e.ID
		sl := domain.NewSeller(sellerIn)
		if err := repos.Sellers.Create(ctx, sl); err != nil {
			return fmt.Errorf("create seller: %w", err)
		}
		event, seller = e, sl
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create listing: %w", err)
	}
	return event, seller, nil
}

func prefixProblems(prefix string, err error) []string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return []string{prefix + ": " + err.Error()}
	}
	out := make([]string, len(verr.Problems))
	for i, p := range verr.Problems {
		out[i] = prefix + " " + p
	}
	return out
}
