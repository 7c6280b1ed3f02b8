package domain

import "context"

// CreateListingInput describes the sell-tickets submission. When Event is set the event is
// created first and the seller is attached to it; otherwise Seller.EventID must name an
// existing event.
type CreateListingInput struct {
	Event  *CreateEventInput
	Seller CreateSellerInput
}

// Repositories groups the repositories that share one transaction.
type Repositories struct {
	Events  EventRepository
	Sellers SellerRepository
}

// Transactor runs fn against repositories bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// SchemaStore creates the storage structures for events and sellers.
type SchemaStore interface {
	// EnsureSchema is idempotent and never drops or alters existing data.
	EnsureSchema(ctx context.Context) error
}

// ListingService is the query/write core behind the HTTP API.
type ListingService interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListSellers(ctx context.Context, eventID int64) ([]*Seller, error)
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	CreateSeller(ctx context.Context, in CreateSellerInput) (*Seller, error)
	// CreateListing creates the optional event and the seller atomically.
	CreateListing(ctx context.Context, in CreateListingInput) (*Event, *Seller, error)
}

// SchemaInitializer runs schema creation at most once successfully per process.
type SchemaInitializer interface {
	// Initialize reports already=true when a previous call in this process succeeded.
	Initialize(ctx context.Context) (already bool, err error)
}
