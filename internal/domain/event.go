package domain

import (
	"context"
	"math"
	"strings"
	"time"
)

// Event is a ticketed happening that sellers list tickets against.
// swagger:model Event
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Date      Date      `json:"date" swaggertype:"string" example:"2024-05-01"`
	City      string    `json:"city"`
	ZipCode   *string   `json:"zip_code"`
	CreatedAt time.Time `json:"created_at"`

	// SellerCount is computed at query time; it is zero on a freshly created event.
	SellerCount int `json:"seller_count"`
}

// MaxID is the largest id storage can hold; ids and event_id are INTEGER columns.
// A larger id cannot name a stored record.
const MaxID = math.MaxInt32

// EventFilter narrows ListEvents. Zero fields are ignored; set fields combine with AND.
type EventFilter struct {
	City string // case-insensitive substring
	Name string // case-insensitive substring
	Date *Date
	ID   *int64

	// Pagination is optional; nil returns every match.
	Pagination *PaginationParams
}

// CreateEventInput is the caller-supplied part of a new event.
type CreateEventInput struct {
	Name    string
	Date    Date
	City    string
	ZipCode string
}

// Normalize trims surrounding whitespace from the text fields.
func (in CreateEventInput) Normalize() CreateEventInput {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	return in
}

// Validate returns a *ValidationError naming every missing required field, or nil.
func (in CreateEventInput) Validate() error {
	var problems []string
	if in.Name == "" {
		problems = append(problems, "name is required")
	}
	if in.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if in.City == "" {
		problems = append(problems, "city is required")
	}
	if len(problems) > 0 {
		return NewValidationError(problems...)
	}
	return nil
}

// NewEvent builds the Event to insert. ID and CreatedAt are set by the repository.
func NewEvent(in CreateEventInput) *Event {
	e := &Event{
		Name: in.Name,
		Date: in.Date,
		City: in.City,
	}
	if in.ZipCode != "" {
		zip := in.ZipCode
		e.ZipCode = &zip
	}
	return e
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// Create inserts e and fills in ID and CreatedAt.
	Create(ctx context.Context, e *Event) error
	// GetByID returns ErrNotFound when no event has the id.
	GetByID(ctx context.Context, id int64) (*Event, error)
	// List returns matching events ordered by date, each with SellerCount.
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
}
