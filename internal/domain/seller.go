package domain

import (
	"context"
	"strings"
	"time"
)

// DefaultTicketsAvailable is used when a listing does not say how many tickets it offers.
const DefaultTicketsAvailable = 1

// Seller is one seller's offer of tickets to an event.
// swagger:model Seller
type Seller struct {
	ID               int64     `json:"id"`
	EventID          int64     `json:"event_id"`
	Name             string    `json:"name"`
	Price            Price     `json:"price" swaggertype:"number" example:"20.00"`
	City             string    `json:"city"`
	WhatsApp         string    `json:"whatsapp"`
	TicketsAvailable int       `json:"tickets_available"`
	TicketDetails    *string   `json:"ticket_details"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateSellerInput is the caller-supplied part of a new seller listing.
type CreateSellerInput struct {
	EventID          int64
	Name             string
	Price            Price
	City             string
	WhatsApp         string
	TicketsAvailable *int
	TicketDetails    string
}

// Normalize trims text fields and applies the ticket count default for nil or zero.
func (in CreateSellerInput) Normalize() CreateSellerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.WhatsApp = strings.TrimSpace(in.WhatsApp)
	in.TicketDetails = strings.TrimSpace(in.TicketDetails)
	if in.TicketsAvailable == nil || *in.TicketsAvailable == 0 {
		n := DefaultTicketsAvailable
		in.TicketsAvailable = &n
	}
	return in
}

// Validate returns a *ValidationError naming every problem, or nil.
// Call it on a normalized input.
func (in CreateSellerInput) Validate() error {
	var problems []string
	if in.EventID <= 0 {
		problems = append(problems, "event_id is required")
	}
	problems = append(problems, in.detailProblems()...)
	if len(problems) > 0 {
		return NewValidationError(problems...)
	}
	return nil
}

// ValidateDetails checks everything except EventID, for listings whose event is created in the
// same submission.
func (in CreateSellerInput) ValidateDetails() error {
	if problems := in.detailProblems(); len(problems) > 0 {
		return NewValidationError(problems...)
	}
	return nil
}

func (in CreateSellerInput) detailProblems() []string {
	var problems []string
	if in.Name == "" {
		problems = append(problems, "name is required")
	}
	if in.Price <= 0 {
		problems = append(problems, "price must be a positive number")
	}
	if in.City == "" {
		problems = append(problems, "city is required")
	}
	if in.WhatsApp == "" {
		problems = append(problems, "whatsapp is required")
	}
	if in.TicketsAvailable != nil && *in.TicketsAvailable < 0 {
		problems = append(problems, "tickets_available must be positive")
	}
	return problems
}

// NewSeller builds the Seller to insert from a normalized input.
func NewSeller(in CreateSellerInput) *Seller {
	s := &Seller{
		EventID:          in.EventID,
		Name:             in.Name,
		Price:            in.Price,
		City:             in.City,
		WhatsApp:         in.WhatsApp,
		TicketsAvailable: DefaultTicketsAvailable,
	}
	if in.TicketsAvailable != nil {
		s.TicketsAvailable = *in.TicketsAvailable
	}
	if in.TicketDetails != "" {
		details := in.TicketDetails
		s.TicketDetails = &details
	}
	return s
}

// SellerRepository defines the interface for seller listing storage
type SellerRepository interface {
	// Create inserts s and fills in ID and CreatedAt. An unknown EventID yields ErrReference.
	Create(ctx context.Context, s *Seller) error
	// ListByEventID returns the event's sellers, cheapest first. Never nil.
	ListByEventID(ctx context.Context, eventID int64) ([]*Seller, error)
}
