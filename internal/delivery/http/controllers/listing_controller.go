package controllers

import (
	"log/slog"
	"net/http"

	"ticketresale/internal/delivery/http/helpers"
	"ticketresale/internal/domain"
)

// CreateListingRequest is the request body for POST /api/listings.
// Exactly one of event_id and event must be set.
type CreateListingRequest struct {
	EventID *helpers.FlexInt64  `json:"event_id" swaggertype:"integer" example:"1"`
	Event   *CreateEventRequest `json:"event"`
	Seller  ListingSellerFields `json:"seller"`
}

// ListingSellerFields are the seller fields of a listing; the event comes from the enclosing request.
type ListingSellerFields struct {
	Name             string             `json:"name" example:"Ana"`
	Price            *domain.Price      `json:"price" swaggertype:"number" example:"20.00"`
	City             string             `json:"city" example:"Austin"`
	WhatsApp         string             `json:"whatsapp" example:"+15125550100"`
	TicketsAvailable *helpers.FlexInt64 `json:"tickets_available" swaggertype:"integer" example:"2"`
	TicketDetails    *string            `json:"ticket_details" example:"Section B, Row 4"`
}

func (f ListingSellerFields) asSellerRequest(eventID *helpers.FlexInt64) CreateSellerRequest {
	return CreateSellerRequest{
		EventID:          eventID,
		Name:             f.Name,
		Price:            f.Price,
		City:             f.City,
		WhatsApp:         f.WhatsApp,
		TicketsAvailable: f.TicketsAvailable,
		TicketDetails:    f.TicketDetails,
	}
}

// Validate implements Validator.
func (c CreateListingRequest) Validate() []string {
	var errs []string
	hasEventID := c.EventID != nil && *c.EventID > 0
	switch {
	case hasEventID && c.Event != nil:
		errs = append(errs, "only one of event_id and event may be set")
	case !hasEventID && c.Event == nil:
		errs = append(errs, "event_id or event is required")
	case c.Event != nil:
		for _, e := range c.Event.Validate() {
			errs = append(errs, "event "+e)
		}
	}
	for _, e := range c.Seller.asSellerRequest(c.EventID).validateDetails() {
		errs = append(errs, "seller "+e)
	}
	return errs
}

func (c CreateListingRequest) toInput() domain.CreateListingInput {
	in := domain.CreateListingInput{Seller: c.Seller.asSellerRequest(c.EventID).toInput()}
	if c.Event != nil {
		ev := c.Event.toInput()
		in.Event = &ev
	}
	return in
}

// CreateListingResponse is the response body for POST /api/listings.
// Event is null when the listing was attached to an existing event.
type CreateListingResponse struct {
	Event  *domain.Event  `json:"event"`
	Seller *domain.Seller `json:"seller"`
}

type ListingController struct {
	Logger  *slog.Logger
	Service domain.ListingService
}

func NewListingController(logger *slog.Logger, svc domain.ListingService) *ListingController {
	return &ListingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateListing godoc
// @Summary Sell tickets, creating the event if needed
// @Description Creates a seller listing. With "event" the event is created in the same transaction and rolled back if the seller cannot be saved; with "event_id" the listing is attached to an existing event.
// @Tags sellers
// @Accept json
// @Produce json
// @Param listing body CreateListingRequest true "Listing"
// @Success 201 {object} controllers.CreateListingResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 422 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Failure 504 {object} helpers.ErrorResponse
// @Router /api/listings [post]
func (c *ListingController) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, seller, err := c.Service.CreateListing(r.Context(), req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Error creating listing")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, CreateListingResponse{Event: event, Seller: seller})
}
