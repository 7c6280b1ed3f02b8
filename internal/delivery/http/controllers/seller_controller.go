package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"ticketresale/internal/delivery/http/helpers"
	"ticketresale/internal/domain"
)

// CreateSellerRequest is the request body for POST /api/sellers.
// event_id and tickets_available may be sent as numbers or numeric strings.
type CreateSellerRequest struct {
	EventID          *helpers.FlexInt64 `json:"event_id" swaggertype:"integer" example:"1"`
	Name             string             `json:"name" example:"Ana"`
	Price            *domain.Price      `json:"price" swaggertype:"number" example:"20.00"`
	City             string             `json:"city" example:"Austin"`
	WhatsApp         string             `json:"whatsapp" example:"+15125550100"`
	TicketsAvailable *helpers.FlexInt64 `json:"tickets_available" swaggertype:"integer" example:"2"`
	TicketDetails    *string            `json:"ticket_details" example:"Section B, Row 4"`
}

// Validate implements Validator.
func (c CreateSellerRequest) Validate() []string {
	errs := c.validateDetails()
	if c.EventID == nil || *c.EventID <= 0 {
		errs = append([]string{"event_id is required"}, errs...)
	}
	return errs
}

// validateDetails checks every field except event_id.
func (c CreateSellerRequest) validateDetails() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Price == nil {
		errs = append(errs, "price is required")
	} else if *c.Price <= 0 {
		errs = append(errs, "price must be a positive number")
	}
	if strings.TrimSpace(c.City) == "" {
		errs = append(errs, "city is required")
	}
	if strings.TrimSpace(c.WhatsApp) == "" {
		errs = append(errs, "whatsapp is required")
	}
	if c.TicketsAvailable != nil && *c.TicketsAvailable < 0 {
		errs = append(errs, "tickets_available must be positive")
	}
	return errs
}

func (c CreateSellerRequest) toInput() domain.CreateSellerInput {
	in := domain.CreateSellerInput{
		Name:     c.Name,
		City:     c.City,
		WhatsApp: c.WhatsApp,
	}
	if c.EventID != nil {
		in.EventID = int64(*c.EventID)
	}
	if c.Price != nil {
		in.Price = *c.Price
	}
	if c.TicketsAvailable != nil {
		n := int(*c.TicketsAvailable)
		in.TicketsAvailable = &n
	}
	if c.TicketDetails != nil {
		in.TicketDetails = *c.TicketDetails
	}
	return in
}

type SellerController struct {
	Logger  *slog.Logger
	Service domain.ListingService
}

func NewSellerController(logger *slog.Logger, svc domain.ListingService) *SellerController {
	return &SellerController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSellers godoc
// @Summary List sellers for an event
// @Description Returns the event's seller listings, cheapest first. An event without sellers yields an empty array.
// @Tags sellers
// @Produce json
// @Param event_id query int true "Event ID"
// @Success 200 {array} domain.Seller
// @Failure 400 {object} helpers.ErrorResponse "event_id missing or invalid"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/sellers [get]
func (c *SellerController) ListSellers(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("event_id")
	if strings.TrimSpace(raw) == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Event ID is required")
		return
	}
	eventID, err := helpers.ParseIDParam("event_id", raw)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	sellers, err := c.Service.ListSellers(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Error fetching sellers")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, sellers)
}

// CreateSeller godoc
// @Summary List tickets for sale
// @Description Creates a seller listing for an existing event. tickets_available defaults to 1.
// @Tags sellers
// @Accept json
// @Produce json
// @Param seller body CreateSellerRequest true "Seller listing"
// @Success 201 {object} domain.Seller
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 422 {object} helpers.ErrorResponse "event_id does not name an existing event"
// @Failure 500 {object} helpers.ErrorResponse
// @Failure 504 {object} helpers.ErrorResponse "the listing may or may not have been saved"
// @Router /api/sellers [post]
func (c *SellerController) CreateSeller(w http.ResponseWriter, r *http.Request) {
	var req CreateSellerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	seller, err := c.Service.CreateSeller(r.Context(), req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Error creating seller")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, seller)
}
