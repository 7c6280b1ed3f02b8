package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ticketresale/internal/delivery/http/helpers"
	"ticketresale/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Name    string  `json:"name" example:"Jazz Night"`
	Date    string  `json:"date" example:"2024-05-01"`
	City    string  `json:"city" example:"Austin"`
	ZipCode *string `json:"zip_code" example:"78701"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	} else if _, err := domain.ParseDate(strings.TrimSpace(c.Date)); err != nil {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	if strings.TrimSpace(c.City) == "" {
		errs = append(errs, "city is required")
	}
	return errs
}

// toInput assumes Validate passed.
func (c CreateEventRequest) toInput() domain.CreateEventInput {
	date, _ := domain.ParseDate(strings.TrimSpace(c.Date))
	in := domain.CreateEventInput{Name: c.Name, Date: date, City: c.City}
	if c.ZipCode != nil {
		in.ZipCode = *c.ZipCode
	}
	return in
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.ListingService
}

func NewEventController(logger *slog.Logger, svc domain.ListingService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Lists events ordered by date, each with the number of sellers listing tickets for it. All filters are optional and combine with AND; city and name match case-insensitive substrings. Without page/page_size every match is returned.
// @Tags events
// @Produce json
// @Param city query string false "City substring"
// @Param name query string false "Name substring"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param id query int false "Exact event id"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {array} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EventFilter{
		City:       q.Get("city"),
		Name:       q.Get("name"),
		Pagination: helpers.ParsePagination(r),
	}
	if s := strings.TrimSpace(q.Get("date")); s != "" {
		date, err := domain.ParseDate(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		filter.Date = &date
	}
	if s := q.Get("id"); s != "" {
		id, err := helpers.ParseIDParam("id", s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.ID = &id
	}

	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Error fetching events")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns one event with its seller count.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseIDParam("id", r.PathValue("id"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "event not found")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err, "Error fetching event")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event. id and created_at are server-generated; zip_code is optional.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Failure 504 {object} helpers.ErrorResponse "the event may or may not have been saved"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.toInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Error creating event")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, event)
}
