package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ticketresale/internal/delivery/http/helpers"
	"ticketresale/internal/domain"
)

const (
	msgInitialized        = "Database initialized successfully"
	msgAlreadyInitialized = "Database already initialized"
)

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the response body for GET /api/health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type SystemController struct {
	Logger      *slog.Logger
	Initializer domain.SchemaInitializer
	DB          Pinger
	PingTimeout time.Duration
}

func NewSystemController(logger *slog.Logger, initializer domain.SchemaInitializer, db Pinger, pingTimeout time.Duration) *SystemController {
	return &SystemController{
		Logger:      logger,
		Initializer: initializer,
		DB:          db,
		PingTimeout: pingTimeout,
	}
}

// InitDB godoc
// @Summary Initialize the database
// @Description Creates the events and sellers tables if missing. After the first success in this process it answers without touching the database.
// @Tags system
// @Produce json
// @Success 200 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.ErrorResponse "message and error"
// @Router /api/init-db [get]
func (c *SystemController) InitDB(w http.ResponseWriter, r *http.Request) {
	already, err := c.Initializer.Initialize(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusInternalServerError, helpers.ErrorResponse{
			Message: "Error initializing database",
			Error:   err.Error(),
		})
		return
	}
	msg := msgInitialized
	if already {
		msg = msgAlreadyInitialized
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: msg})
}

// Health godoc
// @Summary Health check
// @Description Pings the database.
// @Tags system
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Failure 503 {object} helpers.ErrorResponse
// @Router /api/health [get]
func (c *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.PingTimeout)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.WarnContext(r.Context(), "health check failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
