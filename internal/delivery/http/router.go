package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "ticketresale/docs"
	"ticketresale/internal/delivery/http/controllers"
	"ticketresale/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	sellerController *controllers.SellerController,
	listingController *controllers.ListingController,
	systemController *controllers.SystemController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /api/events", eventController.ListEvents)
	mux.HandleFunc("POST /api/events", eventController.CreateEvent)
	mux.HandleFunc("GET /api/events/{id}", eventController.GetEvent)

	// Sellers
	mux.HandleFunc("GET /api/sellers", sellerController.ListSellers)
	mux.HandleFunc("POST /api/sellers", sellerController.CreateSeller)
	mux.HandleFunc("POST /api/listings", listingController.CreateListing)

	// System
	mux.HandleFunc("GET /api/init-db", systemController.InitDB)
	mux.HandleFunc("GET /api/health", systemController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// WithMiddleware wraps the router in request id, access logging and CORS, outermost first.
func WithMiddleware(logger *slog.Logger, allowedOrigins []string, h http.Handler) http.Handler {
	return middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, h)))
}
