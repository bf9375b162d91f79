package router

import (
	"net/http"

	"admin-panel/internal/handler"
	"admin-panel/internal/middleware"

	"github.com/rs/zerolog"
)

// Prefix is the versioned path prefix of every API route.
const Prefix = "/api/v1"

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Health   *handler.HealthHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	authenticator middleware.Authenticator,
	allowedOrigins []string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	protect := middleware.Authenticate(authenticator, logger)

	public := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, fn)
	}
	private := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, protect(fn))
	}

	// Health check endpoint (no authentication required)
	public("GET "+Prefix+"/health", h.Health.Check)
	public("GET /health", h.Health.Check)

	public("POST "+Prefix+"/auth/login", h.Auth.Login)
	public("POST "+Prefix+"/auth/register", h.Auth.Register)
	private("GET "+Prefix+"/auth/profile", h.Auth.Profile)
	private("GET "+Prefix+"/users/profile", h.Auth.Profile)

	private("GET "+Prefix+"/categories", h.Category.List)
	private("POST "+Prefix+"/categories", h.Category.Create)
	private("GET "+Prefix+"/categories/{id}", h.Category.Get)
	private("PATCH "+Prefix+"/categories/{id}", h.Category.Update)
	private("DELETE "+Prefix+"/categories/{id}", h.Category.Delete)

	private("GET "+Prefix+"/products", h.Product.List)
	private("POST "+Prefix+"/products", h.Product.Create)
	private("GET "+Prefix+"/products/{id}", h.Product.Get)
	private("PATCH "+Prefix+"/products/{id}", h.Product.Update)
	private("DELETE "+Prefix+"/products/{id}", h.Product.Delete)

	mux.Handle("/", handler.NotFound(logger))

	// Apply middleware in order: RequestID -> Logging -> Recovery -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(allowedOrigins)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
