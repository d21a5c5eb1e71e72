package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// catalogMethods are the verbs the catalog routes answer. Reads are public;
// writes carry a bearer token, never cookies.
var catalogMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

func catalogCORSOptions(allowedOrigins []string, isDevelopment bool) cors.Options {
	// Storefronts on any origin may browse the catalog unless origins are pinned
	if isDevelopment || len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: catalogMethods,
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		// Preflights only precede writes; cache them for an hour
		MaxAge: 3600,
	}
}

// CORSMiddleware lets browser storefronts read the catalog and the back
// office send authenticated writes.
func CORSMiddleware(allowedOrigins []string, isDevelopment bool) func(http.Handler) http.Handler {
	return cors.Handler(catalogCORSOptions(allowedOrigins, isDevelopment))
}

// DefaultMiddlewareStack returns the chi middleware every route runs behind
func DefaultMiddlewareStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Compress(5),
	}
}
