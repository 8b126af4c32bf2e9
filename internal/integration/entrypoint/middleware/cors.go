package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the given origins. An empty list
// allows every origin; credentials are allowed either way.
func NewCORS(allowedOrigins []string) *cors.Cors {
	opts := cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			StoreHeader,
		},
		ExposedHeaders:   []string{"Content-Type", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if len(allowedOrigins) == 0 {
		// A literal "*" cannot be combined with credentials, so every origin is echoed back.
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	} else {
		opts.AllowedOrigins = allowedOrigins
	}

	return cors.New(opts)
}
