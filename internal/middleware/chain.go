package middleware

import (
	"net/http"
	"time"
)

// Options configures the middleware stack.
type Options struct {
	AllowedOrigin string
	MaxBodyBytes  int64
	// Timeout bounds the whole request. Keep it above the provider timeout
	// so upstream timeouts surface as 504 from the handler.
	Timeout time.Duration
}

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → MaxBytes → Timeout → mux
func Chain(handler http.Handler, opts Options) http.Handler {
	h := handler
	if opts.Timeout > 0 {
		h = http.TimeoutHandler(h, opts.Timeout, `{"error":"request timeout"}`)
	}
	if opts.MaxBodyBytes > 0 {
		h = MaxBytes(opts.MaxBodyBytes)(h)
	}
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(opts.AllowedOrigin)(h)
	return h
}

// MaxBytes limits the request body to the specified number of bytes.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
