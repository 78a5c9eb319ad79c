package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSOptions configures CORS.
type CORSOptions struct {
	AllowedOrigins []string // "*" allows any origin
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int // preflight cache, seconds
}

// DefaultCORSOptions allows origins and the methods and headers the API uses.
func DefaultCORSOptions(origins []string) CORSOptions {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return CORSOptions{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}
}

// CORS adds Access-Control headers for allowed origins and answers preflight
// requests with 204.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := ""
			for _, o := range opts.AllowedOrigins {
				if o == "*" || (origin != "" && o == origin) {
					allowed = o
					break
				}
			}

			if allowed != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				h.Set("Access-Control-Expose-Headers", "X-Request-ID")
				if allowed != "*" {
					h.Add("Vary", "Origin")
				}
				if opts.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
