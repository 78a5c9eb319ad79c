// Package reqid tags every request with an ID, carried in the context and
// echoed in the X-Request-ID response header. A client-supplied ID is kept.
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey struct{}

const Header = "X-Request-ID"

// maxLen caps client-supplied IDs.
const maxLen = 128

// New returns a random UUIDv4.
func New() string {
	return uuid.NewString()
}

func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request ID, or "".
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" || len(id) > maxLen {
				id = New()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
