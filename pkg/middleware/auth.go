package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/stockroom/pkg/auth"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/response"
)

// Authenticate requires "Authorization: Bearer <token>" and stores the token
// subject in the request context.
func Authenticate(tokens *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				response.Unauthorized(w, "Not authenticated")
				return
			}

			subject, err := tokens.CurrentUser(token)
			if err != nil {
				logger.WithCtx(r.Context()).Debug("auth: rejected token", "error", err)
				response.Unauthorized(w, "Could not validate credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSubject(r.Context(), subject)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
