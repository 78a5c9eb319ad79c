package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/pkg/reqid"
)

func TestMiddleware(t *testing.T) {
	var seen string
	h := reqid.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, "upstream-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-1", seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, strings.Repeat("x", 500))
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Len(t, seen, 36)
}
