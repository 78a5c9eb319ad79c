package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/pkg/auth"
	"github.com/shashiranjanraj/stockroom/pkg/middleware"
)

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewManager("secret", time.Minute)
	h := middleware.Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ := auth.SubjectFrom(r.Context())
		_, _ = w.Write([]byte(subject))
	}))

	good, err := tokens.CreateAccessToken("a@b.com")
	require.NoError(t, err)
	forged, err := auth.NewManager("other", time.Minute).CreateAccessToken("a@b.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		detail string
	}{
		{"missing", "", http.StatusUnauthorized, "Not authenticated"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Not authenticated"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "Not authenticated"},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized, "Could not validate credentials"},
		{"wrong key", "Bearer " + forged, http.StatusUnauthorized, "Could not validate credentials"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.Equal(t, tc.detail, detail(t, rec))
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+good)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.com", rec.Body.String())
}

func TestRecovery(t *testing.T) {
	h := middleware.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", detail(t, rec))
}

func TestRateLimiter(t *testing.T) {
	l := middleware.NewRateLimiter(2, time.Minute)
	h := l.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"))
}

func TestRateLimiterWindowResets(t *testing.T) {
	l := middleware.NewRateLimiter(1, 10*time.Millisecond)
	ok, _ := l.Allow("k")
	assert.True(t, ok)
	ok, _ = l.Allow("k")
	assert.False(t, ok)

	time.Sleep(20 * time.Millisecond)
	ok, _ = l.Allow("k")
	assert.True(t, ok)
}

func TestCORS(t *testing.T) {
	h := middleware.CORS(middleware.DefaultCORSOptions([]string{"https://dash.example"}))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
	)

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dash.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
