package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/internal/kernel"
	"github.com/shashiranjanraj/stockroom/internal/testdb"
	"github.com/shashiranjanraj/stockroom/pkg/auth"
	"github.com/shashiranjanraj/stockroom/pkg/cache"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	"github.com/shashiranjanraj/stockroom/pkg/router"
	"github.com/shashiranjanraj/stockroom/pkg/ws"
)

type testApp struct {
	t       *testing.T
	store   *database.Store
	tokens  *auth.Manager
	hub     *ws.Hub
	handler http.Handler
	routes  []router.RouteInfo
}

type option func(*kernel.Deps)

func withCacheTTL(ttl time.Duration) option {
	return func(d *kernel.Deps) { d.CacheTTL = ttl }
}

// newApp builds the full handler on a fresh database. The list cache is off
// unless withCacheTTL is given.
func newApp(t *testing.T, opts ...option) *testApp {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	deps := kernel.Deps{
		Store:        testdb.Open(t),
		Cache:        cache.NewMemory(),
		Tokens:       auth.NewManager("test-secret", 30*time.Minute),
		Bus:          event.NewBus(),
		Hub:          ws.NewHub(),
		RateLimit:    0,
		CORSOrigins:  []string{"*"},
		MaxBodyBytes: 1 << 20,
	}
	for _, o := range opts {
		o(&deps)
	}
	go deps.Hub.Run(ctx)

	h, err := kernel.NewHTTP(deps)
	require.NoError(t, err)
	return &testApp{
		t:       t,
		store:   deps.Store,
		tokens:  deps.Tokens,
		hub:     deps.Hub,
		handler: h.Handler(),
		routes:  h.Routes(),
	}
}

type reply struct {
	*httptest.ResponseRecorder
	t *testing.T
}

func (r reply) JSON(v any) {
	r.t.Helper()
	require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), v), r.Body.String())
}

func (r reply) Map() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(r.Body.Bytes(), &m)
	return m
}

func (a *testApp) do(method, path, token string, body any) reply {
	a.t.Helper()
	var buf *bytes.Reader
	switch b := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(a.t, err)
		buf = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return reply{rec, a.t}
}

func (a *testApp) login(username, password string) reply {
	a.t.Helper()
	form := url.Values{}
	if username != "" {
		form.Set("username", username)
	}
	if password != "" {
		form.Set("password", password)
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return reply{rec, a.t}
}

// token registers a user and logs in.
func (a *testApp) token() string {
	a.t.Helper()
	res := a.do(http.MethodPost, "/register", "", map[string]string{"email": "admin@example.com", "password": "s3cret"})
	require.Equal(a.t, http.StatusOK, res.Code, res.Body.String())

	res = a.login("admin@example.com", "s3cret")
	require.Equal(a.t, http.StatusOK, res.Code, res.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(a.t, json.Unmarshal(res.Body.Bytes(), &tok))
	return tok.AccessToken
}

func (a *testApp) countProducts() int64 {
	var n int64
	require.NoError(a.t, a.store.DB(context.Background()).Model(&models.Product{}).Count(&n).Error)
	return n
}

func product(sku string, stock, supplierID int) map[string]any {
	return map[string]any{
		"name":        "Widget",
		"category":    "Parts",
		"price":       12.5,
		"stock":       stock,
		"sku":         sku,
		"supplier_id": supplierID,
		"status":      "active",
	}
}

func supplier(name string) map[string]any {
	return map[string]any{
		"name":         name,
		"contact_info": "x",
		"address":      "y",
		"phone_number": "1",
		"email":        "a@b.com",
	}
}
