package ctx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/pkg/apperr"
	"github.com/shashiranjanraj/stockroom/pkg/auth"
	appctx "github.com/shashiranjanraj/stockroom/pkg/ctx"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.OK(map[string]any{"ok": true})
		assert.Equal(t, http.StatusOK, c.WrittenStatus())
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestParamID(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/items/{id}", appctx.Wrap(func(c *appctx.Context) {
		id, ok := c.ParamID("id")
		if !ok {
			return
		}
		c.OK(map[string]uint{"id": id})
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	assert.JSONEq(t, `{"id":42}`, rec.Body.String())

	for _, bad := range []string{"abc", "0", "-1"} {
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+bad, nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, bad)
	}
}

func TestBindJSONValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

	appctx.Wrap(func(c *appctx.Context) {
		var in struct {
			Name *string `json:"name" validate:"required,min=1"`
		}
		if !c.BindJSON(&in) {
			return
		}
		t.Fatal("expected bind to fail")
	})(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decode(t, rec)["detail"].([]any)
	require.Len(t, detail, 1)
	assert.Equal(t, "string_too_short", detail[0].(map[string]any)["type"])
}

func TestFailMapsCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		detail string
	}{
		{apperr.NotFound("Product not found"), http.StatusNotFound, "Product not found"},
		{apperr.New(apperr.CodeInvalid, "Invalid credentials"), http.StatusBadRequest, "Invalid credentials"},
		{errors.New("disk full"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		appctx.Wrap(func(c *appctx.Context) { c.Fail(tc.err) })(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, tc.detail, decode(t, rec)["detail"])
	}
}

func TestSubject(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithSubject(req.Context(), "a@b.com"))

	appctx.Wrap(func(c *appctx.Context) {
		assert.Equal(t, "a@b.com", c.Subject())
		c.OK(nil)
	})(rec, req)
}
