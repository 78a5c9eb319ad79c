package routes_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndListUsers(t *testing.T) {
	app := newApp(t)

	res := app.do(http.MethodPost, "/register", "", map[string]string{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, res.Body.String())

	res = app.do(http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var users []map[string]any
	res.JSON(&users)
	require.Len(t, users, 1)
	assert.Equal(t, "a@b.com", users[0]["email"])
	assert.NotEmpty(t, users[0]["hashed_password"])
	assert.NotEqual(t, "pw", users[0]["hashed_password"])
	assert.EqualValues(t, 1, users[0]["id"])
}

func TestRegisterDuplicateEmailFails(t *testing.T) {
	app := newApp(t)
	body := map[string]string{"email": "a@b.com", "password": "pw"}

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/register", "", body).Code)

	res := app.do(http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "Internal Server Error", res.Map()["detail"])

	var users []map[string]any
	app.do(http.MethodGet, "/users", "", nil).JSON(&users)
	assert.Len(t, users, 1)
}

func TestRegisterValidation(t *testing.T) {
	app := newApp(t)

	res := app.do(http.MethodPost, "/register", "", map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
	var body struct {
		Detail []struct {
			Loc  []string `json:"loc"`
			Type string   `json:"type"`
		} `json:"detail"`
	}
	res.JSON(&body)
	require.Len(t, body.Detail, 1)
	assert.Equal(t, []string{"body", "password"}, body.Detail[0].Loc)
	assert.Equal(t, "missing", body.Detail[0].Type)

	res = app.do(http.MethodPost, "/register", "", `{"email":`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestLogin(t *testing.T) {
	app := newApp(t)
	require.Equal(t, http.StatusOK,
		app.do(http.MethodPost, "/register", "", map[string]string{"email": "a@b.com", "password": "pw"}).Code)

	res := app.login("a@b.com", "pw")
	require.Equal(t, http.StatusOK, res.Code)
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	res.JSON(&tok)
	assert.Equal(t, "bearer", tok.TokenType)
	subject, err := app.tokens.CurrentUser(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", subject)

	res = app.login("a@b.com", "wrong")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid credentials", res.Map()["detail"])
	assert.NotContains(t, res.Map(), "access_token")

	res = app.login("ghost@b.com", "pw")
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = app.login("a@b.com", "")
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newApp(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/products"},
		{http.MethodPost, "/createProduct"},
		{http.MethodPut, "/updateProduct/1"},
		{http.MethodDelete, "/deleteProduct/1"},
		{http.MethodGet, "/suppliers"},
		{http.MethodPost, "/createSupplier"},
		{http.MethodPut, "/updateSupplier/1"},
		{http.MethodDelete, "/deleteSupplier/1"},
		{http.MethodPost, "/graphql"},
		{http.MethodGet, "/ws/inventory"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			res := app.do(rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, res.Code)
			assert.Equal(t, "Not authenticated", res.Map()["detail"])
			assert.Equal(t, "Bearer", res.Header().Get("WWW-Authenticate"))

			res = app.do(rt.method, rt.path, "not.a.token", nil)
			assert.Equal(t, http.StatusUnauthorized, res.Code)
			assert.Equal(t, "Could not validate credentials", res.Map()["detail"])
		})
	}
}
