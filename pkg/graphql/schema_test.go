package graphql_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/pkg/graphql"
)

func echoSchema(t *testing.T) gql.Schema {
	t.Helper()
	schema, err := graphql.NewSchema(gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"echo": &gql.Field{
				Type: gql.String,
				Args: gql.FieldConfigArgument{"text": &gql.ArgumentConfig{Type: gql.String}},
				Resolve: func(p gql.ResolveParams) (any, error) {
					return p.Args["text"], nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return schema
}

func TestHandlerRunsQueryWithVariables(t *testing.T) {
	h := graphql.Handler(echoSchema(t), 1<<20)
	body := `{"query":"query($t: String){ echo(text: $t) }","variables":{"t":"hi"}}`

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"echo":"hi"}}`, rec.Body.String())
}

func TestHandlerReportsQueryErrors(t *testing.T) {
	h := graphql.Handler(echoSchema(t), 1<<20)
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ nope }"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out["errors"])
}

func TestHandlerRejectsBadBody(t *testing.T) {
	h := graphql.Handler(echoSchema(t), 1<<20)
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
