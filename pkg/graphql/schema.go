// Package graphql serves a graphql-go schema over HTTP.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/response"
)

// NewSchema builds a read-only schema from its root query.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Handler executes POSTed queries against schema. Query errors are reported
// in the result's "errors" list with status 200.
func Handler(schema graphql.Schema, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
			response.Error(w, http.StatusBadRequest, "A JSON body with a query is required")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})
		if result.HasErrors() {
			logger.WithCtx(r.Context()).Debug("graphql: query errors", "errors", len(result.Errors))
		}
		response.JSON(w, http.StatusOK, result)
	}
}
