package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/pkg/apperr"
	gqlhttp "github.com/shashiranjanraj/stockroom/pkg/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.String},
		"category":    &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"stock":       &graphql.Field{Type: graphql.Int},
		"sku":         &graphql.Field{Type: graphql.String},
		"supplier_id": &graphql.Field{Type: graphql.Int},
		"status":      &graphql.Field{Type: graphql.String},
	},
})

var supplierType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Supplier",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":         &graphql.Field{Type: graphql.String},
		"contact_info": &graphql.Field{Type: graphql.String},
		"address":      &graphql.Field{Type: graphql.String},
		"phone_number": &graphql.Field{Type: graphql.String},
		"email":        &graphql.Field{Type: graphql.String},
	},
})

var idArgs = graphql.FieldConfigArgument{
	"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
}

// GraphQLController serves read-only queries over products and suppliers.
// Single-row lookups resolve to null when the id does not exist.
type GraphQLController struct {
	handler http.HandlerFunc
}

func NewGraphQLController(products *services.ProductService, suppliers *services.SupplierService, maxBytes int64) (*GraphQLController, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return products.List(p.Context)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, ok := positiveID(p.Args["id"])
					if !ok {
						return nil, nil
					}
					found, err := products.Find(p.Context, id)
					if apperr.IsCode(err, apperr.CodeNotFound) {
						return nil, nil
					}
					return found, err
				},
			},
			"suppliers": &graphql.Field{
				Type: graphql.NewList(supplierType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return suppliers.List(p.Context)
				},
			},
			"supplier": &graphql.Field{
				Type: supplierType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, ok := positiveID(p.Args["id"])
					if !ok {
						return nil, nil
					}
					found, err := suppliers.Find(p.Context, id)
					if apperr.IsCode(err, apperr.CodeNotFound) {
						return nil, nil
					}
					return found, err
				},
			},
		},
	})

	schema, err := gqlhttp.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{handler: gqlhttp.Handler(schema, maxBytes)}, nil
}

func (g *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	g.handler(w, r)
}

func positiveID(v any) (uint, bool) {
	id, ok := v.(int)
	if !ok || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
