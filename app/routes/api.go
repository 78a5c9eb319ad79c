// Package routes maps URLs onto controllers.
package routes

import (
	"github.com/shashiranjanraj/stockroom/app/controllers"
	"github.com/shashiranjanraj/stockroom/pkg/ctx"
	"github.com/shashiranjanraj/stockroom/pkg/router"
)

// Controllers are the handlers RegisterAPI mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Products  *controllers.ProductController
	Suppliers *controllers.SupplierController
	Health    *controllers.HealthController
	Feed      *controllers.FeedController
	GraphQL   *controllers.GraphQLController
}

// RegisterAPI mounts every endpoint. authenticate guards the inventory routes.
func RegisterAPI(r *router.Router, c Controllers, authenticate router.Middleware) {
	r.Get("/health", "health", ctx.Wrap(c.Health.Show))

	r.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	r.Get("/users", "users.index", ctx.Wrap(c.Auth.Users))
	r.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))

	api := r.Group("/", authenticate)

	api.Get("/products", "products.index", ctx.Wrap(c.Products.Index))
	api.Post("/createProduct", "products.store", ctx.Wrap(c.Products.Store))
	api.Put("/updateProduct/{id}", "products.update", ctx.Wrap(c.Products.Update))
	api.Delete("/deleteProduct/{id}", "products.destroy", ctx.Wrap(c.Products.Destroy))

	api.Get("/suppliers", "suppliers.index", ctx.Wrap(c.Suppliers.Index))
	api.Post("/createSupplier", "suppliers.store", ctx.Wrap(c.Suppliers.Store))
	api.Put("/updateSupplier/{id}", "suppliers.update", ctx.Wrap(c.Suppliers.Update))
	api.Delete("/deleteSupplier/{id}", "suppliers.destroy", ctx.Wrap(c.Suppliers.Destroy))

	api.Post("/graphql", "graphql", c.GraphQL.Query)
	api.Get("/ws/inventory", "inventory.feed", ctx.Wrap(c.Feed.Connect))
	api.Get("/sse/inventory", "inventory.stream", ctx.Wrap(c.Feed.Stream))
}
