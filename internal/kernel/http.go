// Package kernel assembles the HTTP handler: global middleware, services,
// controllers and routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/stockroom/app/controllers"
	"github.com/shashiranjanraj/stockroom/app/routes"
	"github.com/shashiranjanraj/stockroom/app/services"
	"github.com/shashiranjanraj/stockroom/pkg/auth"
	"github.com/shashiranjanraj/stockroom/pkg/cache"
	"github.com/shashiranjanraj/stockroom/pkg/database"
	"github.com/shashiranjanraj/stockroom/pkg/event"
	"github.com/shashiranjanraj/stockroom/pkg/metrics"
	"github.com/shashiranjanraj/stockroom/pkg/middleware"
	"github.com/shashiranjanraj/stockroom/pkg/reqid"
	"github.com/shashiranjanraj/stockroom/pkg/router"
	"github.com/shashiranjanraj/stockroom/pkg/ws"
)

// Deps are the long-lived collaborators built at startup.
type Deps struct {
	Store  *database.Store
	Cache  cache.Store
	Tokens *auth.Manager
	Bus    *event.Bus
	Hub    *ws.Hub

	CacheTTL     time.Duration
	RateLimit    int // requests per minute per client; 0 disables
	CORSOrigins  []string
	MaxBodyBytes int64
}

// HTTP is the assembled application.
type HTTP struct {
	router *router.Router
}

// NewHTTP wires Deps into services and controllers and mounts the routes.
func NewHTTP(d Deps) (*HTTP, error) {
	products := services.NewProductService(d.Store, d.Cache, d.CacheTTL, d.Bus)
	suppliers := services.NewSupplierService(d.Store, d.Cache, d.CacheTTL, d.Bus)

	gql, err := controllers.NewGraphQLController(products, suppliers, d.MaxBodyBytes)
	if err != nil {
		return nil, err
	}

	d.Bus.Listen(event.Wildcard, func(e event.Event) {
		metrics.InventoryChanges.WithLabelValues(e.Name).Inc()
	})

	r := router.New()
	// Outermost first.
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions(d.CORSOrigins)),
		middleware.NewRateLimiter(d.RateLimit, time.Minute).Handler,
	)

	r.Get("/metrics", "metrics", metrics.Handler())

	routes.RegisterAPI(r, routes.Controllers{
		Auth:      controllers.NewAuthController(services.NewAuthService(d.Store, d.Tokens)),
		Products:  controllers.NewProductController(products),
		Suppliers: controllers.NewSupplierController(suppliers),
		Health:    controllers.NewHealthController(d.Store),
		Feed:      controllers.NewFeedController(d.Hub, d.Bus),
		GraphQL:   gql,
	}, middleware.Authenticate(d.Tokens))

	return &HTTP{router: r}, nil
}

func (h *HTTP) Handler() http.Handler { return h.router.Handler() }

// Routes lists the mounted routes for route:list.
func (h *HTTP) Routes() []router.RouteInfo { return h.router.Routes() }
