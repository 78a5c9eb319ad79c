// Package router wraps chi with named routes and prefix/middleware groups.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered route, for route:list.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	routes map[string]string
	infos  []RouteInfo
}

type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func New() *Router {
	return &Router{
		mux:    chi.NewRouter(),
		routes: make(map[string]string),
	}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// Use appends global middleware. Must be called before any route is added.
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodGet, path, name, h, mws...)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPost, path, name, h, mws...)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPut, path, name, h, mws...)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodDelete, path, name, h, mws...)
}

// Path returns the path registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.routes[name]
	return path, ok
}

// URL fills {param} placeholders of the named route.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}

	return path, nil
}

// Routes lists every route sorted by path, then method.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	out := append([]RouteInfo(nil), r.infos...)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func (r *Router) mount(method, path, name string, h http.Handler, mws ...Middleware) {
	r.register(method, normalizePath(path), name, chain(h, mws...))
}

func (r *Router) register(method, fullPath, name string, h http.Handler) {
	r.mux.Method(method, fullPath, h)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, RouteInfo{Method: method, Path: fullPath, Name: name})
	if name != "" {
		r.routes[name] = fullPath
	}
}

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: append(append([]Middleware(nil), g.middlewares...), middlewares...),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodGet, path, name, h, mws...)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPost, path, name, h, mws...)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPut, path, name, h, mws...)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodDelete, path, name, h, mws...)
}

func (g *Group) mount(method, path, name string, h http.Handler, mws ...Middleware) {
	combined := append(append([]Middleware(nil), g.middlewares...), mws...)
	g.router.register(method, joinPath(g.prefix, path), name, chain(h, combined...))
}

func chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func joinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}

	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

func normalizePath(path string) string {
	return joinPath(path)
}
