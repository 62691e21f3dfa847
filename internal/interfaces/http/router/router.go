// Package router assembles the versioned API from domain route groups.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar

	swagger       bool
	swaggerGuards []gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithMiddleware adds middleware that runs on every versioned route
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithSwagger mounts the Swagger UI at /swagger/*any behind the given guards
func WithSwagger(guards ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.swagger = true
		r.swaggerGuards = append(r.swaggerGuards, guards...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds registrars to be mounted by Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// BasePath returns the versioned prefix, e.g. /api/v1
func (r *Router) BasePath() string {
	return "/api/" + r.apiVersion
}

// Setup mounts every registrar under the versioned prefix
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath(), r.middleware...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	if r.swagger {
		handlers := append(append([]gin.HandlerFunc{}, r.swaggerGuards...), ginSwagger.WrapHandler(swaggerFiles.Handler))
		r.engine.GET("/swagger/*any", handlers...)
	}
}

// DomainGroup is a named set of routes sharing a prefix and middleware
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// Route is a registered method and path, relative to the API prefix
type Route struct {
	Method string
	Path   string
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group and its subgroups
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handlers)
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Routes lists every route of the group and its subgroups
func (dg *DomainGroup) Routes() []Route {
	return dg.collect("")
}

func (dg *DomainGroup) collect(parent string) []Route {
	base := path.Join(parent, dg.prefix)
	out := make([]Route, 0, len(dg.routes))
	for _, route := range dg.routes {
		full := path.Join("/", base, route.path)
		out = append(out, Route{Method: route.method, Path: full})
	}
	for _, subgroup := range dg.subgroups {
		out = append(out, subgroup.collect(base)...)
	}
	return out
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
