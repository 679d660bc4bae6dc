// Package router mounts the storefront handlers under the versioned API prefix.
package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar adds its routes below the API prefix
type RouteRegistrar interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// CRUDHandler is the set of operations every entity resource exposes.
type CRUDHandler interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	PartialUpdate(c *gin.Context)
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Delete(c *gin.Context)
}

// Router collects registrars and mounts them on the engine under /api/<version>.
type Router struct {
	engine     *gin.Engine
	version    string
	registrars []RouteRegistrar
}

// RouterOption configures NewRouter
type RouterOption func(*Router)

// WithAPIVersion replaces the default "v1"
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.version = version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BasePath is the API prefix, "/api/v1" by default
func (r *Router) BasePath() string {
	return "/api/" + r.version
}

func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registered group
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath())
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
}

// Group is a set of routes sharing a path prefix and middleware.
type Group struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method, path string
	handlers     []gin.HandlerFunc
}

func NewGroup(prefix string) *Group {
	return &Group{prefix: prefix}
}

// Resource maps the CRUD operations of h onto prefix:
//
//	POST   prefix        Create
//	GET    prefix        List
//	GET    prefix/:id    GetByID
//	PUT    prefix/:id    Update
//	PATCH  prefix/:id    PartialUpdate
//	DELETE prefix/:id    Delete
func Resource(prefix string, h CRUDHandler) *Group {
	return NewGroup(prefix).
		Handle(http.MethodPost, "", h.Create).
		Handle(http.MethodGet, "", h.List).
		Handle(http.MethodGet, "/:id", h.GetByID).
		Handle(http.MethodPut, "/:id", h.Update).
		Handle(http.MethodPatch, "/:id", h.PartialUpdate).
		Handle(http.MethodDelete, "/:id", h.Delete)
}

// Use adds middleware that runs only for this group's routes
func (g *Group) Use(mw ...gin.HandlerFunc) *Group {
	g.middleware = append(g.middleware, mw...)
	return g
}

func (g *Group) Handle(method, path string, handlers ...gin.HandlerFunc) *Group {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

func (g *Group) GET(path string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodGet, path, handlers...)
}

// RegisterRoutes implements RouteRegistrar
func (g *Group) RegisterRoutes(api *gin.RouterGroup) {
	rg := api.Group(g.prefix, g.middleware...)
	for _, rt := range g.routes {
		rg.Handle(rt.method, rt.path, rt.handlers...)
	}
}

// Routes lists "METHOD /prefix/path" in registration order
func (g *Group) Routes() []string {
	out := make([]string, len(g.routes))
	for i, rt := range g.routes {
		out[i] = rt.method + " " + strings.TrimSuffix(g.prefix+rt.path, "/")
	}
	return out
}
