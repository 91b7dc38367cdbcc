// Package routes provides declarative route registration over net/http.
// Handlers describe their endpoints as route groups; the registrar builds
// the final request multiplexer.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
}

// Registrar collects routes and builds an http.Handler from them.
type Registrar struct {
	mux *http.ServeMux
}

// NewRegistrar creates an empty route registrar.
func NewRegistrar() *Registrar {
	return &Registrar{mux: http.NewServeMux()}
}

// RegisterGroup registers every route in the group under its prefix.
func (r *Registrar) RegisterGroup(group Group) {
	for _, route := range group.Routes {
		r.RegisterRoute(Route{
			Method:  route.Method,
			Pattern: group.Prefix + route.Pattern,
			Handler: route.Handler,
		})
	}
}

// RegisterRoute registers a single route using method-qualified patterns.
func (r *Registrar) RegisterRoute(route Route) {
	r.mux.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
}

// Build returns the assembled handler.
func (r *Registrar) Build() http.Handler {
	return r.mux
}
