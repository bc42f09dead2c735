package router

import (
	"strings"

	"minihttp/internal/request"
	"minihttp/internal/response"
)

// Handler produces the response for a matched route.
type Handler func(w *response.Writer, r *request.Request)

// MethodAny matches every request method.
const MethodAny = ""

type matcher func(path string) bool

// route pairs a matcher with its handler. The route table is fixed at
// startup; registration order is the priority order.
type route struct {
	method  string
	match   matcher
	handler Handler
}

// Router selects exactly one handler per request: the first registered
// route whose method and path match wins, and unmatched requests fall
// through to a 404.
type Router struct {
	routes []route
}

func New() *Router {
	return &Router{}
}

// Exact registers a route matching path exactly.
func (r *Router) Exact(method, path string, h Handler) {
	r.routes = append(r.routes, route{
		method:  method,
		match:   func(p string) bool { return p == path },
		handler: h,
	})
}

// Prefix registers a route matching any path that starts with prefix.
func (r *Router) Prefix(method, prefix string, h Handler) {
	r.routes = append(r.routes, route{
		method:  method,
		match:   func(p string) bool { return strings.HasPrefix(p, prefix) },
		handler: h,
	})
}

// Route returns the handler for the request. The request version never
// participates in routing.
func (r *Router) Route(method, path string) Handler {
	for _, rt := range r.routes {
		if rt.method != MethodAny && rt.method != method {
			continue
		}
		if rt.match(path) {
			return rt.handler
		}
	}
	return NotFound
}

// Dispatch routes the request and runs its handler. Its signature matches
// server.Handler so a Router can serve directly.
func (r *Router) Dispatch(w *response.Writer, req *request.Request) {
	r.Route(req.Method, req.Path)(w, req)
}

// NotFound is the fallback handler for unmatched requests.
func NotFound(w *response.Writer, _ *request.Request) {
	w.EmptyResponse(response.StatusNotFound)
}
