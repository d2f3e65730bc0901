package arcade

import (
	"net/http"
	"strings"
)

// Router is where an App is mounted. It registers handlers for a method and
// pattern and mounts a handler over a whole path prefix.
type Router interface {
	HandleMethod(method, pattern string, handler http.Handler)
	Mount(pattern string, handler http.Handler)
}

const methodAll = "ALL"

type stdRouter struct {
	router *http.ServeMux
}

// NewRouter creates a Router that wraps http.ServeMux.
// If router is nil, it uses http.DefaultServeMux.
//
// Example:
//
//	mux := http.NewServeMux()
//	router := arcade.NewRouter(mux)
//	err := app.Mount(router, "app")
func NewRouter(router *http.ServeMux) *stdRouter {
	if router == nil {
		router = http.DefaultServeMux
	}
	return &stdRouter{router: router}
}

func (r *stdRouter) HandleMethod(method, pattern string, handler http.Handler) {
	if method != methodAll && method != "" {
		pattern = method + " " + pattern
	}
	r.router.Handle(pattern, handler)
}

func (r *stdRouter) Mount(pattern string, handler http.Handler) {
	prefix := strings.TrimSuffix(pattern, "/")
	if prefix != "" {
		r.router.Handle(prefix, handler)
	}
	r.router.Handle(prefix+"/", handler)
}

func (r *stdRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
