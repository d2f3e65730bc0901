// Package chirouter mounts arcade applications onto a chi router.
package chirouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type chiRouter struct {
	router chi.Router
}

// NewChiRouter returns an arcade.Router backed by r.
func NewChiRouter(r chi.Router) *chiRouter {
	return &chiRouter{router: r}
}

func (r *chiRouter) HandleMethod(method, path string, handler http.Handler) {
	if method == "ALL" || method == "" {
		r.router.Handle(path, handler)
	} else {
		r.router.Method(method, path, handler)
	}
}

func (r *chiRouter) Mount(pattern string, handler http.Handler) {
	r.router.Mount(pattern, handler)
}

func (r *chiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
