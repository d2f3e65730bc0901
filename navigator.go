package arcade

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/angelofallars/htmx-go"
)

// Layout renders the page shell around a view. The shell must contain an
// element whose id is host; the view is rendered inside it.
type Layout func(title, host string, view Component) Component

// Match is the result of resolving a path against a Table.
type Match struct {
	Route   *Route
	Pattern string
	Params  map[string]string
	// Canonical is the route's primary path with Params filled in.
	Canonical string

	index int
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithErrorHandler sets the handler for render errors. The default responds
// with a plain 500.
func WithErrorHandler(onError func(http.ResponseWriter, *http.Request, error)) Option {
	return func(n *Navigator) {
		n.onError = onError
	}
}

// WithMiddlewares adds middlewares applied to every route, outside of the
// route's own middlewares.
func WithMiddlewares(middlewares ...MiddlewareFunc) Option {
	return func(n *Navigator) {
		n.middlewares = append(n.middlewares, middlewares...)
	}
}

// WithNotFound sets the view rendered for paths that match no route.
func WithNotFound(view Component) Option {
	return func(n *Navigator) {
		n.notFound = view
	}
}

// WithBase serves the table below a path prefix.
func WithBase(base string) Option {
	return func(n *Navigator) {
		n.base = "/" + strings.Trim(base, "/")
	}
}

// WithCaseSensitive makes literal path segments match case-sensitively.
func WithCaseSensitive() Option {
	return func(n *Navigator) {
		n.sensitive = true
	}
}

// WithStrict stops a trailing slash from being ignored.
func WithStrict() Option {
	return func(n *Navigator) {
		n.strict = true
	}
}

// Navigator resolves request paths against a Table, first match wins, and
// renders the matched route's component. It is safe for concurrent use once
// constructed.
type Navigator struct {
	table       *Table
	layout      Layout
	host        string
	base        string
	sensitive   bool
	strict      bool
	notFound    Component
	onError     func(http.ResponseWriter, *http.Request, error)
	middlewares []MiddlewareFunc
	handlers    []http.Handler
}

func NewNavigator(table *Table, options ...Option) *Navigator {
	n := &Navigator{
		table:    table,
		base:     "/",
		notFound: notFoundView{},
		onError: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
	}
	for _, opt := range options {
		opt(n)
	}
	n.handlers = make([]http.Handler, len(table.routes))
	for i := range table.routes {
		n.handlers[i] = n.buildHandler(&table.routes[i])
	}
	return n
}

func (n *Navigator) Table() *Table {
	return n.table
}

// Host is the id of the element views are rendered into.
func (n *Navigator) Host() string {
	return n.host
}

func (n *Navigator) Base() string {
	return n.base
}

func (n *Navigator) buildHandler(route *Route) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.render(w, r, route.DisplayTitle(), route.Component, http.StatusOK)
	})
	for _, mw := range route.Middlewares {
		handler = mw(handler, route)
	}
	for _, mw := range n.middlewares {
		handler = mw(handler, route)
	}
	return handler
}

// Resolve matches path, relative to the base, against the table. Entries are
// tried in registration order, each route's path before its aliases.
func (n *Navigator) Resolve(path string) (Match, bool) {
	for _, e := range n.table.entries {
		params, ok := e.pattern.match(path, n.sensitive, n.strict)
		if !ok {
			continue
		}
		route := &n.table.routes[e.route]
		m := Match{Route: route, Pattern: e.pattern.raw, Params: params, index: e.route}
		m.Canonical = n.canonical(e, params)
		return m, true
	}
	return Match{}, false
}

func (n *Navigator) canonical(e tableEntry, params map[string]string) string {
	primary := e.pattern
	if primary.raw != n.table.routes[e.route].Path {
		for _, other := range n.table.entries {
			if other.route == e.route {
				primary = other.pattern
				break
			}
		}
	}
	path, err := primary.format(params)
	if err != nil {
		// an alias may not carry every parameter of the primary path
		path, _ = e.pattern.format(params)
	}
	return n.withBase(path)
}

// URLFor returns the path of the named route. See URLFor for the accepted
// argument forms.
func (n *Navigator) URLFor(name string, args ...any) (string, error) {
	return n.urlFor(nil, name, args...)
}

func (n *Navigator) urlFor(current map[string]string, name string, args ...any) (string, error) {
	i, ok := n.table.byName[name]
	if !ok {
		return "", fmt.Errorf("urlfor: %w: %q", ErrUnknownRoute, name)
	}
	for _, e := range n.table.entries {
		if e.route != i {
			continue
		}
		path, err := e.pattern.format(current, args...)
		if err != nil {
			return "", fmt.Errorf("urlfor %s: %w", name, err)
		}
		return n.withBase(path), nil
	}
	return "", fmt.Errorf("urlfor: %w: %q", ErrUnknownRoute, name)
}

func (n *Navigator) withBase(path string) string {
	if n.base == "/" {
		return path
	}
	if path == "/" {
		return n.base
	}
	return n.base + path
}

func (n *Navigator) trimBase(path string) (string, bool) {
	if n.base == "/" {
		return path, true
	}
	rest, ok := strings.CutPrefix(path, n.base)
	if !ok || rest != "" && rest[0] != '/' {
		return "", false
	}
	if rest == "" {
		rest = "/"
	}
	return rest, true
}

func (n *Navigator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	path, ok := n.trimBase(r.URL.EscapedPath())
	var m Match
	if ok {
		m, ok = n.Resolve(path)
	}
	ctx := navigatorCtx.WithValue(r.Context(), n)
	if !ok {
		n.render(w, r.WithContext(ctx), "Not Found", n.notFound, http.StatusNotFound)
		return
	}
	ctx = matchCtx.WithValue(ctx, &m)
	n.handlers[m.index].ServeHTTP(w, r.WithContext(ctx))
}

// render writes view with the given status. An HTMX request aimed at the
// host node gets the bare view; everything else gets the full layout.
func (n *Navigator) render(w http.ResponseWriter, r *http.Request, title string, view Component, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", "HX-Request")
	w.Header().Add("Vary", "HX-Target")

	resp := htmx.NewResponse().StatusCode(status)
	comp := view
	switch {
	case n.isPartial(r):
		if m := matchCtx.Value(r.Context()); m != nil && m.Canonical != r.URL.EscapedPath() {
			resp = resp.PushURL(withQuery(m.Canonical, r.URL.RawQuery))
		}
	case htmx.IsHTMX(r):
		resp = resp.Retarget("body")
		comp = n.page(title, view)
	default:
		comp = n.page(title, view)
	}

	buf := newBuffered(w)
	if err := comp.Render(r.Context(), buf); err != nil {
		buf.discard()
		n.onError(w, r, fmt.Errorf("render %s: %w", title, err))
		return
	}
	if htmx.IsHTMX(r) {
		if err := resp.Write(w); err != nil {
			buf.discard()
			n.onError(w, r, fmt.Errorf("write htmx headers: %w", err))
			return
		}
	} else {
		w.WriteHeader(status)
	}
	// the client may be gone; nothing useful can be done about it here
	_ = buf.close()
}

func withQuery(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

func (n *Navigator) page(title string, view Component) Component {
	if n.layout == nil {
		return view
	}
	return n.layout(title, n.host, view)
}
