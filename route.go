package arcade

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// Component is a renderable view. templ.Component satisfies it.
type Component interface {
	Render(context.Context, io.Writer) error
}

// MiddlewareFunc wraps the handler of a single route.
type MiddlewareFunc = func(http.Handler, *Route) http.Handler

// Route associates a URL path with a name and the component rendered for it.
type Route struct {
	// Path is a pattern such as "/tetris" or "/games/{id}". A final
	// "{name...}" parameter captures the rest of the path.
	Path string
	// Name identifies the route for programmatic navigation.
	Name string
	// Title is shown in the document title. Defaults to Name.
	Title     string
	Component Component
	// Alias lists further patterns that resolve to this route.
	Alias       []string
	Middlewares []MiddlewareFunc
}

func (r *Route) DisplayTitle() string {
	return cmp.Or(r.Title, r.Name)
}

func (r Route) String() string {
	var sb strings.Builder
	sb.WriteString("Route{")
	sb.WriteString("\n  name: " + r.Name)
	sb.WriteString("\n  title: " + r.DisplayTitle())
	sb.WriteString("\n  path: " + r.Path)
	for _, alias := range r.Alias {
		sb.WriteString("\n  alias: " + alias)
	}
	fmt.Fprintf(&sb, "\n  middlewares: %d", len(r.Middlewares))
	fmt.Fprintf(&sb, "\n  component: %T", r.Component)
	sb.WriteString("\n}")
	return sb.String()
}

type tableEntry struct {
	route   int
	pattern *pattern
}

// Table is an ordered, immutable set of routes. Build it with NewTable.
type Table struct {
	routes  []Route
	entries []tableEntry
	byName  map[string]int
}

// NewTable validates routes and returns them as a Table. Paths and aliases
// must be well formed and unique, compared case-insensitively with parameter
// names ignored. Names must be non-empty and unique and every route needs a
// component. All problems are reported together in a *ConfigError.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes: slices.Clone(routes),
		byName: make(map[string]int, len(routes)),
	}
	var problems []error
	seen := make(map[string]string)
	for i := range t.routes {
		route := &t.routes[i]
		label := cmp.Or(route.Name, fmt.Sprintf("route #%d", i))

		switch prev, ok := t.byName[route.Name]; {
		case route.Name == "":
			problems = append(problems, fmt.Errorf("%w: route #%d (%s)", ErrEmptyName, i, route.Path))
		case ok:
			problems = append(problems, fmt.Errorf("%w: %q used by route #%d and #%d", ErrDuplicateName, route.Name, prev, i))
		default:
			t.byName[route.Name] = i
		}
		if route.Component == nil {
			problems = append(problems, fmt.Errorf("%w: %s", ErrNilComponent, label))
		}

		for _, raw := range append([]string{route.Path}, route.Alias...) {
			p, err := parsePattern(raw)
			if err != nil {
				problems = append(problems, fmt.Errorf("%w: %s: %w", ErrInvalidPath, label, err))
				continue
			}
			if owner, ok := seen[p.key()]; ok {
				problems = append(problems, fmt.Errorf("%w: %q registered by %s and %s", ErrDuplicatePath, raw, owner, label))
				continue
			}
			if e, ok := t.shadowing(p); ok {
				problems = append(problems, fmt.Errorf("%w: %q of %s is shadowed by %q of %s",
					ErrDuplicatePath, raw, label, e.pattern.raw, cmp.Or(t.routes[e.route].Name, fmt.Sprintf("route #%d", e.route))))
				continue
			}
			seen[p.key()] = label
			t.entries = append(t.entries, tableEntry{route: i, pattern: p})
		}
	}
	if len(problems) > 0 {
		return nil, &ConfigError{Problems: problems}
	}
	return t, nil
}

// shadowing returns the first entry whose pattern already matches every
// path p could match.
func (t *Table) shadowing(p *pattern) (tableEntry, bool) {
	for _, e := range t.entries {
		if e.pattern.covers(p) {
			return e, true
		}
	}
	return tableEntry{}, false
}

// MustTable is like NewTable but panics on error. It is meant for static
// route literals.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns a copy of the routes in registration order.
func (t *Table) Routes() []Route {
	return slices.Clone(t.routes)
}

func (t *Table) Len() int {
	return len(t.routes)
}

// ByName returns the route registered under name.
func (t *Table) ByName(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}
