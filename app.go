package arcade

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
)

// App binds a layout to a navigator and mounts them onto a Router. It moves
// from unmounted to mounted once and never back.
type App struct {
	mu      sync.Mutex
	layout  Layout
	nav     *Navigator
	mounted bool
}

// New creates an unmounted App serving table inside layout.
func New(layout Layout, table *Table, options ...Option) (*App, error) {
	if layout == nil {
		return nil, errors.New("arcade: nil layout")
	}
	if table == nil {
		return nil, errors.New("arcade: nil route table")
	}
	nav := NewNavigator(table, options...)
	nav.layout = layout
	return &App{layout: layout, nav: nav}, nil
}

func (a *App) Navigator() *Navigator {
	return a.nav
}

func (a *App) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounted
}

// Mount checks that the layout renders an element with id host around the
// view and installs the navigator on router at its base path. Call it exactly
// once: later calls return ErrAlreadyMounted.
func (a *App) Mount(router Router, host string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mounted {
		return ErrAlreadyMounted
	}
	if err := checkHost(a.layout, host); err != nil {
		return err
	}
	a.nav.host = host
	router.Mount(a.nav.base, a.nav)
	a.mounted = true
	return nil
}

const viewMarker = "<!--arcade:mount-view-->"

type markerView struct{}

func (markerView) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, viewMarker)
	return err
}

var (
	idAttr  = regexp.MustCompile(`(?i)<([a-z][a-z0-9-]*)[^>]*?\sid\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
	tagName = regexp.MustCompile(`(?i)<(/?)([a-z][a-z0-9-]*)`)
)

// checkHost renders the layout with a marker view and requires the marker to
// be rendered inside the host element.
func checkHost(layout Layout, host string) error {
	if host == "" {
		return fmt.Errorf("%w: empty host id", ErrHostNotFound)
	}
	var buf bytes.Buffer
	if err := layout("", host, markerView{}).Render(context.Background(), &buf); err != nil {
		return fmt.Errorf("render layout: %w", err)
	}
	out := buf.Bytes()
	tag, start, ok := findHost(out, host)
	if !ok {
		return fmt.Errorf("%w: no element with id %q in layout", ErrHostNotFound, host)
	}
	at := bytes.Index(out, []byte(viewMarker))
	if at < start || !stillOpen(out[start:at], tag) {
		return fmt.Errorf("%w: layout does not render the view inside #%s", ErrHostNotFound, host)
	}
	return nil
}

// findHost returns the tag name of the element whose id is host and the
// offset just past its opening tag.
func findHost(out []byte, host string) (string, int, bool) {
	for _, m := range idAttr.FindAllSubmatchIndex(out, -1) {
		var id string
		for g := 2; g <= 4; g++ {
			if m[2*g] >= 0 {
				id = string(out[m[2*g]:m[2*g+1]])
				break
			}
		}
		if id != host {
			continue
		}
		gt := bytes.IndexByte(out[m[1]:], '>')
		if gt < 0 {
			return "", 0, false
		}
		return strings.ToLower(string(out[m[2]:m[3]])), m[1] + gt + 1, true
	}
	return "", 0, false
}

// stillOpen reports whether an element named tag, opened right before
// inner, has not been closed by the end of inner.
func stillOpen(inner []byte, tag string) bool {
	depth := 1
	for _, m := range tagName.FindAllSubmatchIndex(inner, -1) {
		if !strings.EqualFold(string(inner[m[4]:m[5]]), tag) {
			continue
		}
		if m[3] > m[2] {
			depth--
			if depth == 0 {
				return false
			}
		} else {
			depth++
		}
	}
	return true
}

type notFoundView struct{}

func (notFoundView) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, `<h1>Not Found</h1><p>The page you are looking for does not exist.</p>`)
	return err
}
