package arcade

import (
	"context"
	"net/http"

	"github.com/angelofallars/htmx-go"
)

// isPartial reports whether r is an HTMX request that only wants the view
// swapped into the host node.
func (n *Navigator) isPartial(r *http.Request) bool {
	if !htmx.IsHTMX(r) || n.host == "" {
		return false
	}
	target, ok := htmx.GetTarget(r)
	return ok && target == n.host
}

// Navigate sends the client to the named route. HTMX requests get an
// HX-Location header so the view is swapped into the host node without a
// full reload; other requests get a 303 redirect.
func Navigate(w http.ResponseWriter, r *http.Request, name string, args ...any) error {
	path, err := URLFor(r.Context(), name, args...)
	if err != nil {
		return err
	}
	if !htmx.IsHTMX(r) {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return nil
	}
	resp := htmx.NewResponse().StatusCode(http.StatusOK)
	if host := HostFrom(r.Context()); host != "" {
		resp = resp.LocationWithContext(path, htmx.LocationContext{Target: "#" + host})
	} else {
		resp = resp.Location(path)
	}
	return resp.Write(w)
}

// HostFrom returns the host node id of the navigator serving ctx.
func HostFrom(ctx context.Context) string {
	if n := NavigatorFrom(ctx); n != nil {
		return n.host
	}
	return ""
}
