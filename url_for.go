package arcade

import (
	"context"
	"errors"

	"github.com/jackielii/ctxkey"
)

var (
	navigatorCtx = ctxkey.New[*Navigator]("arcade.navigator", nil)
	matchCtx     = ctxkey.New[*Match]("arcade.match", nil)
)

// URLFor returns the path of the route registered under name, using the
// navigator serving the current request.
//
// Parameters can be given positionally, as name/value pairs or as a single
// map[string]any:
//
//	URLFor(ctx, "Game", 42)
//	URLFor(ctx, "Game", "id", 42)
//	URLFor(ctx, "Game", map[string]any{"id": 42})
//
// Parameters that are not given are taken from the current request's match
// when it has a parameter of the same name.
func URLFor(ctx context.Context, name string, args ...any) (string, error) {
	n := navigatorCtx.Value(ctx)
	if n == nil {
		return "", errors.New("urlfor: navigator not found in context")
	}
	var current map[string]string
	if m := matchCtx.Value(ctx); m != nil {
		current = m.Params
	}
	return n.urlFor(current, name, args...)
}

// CurrentRoute returns the route matched for the current request.
func CurrentRoute(ctx context.Context) (*Route, bool) {
	m := matchCtx.Value(ctx)
	if m == nil {
		return nil, false
	}
	return m.Route, true
}

// CurrentMatch returns the full match for the current request.
func CurrentMatch(ctx context.Context) (Match, bool) {
	m := matchCtx.Value(ctx)
	if m == nil {
		return Match{}, false
	}
	return *m, true
}

// NavigatorFrom returns the navigator serving the current request.
func NavigatorFrom(ctx context.Context) *Navigator {
	return navigatorCtx.Value(ctx)
}
