// Package views holds the page shell and the views of the arcade. The markup
// lives in the .templ files; run `templ generate` after editing them.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/arcadehub/arcade"
)

const siteName = "Arcade"

// htmxConfig lets a 404 response be swapped into the host node like any
// other page.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"404","swap":true},{"code":"[45]..","swap":false,"error":true}]}`

// Layout is the page shell. Boosted links and forms swap their response into
// the host node, so only the first request loads the whole document.
func Layout(title, host string, view arcade.Component) arcade.Component {
	docTitle := siteName
	if title != "" {
		docTitle = title + " · " + siteName
	}
	return layout(docTitle, host, view)
}

// Card is a game as listed on the home page. Visits is only shown when
// Counted is set.
type Card struct {
	Name    string
	Title   string
	Blurb   string
	Visits  int64
	Counted bool
}

type homeCard struct {
	Card
	URL string
}

// Home lists the games returned by cards.
func Home(cards func(context.Context) ([]Card, error)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		list, err := cards(ctx)
		if err != nil {
			return fmt.Errorf("load game cards: %w", err)
		}
		linked := make([]homeCard, len(list))
		for i, c := range list {
			url, err := arcade.URLFor(ctx, c.Name)
			if err != nil {
				return err
			}
			linked[i] = homeCard{Card: c, URL: url}
		}
		return home(linked).Render(ctx, w)
	})
}

// href resolves a named route, falling back to the site root when rendered
// outside of a request.
func href(ctx context.Context, name string) string {
	url, err := arcade.URLFor(ctx, name)
	if err != nil {
		return "/"
	}
	return url
}

func visits(n int64) string {
	switch n {
	case 0:
		return "not played yet"
	case 1:
		return "1 visit"
	}
	return fmt.Sprintf("%d visits", n)
}
