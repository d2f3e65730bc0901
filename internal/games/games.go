// Package games declares the arcade's route table.
package games

import (
	"context"

	"go.uber.org/zap"

	"github.com/arcadehub/arcade"
	"github.com/arcadehub/arcade/internal/views"
)

// Game describes one entry of the catalogue.
type Game struct {
	Name  string
	Path  string
	Title string
	// Slug tells the game script which game to start on the board.
	Slug  string
	Blurb string
	Alias []string
}

var catalogue = []Game{
	{
		Name: "GuessTheNumber", Path: "/guess-the-number", Title: "Guess the Number", Slug: "guess-the-number",
		Blurb: "Find the secret number between 1 and 100 with as few guesses as you can.",
	},
	{
		Name: "RockPaperScissors", Path: "/rock-paper-scissors", Title: "Rock Paper Scissors", Slug: "rock-paper-scissors",
		Blurb: "Best of five against the computer.",
	},
	{
		Name: "Tetris", Path: "/tetris", Title: "Tetris", Slug: "tetris",
		Blurb: "Stack the falling pieces and clear lines.",
	},
	{
		Name: "TicTacToe", Path: "/tic-tac-toe", Title: "Tic-Tac-Toe", Slug: "tic-tac-toe",
		Blurb: "Three in a row wins.",
	},
	{
		Name: "SlidingPuzzle", Path: "/SlidingPuzzle", Title: "Sliding Puzzle", Slug: "sliding-puzzle",
		Blurb: "Slide the tiles back into order.",
		Alias: []string{"/sliding-puzzle"},
	},
	{
		Name: "SnakeGame", Path: "/SnakeGame", Title: "Snake", Slug: "snake",
		Blurb: "Eat, grow and do not bite your own tail.",
		Alias: []string{"/snake"},
	},
	{
		Name: "MinesweeperGame", Path: "/MinesweeperGame", Title: "Minesweeper", Slug: "minesweeper",
		Blurb: "Clear the field without setting off a mine.",
		Alias: []string{"/minesweeper"},
	},
	{
		Name: "BreakoutGame", Path: "/BreakoutGame", Title: "Breakout", Slug: "breakout",
		Blurb: "Bounce the ball and break every brick.",
		Alias: []string{"/breakout"},
	},
	{
		Name: "Game2048", Path: "/Game2048", Title: "2048", Slug: "2048",
		Blurb: "Merge the tiles until you reach 2048.",
		Alias: []string{"/2048"},
	},
	{
		Name: "ChessGame", Path: "/ChessGame", Title: "Chess", Slug: "chess",
		Blurb: "A full game of chess for two players on one board.",
		Alias: []string{"/chess"},
	},
}

// Catalogue returns the games in the order they are listed.
func Catalogue() []Game {
	out := make([]Game, len(catalogue))
	copy(out, catalogue)
	return out
}

// VisitCounts reports how often each route was visited.
type VisitCounts interface {
	Counts(ctx context.Context, names ...string) (map[string]int64, error)
}

// Table returns the route table: the home page followed by every game.
// counts may be nil, in which case no visit numbers are shown. When counts
// fails the home page is still served without them and the error is logged.
func Table(counts VisitCounts, logger *zap.Logger) (*arcade.Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	routes := make([]arcade.Route, 0, len(catalogue)+1)
	routes = append(routes, arcade.Route{
		Path:      "/",
		Name:      "Home",
		Title:     "All games",
		Component: views.Home(cards(counts, logger)),
	})
	for _, g := range catalogue {
		routes = append(routes, arcade.Route{
			Path:      g.Path,
			Name:      g.Name,
			Title:     g.Title,
			Component: views.Game(g.Slug, g.Title, g.Blurb),
			Alias:     g.Alias,
		})
	}
	return arcade.NewTable(routes...)
}

func cards(counts VisitCounts, logger *zap.Logger) func(context.Context) ([]views.Card, error) {
	return func(ctx context.Context) ([]views.Card, error) {
		var visits map[string]int64
		if counts != nil {
			names := make([]string, len(catalogue))
			for i, g := range catalogue {
				names[i] = g.Name
			}
			var err error
			if visits, err = counts.Counts(ctx, names...); err != nil {
				logger.Warn("load visit counts", zap.Error(err))
				visits = nil
			}
		}
		out := make([]views.Card, len(catalogue))
		for i, g := range catalogue {
			out[i] = views.Card{Name: g.Name, Title: g.Title, Blurb: g.Blurb, Visits: visits[g.Name], Counted: visits != nil}
		}
		return out, nil
	}
}
