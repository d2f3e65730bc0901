package arcade

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testComponent struct {
	content string
}

func (t testComponent) Render(ctx context.Context, w io.Writer) error {
	_, err := w.Write([]byte(t.content))
	return err
}

type componentFunc func(context.Context, io.Writer) error

func (f componentFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

func TestNewTable(t *testing.T) {
	table, err := NewTable(
		Route{Path: "/", Name: "Home", Component: testComponent{"home"}},
		Route{Path: "/tic-tac-toe", Name: "TicTacToe", Title: "Tic-Tac-Toe", Component: testComponent{"ttt"}},
		Route{Path: "/SlidingPuzzle", Name: "SlidingPuzzle", Component: testComponent{"sp"}, Alias: []string{"/sliding-puzzle"}},
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("expected 3 routes, got %d", table.Len())
	}
	var names []string
	for _, r := range table.Routes() {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff(names, []string{"Home", "TicTacToe", "SlidingPuzzle"}); diff != "" {
		t.Errorf("Routes() order mismatch (-got +want):\n%s", diff)
	}
	r, ok := table.ByName("TicTacToe")
	if !ok {
		t.Fatal("ByName(TicTacToe) not found")
	}
	if r.Path != "/tic-tac-toe" || r.DisplayTitle() != "Tic-Tac-Toe" {
		t.Errorf("unexpected route %s", r)
	}
	if _, ok := table.ByName("Nope"); ok {
		t.Error("ByName(Nope) should not be found")
	}
}

func TestNewTableDuplicateRegistration(t *testing.T) {
	// the same path and name registered twice must be rejected, not shadowed
	sp := testComponent{"sliding puzzle"}
	_, err := NewTable(
		Route{Path: "/", Name: "Home", Component: testComponent{"home"}},
		Route{Path: "/SlidingPuzzle", Name: "SlidingPuzzle", Component: sp},
		Route{Path: "/SlidingPuzzle", Name: "SlidingPuzzle", Component: sp},
	)
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if len(cfgErr.Problems) != 2 {
		t.Errorf("expected 2 problems (path and name), got %d: %v", len(cfgErr.Problems), err)
	}
	if !errors.Is(err, ErrDuplicatePath) {
		t.Errorf("expected ErrDuplicatePath, got %v", err)
	}
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if !strings.Contains(err.Error(), `"/SlidingPuzzle"`) {
		t.Errorf("error should name the path, got %q", err.Error())
	}
}

func TestNewTableProblems(t *testing.T) {
	comp := testComponent{"x"}
	tests := []struct {
		name   string
		routes []Route
		want   error
	}{
		{
			name:   "case variant shadows",
			routes: []Route{{Path: "/Tetris", Name: "A", Component: comp}, {Path: "/tetris", Name: "B", Component: comp}},
			want:   ErrDuplicatePath,
		},
		{
			name:   "alias collides with path",
			routes: []Route{{Path: "/snake", Name: "A", Component: comp}, {Path: "/SnakeGame", Name: "B", Component: comp, Alias: []string{"/snake"}}},
			want:   ErrDuplicatePath,
		},
		{
			name:   "params with different names",
			routes: []Route{{Path: "/g/{id}", Name: "A", Component: comp}, {Path: "/g/{slug}", Name: "B", Component: comp}},
			want:   ErrDuplicatePath,
		},
		{
			name:   "param shadows literal",
			routes: []Route{{Path: "/{slug}", Name: "A", Component: comp}, {Path: "/tetris", Name: "B", Component: comp}},
			want:   ErrDuplicatePath,
		},
		{
			name:   "rest shadows deeper path",
			routes: []Route{{Path: "/files/{p...}", Name: "A", Component: comp}, {Path: "/x", Name: "B", Component: comp, Alias: []string{"/files/x"}}},
			want:   ErrDuplicatePath,
		},
		{
			name:   "duplicate name",
			routes: []Route{{Path: "/a", Name: "A", Component: comp}, {Path: "/b", Name: "A", Component: comp}},
			want:   ErrDuplicateName,
		},
		{
			name:   "empty name",
			routes: []Route{{Path: "/a", Component: comp}},
			want:   ErrEmptyName,
		},
		{
			name:   "nil component",
			routes: []Route{{Path: "/a", Name: "A"}},
			want:   ErrNilComponent,
		},
		{
			name:   "malformed path",
			routes: []Route{{Path: "a", Name: "A", Component: comp}},
			want:   ErrInvalidPath,
		},
		{
			name:   "malformed alias",
			routes: []Route{{Path: "/a", Name: "A", Component: comp, Alias: []string{"/b/{"}}},
			want:   ErrInvalidPath,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.routes...)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewTableLiteralBeforeParam(t *testing.T) {
	comp := testComponent{"x"}
	_, err := NewTable(
		Route{Path: "/tetris", Name: "A", Component: comp},
		Route{Path: "/{slug}", Name: "B", Component: comp},
		Route{Path: "/files/x", Name: "C", Component: comp},
		Route{Path: "/files/{p...}", Name: "D", Component: comp},
	)
	if err != nil {
		t.Errorf("a literal declared before a broader pattern is reachable, got %v", err)
	}
}

func TestNewTableReportsAllProblems(t *testing.T) {
	_, err := NewTable(
		Route{Path: "bad", Name: "", Component: nil},
	)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	for _, want := range []error{ErrInvalidPath, ErrEmptyName, ErrNilComponent} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
}

func TestMustTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustTable to panic")
		}
	}()
	MustTable(Route{Path: "/a", Name: "A"})
}

func TestTableRoutesIsCopy(t *testing.T) {
	table := MustTable(Route{Path: "/a", Name: "A", Component: testComponent{"a"}})
	routes := table.Routes()
	routes[0].Name = "changed"
	if _, ok := table.ByName("A"); !ok {
		t.Error("modifying Routes() result changed the table")
	}
	if table.Routes()[0].Name != "A" {
		t.Errorf("expected name A, got %s", table.Routes()[0].Name)
	}
}

func TestTablePrint(t *testing.T) {
	table := MustTable(
		Route{Path: "/", Name: "Home", Component: testComponent{"home"}},
		Route{Path: "/SnakeGame", Name: "SnakeGame", Title: "Snake", Component: testComponent{"snake"}, Alias: []string{"/snake"}},
	)
	var sb strings.Builder
	if err := table.Print(&sb); err != nil {
		t.Fatal(err)
	}
	want := "" +
		"PATH        NAME       TITLE  ALIASES\n" +
		"/           Home       Home   \n" +
		"/SnakeGame  SnakeGame  Snake  /snake\n"
	if diff := cmp.Diff(sb.String(), want); diff != "" {
		t.Errorf("Print() mismatch (-got +want):\n%s", diff)
	}
}
