package arcade

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []segment
		wantErr bool
	}{
		{name: "root", raw: "/"},
		{name: "literal", raw: "/tetris", want: []segment{{name: "tetris"}}},
		{
			name: "param",
			raw:  "/games/{id}",
			want: []segment{{name: "games"}, {name: "id", param: true}},
		},
		{
			name: "rest",
			raw:  "/files/{path...}",
			want: []segment{{name: "files"}, {name: "path", param: true, rest: true}},
		},
		{name: "no leading slash", raw: "tetris", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "trailing slash", raw: "/tetris/", wantErr: true},
		{name: "double slash", raw: "/a//b", wantErr: true},
		{name: "unmatched open", raw: "/games/{id", wantErr: true},
		{name: "brace inside literal", raw: "/ga{mes", wantErr: true},
		{name: "empty param", raw: "/games/{}", wantErr: true},
		{name: "rest not last", raw: "/{path...}/edit", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePattern(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePattern(%q) expected error, got %+v", tt.raw, p.segments)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePattern(%q) unexpected error: %v", tt.raw, err)
			}
			if diff := cmp.Diff(p.segments, tt.want, cmp.AllowUnexported(segment{})); diff != "" {
				t.Errorf("parsePattern(%q) mismatch (-got +want):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestPatternKey(t *testing.T) {
	tests := []struct {
		a, b    string
		collide bool
	}{
		{"/SlidingPuzzle", "/SlidingPuzzle", true},
		{"/SlidingPuzzle", "/slidingpuzzle", true},
		{"/games/{id}", "/games/{slug}", true},
		{"/games/{id}", "/games/new", false},
		{"/", "/home", false},
		{"/files/{p...}", "/files/{q}", false},
	}
	for _, tt := range tests {
		a, err := parsePattern(tt.a)
		if err != nil {
			t.Fatal(err)
		}
		b, err := parsePattern(tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.key() == b.key(); got != tt.collide {
			t.Errorf("key(%q) == key(%q): got %v, want %v", tt.a, tt.b, got, tt.collide)
		}
	}
}

func TestPatternCovers(t *testing.T) {
	tests := []struct {
		earlier, later string
		want           bool
	}{
		{"/{slug}", "/tetris", true},
		{"/{slug}", "/", false},
		{"/{slug}", "/games/new", false},
		{"/Tetris", "/tetris", true},
		{"/tetris", "/{slug}", false},
		{"/files/{p...}", "/files/x", true},
		{"/files/{p...}", "/files/a/{b}", true},
		{"/files/{p...}", "/files", true},
		{"/files/{p}", "/files/{q...}", false},
		{"/games/{id}", "/games/{id}/moves", false},
		{"/", "/", true},
		{"/", "/home", false},
	}
	for _, tt := range tests {
		earlier, err := parsePattern(tt.earlier)
		if err != nil {
			t.Fatal(err)
		}
		later, err := parsePattern(tt.later)
		if err != nil {
			t.Fatal(err)
		}
		if got := earlier.covers(later); got != tt.want {
			t.Errorf("%q covers %q: got %v, want %v", tt.earlier, tt.later, got, tt.want)
		}
	}
}

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		path      string
		sensitive bool
		strict    bool
		want      map[string]string
		wantOK    bool
	}{
		{name: "root", pattern: "/", path: "/", wantOK: true},
		{name: "root does not match others", pattern: "/", path: "/tetris"},
		{name: "literal", pattern: "/tetris", path: "/tetris", wantOK: true},
		{name: "trailing slash ignored", pattern: "/tetris", path: "/tetris/", wantOK: true},
		{name: "trailing slash strict", pattern: "/tetris", path: "/tetris/", strict: true},
		{name: "case insensitive", pattern: "/SlidingPuzzle", path: "/slidingpuzzle", wantOK: true},
		{name: "case sensitive", pattern: "/SlidingPuzzle", path: "/slidingpuzzle", sensitive: true},
		{name: "case sensitive exact", pattern: "/SlidingPuzzle", path: "/SlidingPuzzle", sensitive: true, wantOK: true},
		{name: "prefix only", pattern: "/tetris", path: "/tetris/extra"},
		{name: "too short", pattern: "/games/{id}", path: "/games"},
		{
			name: "param", pattern: "/games/{id}", path: "/games/42",
			want: map[string]string{"id": "42"}, wantOK: true,
		},
		{
			name: "escaped param", pattern: "/games/{id}", path: "/games/a%2Fb",
			want: map[string]string{"id": "a/b"}, wantOK: true,
		},
		{name: "empty param", pattern: "/games/{id}/edit", path: "/games//edit"},
		{
			name: "rest", pattern: "/files/{path...}", path: "/files/a/b/c",
			want: map[string]string{"path": "a/b/c"}, wantOK: true,
		},
		{
			name: "empty rest", pattern: "/files/{path...}", path: "/files/",
			strict: true, want: map[string]string{"path": ""}, wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePattern(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			got, ok := p.match(tt.path, tt.sensitive, tt.strict)
			if ok != tt.wantOK {
				t.Fatalf("match(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if diff := cmp.Diff(got, tt.want); ok && diff != "" {
				t.Errorf("match(%q) params mismatch (-got +want):\n%s", tt.path, diff)
			}
		})
	}
}

func TestPatternFormat(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		fallback map[string]string
		args     []any
		want     string
		wantErr  bool
	}{
		{name: "root", pattern: "/", want: "/"},
		{name: "literal", pattern: "/tic-tac-toe", want: "/tic-tac-toe"},
		{name: "positional", pattern: "/games/{id}/moves/{n}", args: []any{7, 3}, want: "/games/7/moves/3"},
		{name: "pairs", pattern: "/games/{id}/moves/{n}", args: []any{"n", 3, "id", 7}, want: "/games/7/moves/3"},
		{name: "map", pattern: "/games/{id}", args: []any{map[string]any{"id": "x y"}}, want: "/games/x%20y"},
		{name: "fallback", pattern: "/games/{id}", fallback: map[string]string{"id": "9"}, want: "/games/9"},
		{
			name: "fallback fills the rest", pattern: "/games/{id}/moves/{n}",
			fallback: map[string]string{"id": "9"}, args: []any{4}, want: "/games/9/moves/4",
		},
		{name: "rest keeps slashes", pattern: "/files/{path...}", args: []any{"a/b c"}, want: "/files/a/b%20c"},
		{name: "missing", pattern: "/games/{id}", wantErr: true},
		{name: "too many", pattern: "/games/{id}/moves/{n}", args: []any{1, 2, 3}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePattern(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			got, err := p.format(tt.fallback, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("format() expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("format() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("format() = %q, want %q", got, tt.want)
			}
		})
	}
}
