package arcade

import (
	"cmp"
	"fmt"
	"net/url"
	"strings"
)

type segment struct {
	name  string
	param bool
	rest  bool
}

// pattern is a compiled route path such as "/games/{id}" or "/files/{path...}".
type pattern struct {
	raw      string
	segments []segment
}

func parsePattern(raw string) (*pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return nil, fmt.Errorf("pattern %q: must start with /", raw)
	}
	p := &pattern{raw: raw}
	if raw == "/" {
		return p, nil
	}
	parts := strings.Split(raw[1:], "/")
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("pattern %q: empty segment", raw)
		}
		if !strings.HasPrefix(part, "{") {
			if strings.ContainsAny(part, "{}") {
				return nil, fmt.Errorf("pattern %q: unmatched brace in %q", raw, part)
			}
			p.segments = append(p.segments, segment{name: part})
			continue
		}
		if !strings.HasSuffix(part, "}") {
			return nil, fmt.Errorf("pattern %q: unmatched {", raw)
		}
		name := part[1 : len(part)-1]
		seg := segment{param: true}
		if before, ok := strings.CutSuffix(name, "..."); ok {
			if i != len(parts)-1 {
				return nil, fmt.Errorf("pattern %q: {%s} must be the last segment", raw, name)
			}
			name, seg.rest = before, true
		}
		if name == "" || strings.ContainsAny(name, "{}") {
			return nil, fmt.Errorf("pattern %q: invalid parameter name %q", raw, name)
		}
		seg.name = name
		p.segments = append(p.segments, seg)
	}
	return p, nil
}

// key is the form used to detect patterns that would shadow each other.
// Literals are folded to lower case and parameter names are dropped.
func (p *pattern) key() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		switch {
		case seg.rest:
			sb.WriteString("{...}")
		case seg.param:
			sb.WriteString("{}")
		default:
			sb.WriteString(strings.ToLower(seg.name))
		}
	}
	return sb.String()
}

// covers reports whether every path matched by later is also matched by p,
// so that later could never be reached when p is tried first.
func (p *pattern) covers(later *pattern) bool {
	if len(later.segments) == 0 {
		return len(p.segments) == 0
	}
	for i, seg := range p.segments {
		if seg.rest {
			return true
		}
		if i >= len(later.segments) || later.segments[i].rest {
			return false
		}
		if seg.param {
			continue
		}
		if later.segments[i].param || !strings.EqualFold(seg.name, later.segments[i].name) {
			return false
		}
	}
	return len(later.segments) == len(p.segments)
}

func (p *pattern) params() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.param {
			names = append(names, seg.name)
		}
	}
	return names
}

// match reports whether the escaped request path matches p. Parameter values
// are unescaped.
func (p *pattern) match(path string, sensitive, strict bool) (map[string]string, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	if !strict && len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "/" {
		return nil, len(p.segments) == 0
	}
	if len(p.segments) == 0 {
		return nil, false
	}
	parts := strings.Split(path[1:], "/")
	var params map[string]string
	for i, seg := range p.segments {
		if seg.rest {
			v, err := url.PathUnescape(strings.Join(parts[i:], "/"))
			if err != nil {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg.name] = v
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}
		part := parts[i]
		if !seg.param {
			if sensitive && part != seg.name || !sensitive && !strings.EqualFold(part, seg.name) {
				return nil, false
			}
			continue
		}
		if part == "" {
			return nil, false
		}
		v, err := url.PathUnescape(part)
		if err != nil {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[seg.name] = v
	}
	return params, len(parts) == len(p.segments)
}

// format fills the parameters of p. args may be a single map[string]any,
// alternating name/value pairs, or positional values. Parameters not given
// fall back to fallback, which is typically the params of the current request.
//
//nolint:gocognit // several argument conventions are accepted
func (p *pattern) format(fallback map[string]string, args ...any) (string, error) {
	names := p.params()
	values := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := fallback[name]; ok {
			values[name] = v
		}
	}

	switch {
	case len(args) == 0:
	case len(args) == 1 && isMap(args[0]):
		for k, v := range args[0].(map[string]any) {
			values[k] = fmt.Sprint(v)
		}
	case len(args) == len(names):
		for i, name := range names {
			values[name] = fmt.Sprint(args[i])
		}
	case len(args)%2 == 0 && isPairs(names, args):
		for i := 0; i < len(args); i += 2 {
			values[args[i].(string)] = fmt.Sprint(args[i+1])
		}
	default:
		// fill the params that are still missing, in order
		i := 0
		for _, name := range names {
			if _, ok := values[name]; ok || i >= len(args) {
				continue
			}
			values[name] = fmt.Sprint(args[i])
			i++
		}
		if i != len(args) {
			return "", fmt.Errorf("pattern %s: too many arguments: %v", p.raw, args)
		}
	}

	if len(p.segments) == 0 {
		return "/", nil
	}
	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		if !seg.param {
			sb.WriteString(seg.name)
			continue
		}
		v, ok := values[seg.name]
		if !ok || v == "" && !seg.rest {
			return "", fmt.Errorf("pattern %s: argument %s not provided", p.raw, seg.name)
		}
		if seg.rest {
			parts := strings.Split(v, "/")
			for i := range parts {
				parts[i] = url.PathEscape(parts[i])
			}
			sb.WriteString(strings.Join(parts, "/"))
			continue
		}
		sb.WriteString(url.PathEscape(v))
	}
	return cmp.Or(sb.String(), "/"), nil
}

func isMap(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// isPairs reports whether args look like name/value pairs: every even
// argument is a string and at least one of them names a parameter.
func isPairs(names []string, args []any) bool {
	match := false
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return false
		}
		for _, name := range names {
			if key == name {
				match = true
			}
		}
	}
	return match
}
