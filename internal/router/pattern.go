package router

import (
	"fmt"
	"regexp"
	"strings"
)

// queryGroup is the capture group name reserved for the trailing raw query.
const queryGroup = "query"

// paramNameRe validates placeholder identifiers.
var paramNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Pattern is a compiled route path template. Patterns are immutable and
// safe for concurrent use.
type Pattern struct {
	template string
	re       *regexp.Regexp
	params   []string
}

// Match holds the values extracted from one concrete request path.
type Match struct {
	// Params maps placeholder name to the captured segment, as a raw
	// string. Callers convert to typed identifiers themselves.
	Params map[string]string

	// RawQuery is everything after the literal "?", without the "?".
	// Empty when the path carried no query suffix.
	RawQuery string
}

// Compile turns a path template into an anchored matcher.
//
// The template is a "/"-separated path. A segment written as ":name"
// becomes a named capture matching one or more characters that are neither
// "/" nor "?"; every other segment is matched literally and
// case-sensitively. The compiled matcher additionally recognizes an
// optional trailing "?raw-query" suffix, captured separately from the path
// parameters. Matching is anchored at both ends.
//
// Placeholder names must be valid identifiers and unique within one
// template.
func Compile(template string) (*Pattern, error) {
	if !strings.HasPrefix(template, "/") {
		return nil, fmt.Errorf("route template %q must start with \"/\"", template)
	}

	var (
		expr   strings.Builder
		params []string
		seen   = make(map[string]bool)
	)
	expr.WriteString("^")
	for _, seg := range strings.Split(template[1:], "/") {
		expr.WriteString("/")
		if !strings.HasPrefix(seg, ":") {
			expr.WriteString(regexp.QuoteMeta(seg))
			continue
		}
		name := seg[1:]
		if !paramNameRe.MatchString(name) {
			return nil, fmt.Errorf("route template %q: invalid parameter name %q", template, name)
		}
		if name == queryGroup {
			return nil, fmt.Errorf("route template %q: parameter name %q is reserved", template, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("route template %q: duplicate parameter name %q", template, name)
		}
		seen[name] = true
		params = append(params, name)
		fmt.Fprintf(&expr, "(?P<%s>[^/?]+)", name)
	}
	fmt.Fprintf(&expr, `(?:\?(?P<%s>.*))?$`, queryGroup)

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("route template %q: %w", template, err)
	}
	return &Pattern{template: template, re: re, params: params}, nil
}

// MustCompile is Compile for templates known to be valid at startup.
func MustCompile(template string) *Pattern {
	p, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Template returns the original template string, for diagnostics.
func (p *Pattern) Template() string { return p.template }

// ParamNames returns the placeholder names in template order.
func (p *Pattern) ParamNames() []string {
	out := make([]string, len(p.params))
	copy(out, p.params)
	return out
}

// Match tests path against the pattern and extracts the placeholder values
// plus the optional raw query suffix in one pass. It reports false when
// the path does not match.
func (p *Pattern) Match(path string) (*Match, bool) {
	sub := p.re.FindStringSubmatch(path)
	if sub == nil {
		return nil, false
	}

	m := &Match{Params: make(map[string]string, len(p.params))}
	for i, name := range p.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		if name == queryGroup {
			m.RawQuery = sub[i]
			continue
		}
		m.Params[name] = sub[i]
	}
	return m, true
}
