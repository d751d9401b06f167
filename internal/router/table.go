package router

import (
	"context"
	"encoding/json"
	"net/http"
)

// HandlerFunc handles a dispatched request. Path parameters and the
// decoded query are available through Params, Param and Query.
type HandlerFunc func(w http.ResponseWriter, r *http.Request)

type route struct {
	method  string
	pattern *Pattern
	handler HandlerFunc
}

// Table is an ordered route table, built once at startup and immutable
// thereafter. Resolution is first-match-wins in declaration order, so more
// specific templates must be registered before more general ones.
type Table struct {
	routes   []route
	notFound HandlerFunc
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{notFound: defaultNotFound}
}

// SetNotFound replaces the handler invoked when no route matches.
func (t *Table) SetNotFound(h HandlerFunc) {
	if h != nil {
		t.notFound = h
	}
}

// Handle compiles template and appends a route entry. Method comparison at
// resolve time is exact and case-sensitive; register upper-case methods.
func (t *Table) Handle(method, template string, h HandlerFunc) error {
	p, err := Compile(template)
	if err != nil {
		return err
	}
	t.routes = append(t.routes, route{method: method, pattern: p, handler: h})
	return nil
}

// MustHandle is Handle for static route lists known to be valid.
func (t *Table) MustHandle(method, template string, h HandlerFunc) {
	if err := t.Handle(method, template, h); err != nil {
		panic(err)
	}
}

// Resolve finds the first route whose method and pattern both match.
// A method mismatch on an otherwise matching path is the same miss as an
// unmatched path; there are no 405 semantics.
func (t *Table) Resolve(method, path string) (HandlerFunc, *Match, bool) {
	for _, rt := range t.routes {
		if rt.method != method {
			continue
		}
		if m, ok := rt.pattern.Match(path); ok {
			return rt.handler, m, true
		}
	}
	return nil, nil, false
}

type contextKey int

const (
	paramsKey contextKey = iota
	queryKey
)

// ServeHTTP dispatches r through the table. On a match the extracted
// parameters and the decoded query map are attached to the request context
// before the handler runs; on a miss the not-found handler responds.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	h, m, ok := t.Resolve(r.Method, target)
	if !ok {
		t.notFound(w, r)
		return
	}

	ctx := context.WithValue(r.Context(), paramsKey, m.Params)
	ctx = context.WithValue(ctx, queryKey, DecodeQuery(m.RawQuery))
	h(w, r.WithContext(ctx))
}

// Params returns the path parameters extracted for r. The map is empty for
// requests that did not pass through a Table.
func Params(r *http.Request) map[string]string {
	if m, ok := r.Context().Value(paramsKey).(map[string]string); ok {
		return m
	}
	return map[string]string{}
}

// Param returns one named path parameter, or "" when absent.
func Param(r *http.Request, name string) string {
	return Params(r)[name]
}

// Query returns the decoded query parameters extracted for r.
func Query(r *http.Request) map[string]string {
	if m, ok := r.Context().Value(queryKey).(map[string]string); ok {
		return m
	}
	return map[string]string{}
}

func defaultNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
}
