package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(http.ResponseWriter, *http.Request) {}

func TestResolveFirstMatchWins(t *testing.T) {
	table := NewTable()

	var hit string
	table.MustHandle(http.MethodGet, "/products/featured", func(http.ResponseWriter, *http.Request) { hit = "featured" })
	table.MustHandle(http.MethodGet, "/products/:id", func(http.ResponseWriter, *http.Request) { hit = "by-id" })

	h, m, ok := table.Resolve(http.MethodGet, "/products/featured")
	require.True(t, ok)
	assert.Empty(t, m.Params)
	h(nil, nil)
	assert.Equal(t, "featured", hit)

	h, m, ok = table.Resolve(http.MethodGet, "/products/42")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"id": "42"}, m.Params)
	h(nil, nil)
	assert.Equal(t, "by-id", hit)
}

func TestResolveMethodMismatchIsNotFound(t *testing.T) {
	table := NewTable()
	table.MustHandle(http.MethodGet, "/products", noopHandler)

	_, _, ok := table.Resolve(http.MethodPost, "/products")
	assert.False(t, ok)

	// Method comparison is exact and case-sensitive.
	_, _, ok = table.Resolve("get", "/products")
	assert.False(t, ok)
}

func TestResolveUnknownPath(t *testing.T) {
	table := NewTable()
	table.MustHandle(http.MethodGet, "/products", noopHandler)

	_, _, ok := table.Resolve(http.MethodGet, "/stock-price/1001")
	assert.False(t, ok)
}

func TestServeHTTPAttachesParamsAndQuery(t *testing.T) {
	table := NewTable()
	table.MustHandle(http.MethodGet, "/products/:id", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", Param(r, "id"))
		assert.Equal(t, map[string]string{"search": "pale ale", "limit": "5"}, Query(r))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/products/42?search=pale+ale&limit=5", nil)
	rec := httptest.NewRecorder()
	table.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeHTTPWithoutQuery(t *testing.T) {
	table := NewTable()
	table.MustHandle(http.MethodGet, "/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, Params(r))
		assert.Empty(t, Query(r))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	table.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeHTTPNotFound(t *testing.T) {
	table := NewTable()
	table.MustHandle(http.MethodGet, "/products", noopHandler)

	req := httptest.NewRequest(http.MethodDelete, "/nope", nil)
	rec := httptest.NewRecorder()
	table.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"])
}

func TestServeHTTPCustomNotFound(t *testing.T) {
	table := NewTable()
	table.SetNotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	table.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestParamAccessorsOutsideDispatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)

	assert.NotNil(t, Params(req))
	assert.Empty(t, Params(req))
	assert.Equal(t, "", Param(req, "id"))
	assert.NotNil(t, Query(req))
}
