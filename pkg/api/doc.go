// Package api exposes the catalog and stock/price collections over HTTP.
//
// The API owns the http.Server and the route table; handlers read and
// write an injected *store.Store. Static assets and CORS headers are
// handled by middleware before route dispatch.
package api
