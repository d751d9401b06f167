// Package router implements the request-routing core: path template
// compilation, query string decoding, and an ordered route table.
//
// A template such as "/products/:id" compiles to an anchored matcher that
// recognizes concrete request paths, extracts named parameters, and
// captures an optional trailing "?raw-query" suffix in a single match. The
// route table resolves (method, path) pairs against its entries in
// declaration order; the first entry whose method and pattern both match
// wins, and a method mismatch on an otherwise matching path is the same
// miss as an unmatched path.
//
// Key types:
//
//   - Pattern: a compiled, immutable path matcher
//   - Match: parameters and raw query extracted from one concrete path
//   - Table: the ordered route table; also an http.Handler that attaches
//     the extracted values to the request context before dispatch
package router
