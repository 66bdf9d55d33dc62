// Package query answers business questions over a shop graph.
//
// Every function is a pure, read-only projection: it never mutates the
// graph, never returns an error and always returns a freshly allocated
// result. "No qualifying data" is reported with a false ok flag, which
// callers must keep distinct from a computed zero.
package query
