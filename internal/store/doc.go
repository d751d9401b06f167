// Package store implements the table-oriented persistence layer.
//
// It holds two named collections — catalog products and stock/price
// entries — in memory as one document and mirrors the whole document to a
// JSON file on every mutation. Reads never touch the file. Mutation and
// persist run under a single lock, and the file is replaced with a
// write-temp-then-rename so a crash mid-write cannot corrupt it.
//
// The store is an explicitly constructed object with an Open/Close
// lifecycle; there is no package-level instance.
package store
