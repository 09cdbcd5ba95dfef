// Package loaders parses supported file formats into documents.
//
// A Registry maps file extensions to loaders; the filesystem connector
// dispatches through it and silently skips unmapped extensions. The CSV
// loader is specialised for the employee roster: it emits a single enriched
// document instead of one document per row, so record-level structure
// survives retrieval.
package loaders
