// Package connectors provides implementations of the Source interface for
// the places documents live. Each connector knows how to read one source
// type: a local directory tree or a list of intranet pages.
package connectors
