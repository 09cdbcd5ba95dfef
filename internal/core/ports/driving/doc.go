// Package driving provides interfaces for primary adapters (CLI, tests)
// to drive the core services.
package driving
