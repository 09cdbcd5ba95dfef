package loaders

import (
	"sort"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry routes file paths to loaders by extension.
// The supported extension set is fixed and closed: files outside it are
// ignored by callers.
type Registry struct {
	loaders map[string]driven.Loader // extension (lowercase, with dot) -> loader
}

// NewRegistry creates a registry pre-populated with the built-in loaders.
func NewRegistry() *Registry {
	r := &Registry{
		loaders: make(map[string]driven.Loader),
	}

	builtins := []driven.Loader{
		NewTextLoader(),
		NewCSVLoader(CSVConfig{}),
		NewDOCXLoader(),
		NewPDFLoader(),
	}
	for _, l := range builtins {
		for _, ext := range l.Extensions() {
			r.loaders[strings.ToLower(ext)] = l
		}
	}

	return r
}

// Register adds or replaces a loader for the given extension.
// ext should include the leading dot (e.g. ".md").
func (r *Registry) Register(ext string, loader driven.Loader) {
	r.loaders[strings.ToLower(ext)] = loader
}

// Lookup returns the loader for ext, or (nil, false) when unmapped.
func (r *Registry) Lookup(ext string) (driven.Loader, bool) {
	l, ok := r.loaders[strings.ToLower(ext)]
	return l, ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
