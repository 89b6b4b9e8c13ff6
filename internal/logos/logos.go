// Package logos resolves optional per-company logo images from a
// local directory. A missing logo is an expected, non-error outcome.
package logos

import (
	"os"
	"path/filepath"
	"strings"

	"fundboard/internal/metrics"
)

// DefaultExt is the image extension logo files are expected to carry.
const DefaultExt = ".png"

// Resolver maps company names to logo files under Dir.
type Resolver struct {
	Dir string
	Ext string
}

// NewResolver creates a resolver over dir using the default extension.
// An empty dir disables lookups: every Resolve reports not found.
func NewResolver(dir string) *Resolver {
	return &Resolver{Dir: dir, Ext: DefaultExt}
}

// Filename returns the standardized logo filename for a company:
// lowercase, spaces to underscores, commas and periods stripped, plus
// the configured extension.
func (r *Resolver) Filename(company string) string {
	name := strings.ToLower(company)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, ",", "")
	name = strings.ReplaceAll(name, ".", "")
	ext := r.Ext
	if ext == "" {
		ext = DefaultExt
	}
	return name + ext
}

// Resolve returns the logo file path for a company and whether it
// exists. Absence is signaled by found == false, never an error.
func (r *Resolver) Resolve(company string) (path string, found bool) {
	if r.Dir == "" || company == "" {
		metrics.LogoLookups.WithLabelValues("missing").Inc()
		return "", false
	}
	path = filepath.Join(r.Dir, r.Filename(company))
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		metrics.LogoLookups.WithLabelValues("missing").Inc()
		return "", false
	}
	metrics.LogoLookups.WithLabelValues("found").Inc()
	return path, true
}
