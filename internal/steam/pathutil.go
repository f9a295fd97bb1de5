package steam

import "path/filepath"

// canonicalizePathBestEffort returns an absolute, cleaned path, attempting
// to resolve symlinks; it falls back to the cleaned absolute path if
// resolution fails.
func canonicalizePathBestEffort(p string) string {
	p = filepath.Clean(p)
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	if real, err := filepath.EvalSymlinks(p); err == nil {
		return filepath.Clean(real)
	}
	return p
}
