package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
)

// discoverLibraries parses <root>/steamapps/libraryfolders.vdf, always
// including root itself as library 0. didScan is true in every case: root
// alone counts as a scanned library even when libraryfolders.vdf is missing
// or fails to parse (a parse failure is reported in warnings).
func discoverLibraries(root string) (libs []string, didScan bool, warnings []string) {
	libSet := map[string]struct{}{canonicalizePathBestEffort(root): {}}

	vdfPath := filepath.Join(root, "steamapps", "libraryfolders.vdf")
	f, err := os.Open(vdfPath)
	if err != nil {
		// root itself still counts as library 0 even with no libraryfolders.vdf.
		libs = sortedKeys(libSet)
		return libs, true, warnings
	}
	defer f.Close()

	parsed, err := vdf.NewParser(f).Parse()
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to parse %s: %v", vdfPath, err))
		libs = sortedKeys(libSet)
		return libs, true, warnings
	}

	didScan = true
	for _, p := range extractLibraryPaths(parsed) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if st, err := os.Stat(p); err != nil || !st.IsDir() {
			continue // ignore library entries whose path is not a directory
		}
		libSet[canonicalizePathBestEffort(p)] = struct{}{}
	}

	return sortedKeys(libSet), didScan, warnings
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// extractLibraryPaths supports both the legacy ("1" "/path") and modern
// ("1" { "path" "/path" ... }) libraryfolders.vdf shapes.
func extractLibraryPaths(parsed any) []string {
	root, ok := parsed.(map[string]any)
	if !ok {
		return nil
	}

	lf, ok := root["libraryfolders"].(map[string]any)
	if !ok {
		lf, ok = root["LibraryFolders"].(map[string]any)
		if !ok {
			return nil
		}
	}

	var out []string
	for k, v := range lf {
		if _, err := strconv.Atoi(k); err != nil {
			continue // skip non-library keys like "contentstatsid"
		}
		switch vv := v.(type) {
		case string:
			out = append(out, vv)
		case map[string]any:
			if p, ok := vv["path"].(string); ok && strings.TrimSpace(p) != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
