package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andygrunwald/vdf"
)

// trademarkRunes are stripped from display names.
const trademarkRunes = "™®"

// discoverInstalls scans <lib>/steamapps/appmanifest_*.acf for each library
// root and returns every entry whose StateFlags == 4 or whose computed
// install directory exists on disk.
func discoverInstalls(libraries []string) (installs []GameInstall, warnings []string) {
	seen := map[string]struct{}{}

	for _, lib := range libraries {
		steamapps := filepath.Join(lib, "steamapps")
		manifests, err := filepath.Glob(filepath.Join(steamapps, "appmanifest_*.acf"))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("glob failed under %s: %v", steamapps, err))
			continue
		}
		sort.Strings(manifests)

		for _, m := range manifests {
			appID, name, installDir, installed, warn := parseAppManifest(m, steamapps)
			if warn != "" {
				warnings = append(warnings, warn)
			}
			if appID == "" || installDir == "" || !installed {
				continue
			}
			if _, dup := seen[appID]; dup {
				continue
			}
			seen[appID] = struct{}{}

			for _, tm := range trademarkRunes {
				name = strings.ReplaceAll(name, string(tm), "")
			}
			name = strings.TrimSpace(name)
			if name == "" {
				name = fmt.Sprintf("Steam %s", appID)
			}

			installs = append(installs, GameInstall{
				AppID:      appID,
				Name:       name,
				InstallDir: filepath.Join(steamapps, "common", installDir),
				Library:    lib,
			})
		}
	}

	return installs, warnings
}

// parseAppManifest extracts appid/name/installdir from one appmanifest_*.acf
// and decides whether the app counts as installed: StateFlags == 4, or the
// computed install directory exists.
func parseAppManifest(manifestPath, steamapps string) (appID, name, installDir string, installed bool, warning string) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return "", "", "", false, fmt.Sprintf("failed to open %s: %v", manifestPath, err)
	}
	defer f.Close()

	parsed, err := vdf.NewParser(f).Parse()
	if err != nil {
		return "", "", "", false, fmt.Sprintf("failed to parse %s: %v", manifestPath, err)
	}

	appState, ok := parsed["AppState"].(map[string]any)
	if !ok {
		appState, ok = parsed["appstate"].(map[string]any)
		if !ok {
			return "", "", "", false, fmt.Sprintf("manifest missing AppState: %s", manifestPath)
		}
	}

	appID = strings.TrimSpace(asString(appState["appid"]))
	name = asString(appState["name"])
	installDir = strings.TrimSpace(asString(appState["installdir"]))
	stateFlags := asString(appState["StateFlags"])

	if appID == "" || installDir == "" {
		return "", "", "", false, fmt.Sprintf("manifest missing required fields: %s", manifestPath)
	}

	installed = stateFlags == "4"
	if !installed {
		if st, err := os.Stat(filepath.Join(steamapps, "common", installDir)); err == nil && st.IsDir() {
			installed = true
		}
	}

	return appID, name, installDir, installed, ""
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
