package detector

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Matteo842/SaveState-sub003/internal/paths"
	"github.com/Matteo842/SaveState-sub003/internal/steam"
)

var commonSuffixes = []string{"Saves", "Save", "SaveGame", "SaveGames", "Saved", "storage", "PlayerData"}
var installDirSuffixes = append(append([]string{}, commonSuffixes...), "UserData", "Profile", "Profiles", "PlayerProfiles", "Game")

// resolveBase maps a BaseKind to its directory, or "" if unavailable.
func resolveBase(kind BaseKind, roots paths.Roots, steamCtx *steam.Context, installDir string) string {
	switch kind {
	case BaseAppDataRoaming:
		return roots.AppDataRoaming
	case BaseAppDataLocal:
		return roots.AppDataLocal
	case BaseAppDataLocalLow:
		return roots.AppDataLocalLow
	case BaseDocuments:
		return roots.Documents
	case BaseMyGames:
		return roots.MyGames
	case BaseSavedGames:
		return roots.SavedGames
	case BaseInstallDir:
		return installDir
	case BaseSteamUserdata:
		if steamCtx == nil || steamCtx.UserData.SelectedID3 == "" {
			return ""
		}
		return filepath.Join(steamCtx.UserData.Base, steamCtx.UserData.SelectedID3)
	default:
		return ""
	}
}

// stageKnownPatterns resolves req.Settings.KnownTable entries for the
// profile hint treated as an app ID, adding any that resolve to an existing
// directory first.
func stageKnownPatterns(req Request, roots paths.Roots) []string {
	var out []string
	for _, kp := range req.Settings.KnownTable {
		if kp.AppID != req.ProfileNameHint {
			continue
		}

		var base string
		if kp.Base == BaseAbsolute {
			base = ""
		} else {
			base = resolveBase(kp.Base, roots, req.SteamCtx, req.GameInstallDir)
		}

		var candidate string
		if kp.Base == BaseAbsolute {
			candidate = kp.RelativePath
		} else if base == "" {
			continue
		} else {
			candidate = filepath.Join(base, kp.RelativePath)
		}

		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			out = append(out, candidate)
		}
	}
	return out
}

// stageCommonLocations probes every user root for name variants of the
// profile hint, each with the common suffix set, plus a curated publisher
// list as an intermediate segment.
func stageCommonLocations(req Request, roots paths.Roots) []string {
	variants := nameVariants(req.ProfileNameHint)

	userRoots := []string{roots.Documents, roots.MyGames, roots.SavedGames, roots.AppDataRoaming, roots.AppDataLocal, roots.AppDataLocalLow}

	publishers := req.Settings.Publishers
	if len(publishers) == 0 {
		publishers = DefaultPublishers
	}

	var out []string
	for _, root := range userRoots {
		if root == "" {
			continue
		}
		for _, v := range variants {
			out = append(out, probeVariant(filepath.Join(root, v))...)
			for _, pub := range publishers {
				out = append(out, probeVariant(filepath.Join(root, pub, v))...)
			}
		}
	}
	return out
}

// stageInstallDirProbe mirrors stageCommonLocations but rooted at
// req.GameInstallDir with the extended suffix set.
func stageInstallDirProbe(req Request) []string {
	if req.GameInstallDir == "" {
		return nil
	}
	var out []string
	for _, suffix := range installDirSuffixes {
		candidate := filepath.Join(req.GameInstallDir, suffix)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			out = append(out, candidate)
		}
	}
	return out
}

func probeVariant(base string) []string {
	var out []string
	if st, err := os.Stat(base); err == nil && st.IsDir() {
		out = append(out, base)
	}
	for _, suffix := range commonSuffixes {
		candidate := filepath.Join(base, suffix)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			out = append(out, candidate)
		}
	}
	return out
}

// nameVariants returns the sanitized, original, and spaces-removed forms of
// hint, deduplicated.
func nameVariants(hint string) []string {
	sanitized, err := paths.SanitizeProfileName(hint)
	if err != nil {
		sanitized = hint
	}
	noSpaces := strings.ReplaceAll(hint, " ", "")

	seen := map[string]struct{}{}
	var out []string
	for _, v := range []string{sanitized, hint, noSpaces} {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
