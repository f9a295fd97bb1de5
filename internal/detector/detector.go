// Package detector implements the multi-stage save-path heuristic: known
// patterns, INI scanning, common-location probing, and install-dir probing,
// followed by dedup and priority ranking (see DESIGN.md for grounding).
package detector

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
	"github.com/Matteo842/SaveState-sub003/internal/paths"
	"github.com/Matteo842/SaveState-sub003/internal/steam"
)

// BaseKind names the root a known-pattern relative path is resolved
// against.
type BaseKind string

const (
	BaseSteamUserdata    BaseKind = "steam_userdata"
	BaseAppDataRoaming   BaseKind = "appdata_roaming"
	BaseAppDataLocal     BaseKind = "appdata_local"
	BaseAppDataLocalLow  BaseKind = "appdata_locallow"
	BaseDocuments        BaseKind = "documents"
	BaseMyGames          BaseKind = "my_games"
	BaseSavedGames       BaseKind = "saved_games"
	BaseInstallDir       BaseKind = "install_dir"
	BaseAbsolute         BaseKind = "absolute"
)

// KnownPattern maps a Steam app ID to a fixed save-directory location.
type KnownPattern struct {
	AppID        string
	Base         BaseKind
	RelativePath string
}

// Request bundles the detector's inputs.
type Request struct {
	ProfileNameHint string
	GameInstallDir  string // optional
	SteamCtx        *steam.Context
	Settings        Settings
}

// Settings is the subset of engine settings the detector consults.
type Settings struct {
	IniWhitelist []string // lowercased filenames to consider, e.g. "config.ini"
	IniBlacklist []string // lowercased filenames to skip
	Publishers   []string // overridable publisher list; see DefaultPublishers
	KnownTable   []KnownPattern
}

// Status is the terminal outcome of a detection run.
type Status string

const (
	StatusFound     Status = "found"
	StatusNotFound  Status = "not_found"
	StatusCancelled Status = "cancelled"
)

// Response is the detector's terminal result.
type Response struct {
	Status     Status
	Candidates []string
	Message    string
}

var preferredSuffixes = map[string]struct{}{
	"saves": {}, "save": {}, "savegame": {}, "savegames": {}, "saved": {},
	"storage": {}, "playerdata": {}, "profile": {}, "profiles": {}, "user": {},
	"data": {}, "savedata": {},
}

// DefaultPublishers is the starter publisher list, treated as data rather
// than code so it can be overridden without a rebuild.
var DefaultPublishers = []string{
	"CD Projekt Red", "Rockstar Games", "Ubisoft", "Electronic Arts", "HelloGames", "FromSoftware",
}

// Detect runs stages A-D in order, honoring ctx cancellation between stages
// and between INI files, then dedups and ranks the result.
func Detect(ctx context.Context, req Request, progress func(string)) Response {
	report := func(msg string) {
		if progress != nil {
			progress(msg)
		}
	}

	var found []string
	roots := paths.Resolve()

	report("stage A: known patterns")
	found = append(found, stageKnownPatterns(req, roots)...)
	if ctx.Err() != nil {
		return cancelled()
	}

	if req.GameInstallDir != "" {
		report("stage B: scanning install directory for INI files")
		hits, err := stageIniScan(ctx, req)
		if err != nil {
			if apperr.Is(err, apperr.Cancelled) {
				return cancelled()
			}
			report("stage B failed: " + err.Error())
		}
		found = append(found, hits...)
		if ctx.Err() != nil {
			return cancelled()
		}
	}

	report("stage C: probing common locations")
	found = append(found, stageCommonLocations(req, roots)...)
	if ctx.Err() != nil {
		return cancelled()
	}

	if req.GameInstallDir != "" {
		report("stage D: probing install directory")
		found = append(found, stageInstallDirProbe(req)...)
	}
	if ctx.Err() != nil {
		return cancelled()
	}

	ranked := rank(dedupExisting(found))
	if len(ranked) == 0 {
		return Response{Status: StatusNotFound, Message: "no candidate save directories found"}
	}
	return Response{Status: StatusFound, Candidates: ranked}
}

func cancelled() Response {
	return Response{Status: StatusCancelled, Message: "detection cancelled"}
}

// dedupExisting normalizes, verifies existence/non-root, and deduplicates
// candidates while preserving first-seen order.
func dedupExisting(candidates []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		n := paths.Normalize(c)
		if paths.IsFilesystemRoot(n) {
			continue
		}
		info, err := os.Stat(n)
		if err != nil || !info.IsDir() {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// rank sorts candidates so paths whose lowercased basename is in
// preferredSuffixes come first, ties broken lexicographically.
func rank(candidates []string) []string {
	out := append([]string(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := priority(out[i]), priority(out[j])
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

func priority(path string) int {
	base := strings.ToLower(filepath.Base(filepath.Clean(path)))
	if _, ok := preferredSuffixes[base]; ok {
		return 0
	}
	return 1
}
