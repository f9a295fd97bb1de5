package detector

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

var iniSections = []string{"Settings", "Storage", "Game", "Directories", "Paths", "Location", ""}
var iniKeys = []string{"SavePath", "AppDataPath", "Dir_0", "UserDataFolder"}

// stageIniScan walks req.GameInstallDir for whitelisted INI files and
// extracts a save path from known keys, falling back to a line-scan for
// steam_emu.ini-style markers. Cancellation is checked between files.
func stageIniScan(ctx context.Context, req Request) ([]string, error) {
	var candidates []string

	var iniPaths []string
	err := filepath.WalkDir(req.GameInstallDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // best-effort: skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if iniAllowed(filepath.Base(path), req.Settings.IniWhitelist, req.Settings.IniBlacklist) {
			iniPaths = append(iniPaths, path)
		}
		return nil
	})
	if err != nil {
		return candidates, err
	}

	// steam_emu.ini is preferred first for the line-scan fallback.
	sortSteamEmuFirst(iniPaths)

	for _, p := range iniPaths {
		select {
		case <-ctx.Done():
			return candidates, apperr.Wrap(apperr.Cancelled, "ini scan cancelled", ctx.Err())
		default:
		}

		text, ok := decodeFile(p)
		if !ok {
			continue
		}

		if hit, ok := scanKnownKeys(text); ok {
			if resolved := resolveAgainst(hit, req.GameInstallDir); resolved != "" {
				candidates = append(candidates, resolved)
			}
			continue
		}

		if hit, ok := scanFallbackMarkers(text); ok {
			if resolved := resolveAgainst(hit, req.GameInstallDir); resolved != "" {
				candidates = append(candidates, resolved)
			}
		}
	}

	return candidates, nil
}

func iniAllowed(name string, whitelist, blacklist []string) bool {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".ini") {
		return false
	}
	for _, b := range blacklist {
		if strings.ToLower(b) == lower {
			return false
		}
	}
	if len(whitelist) == 0 {
		return true
	}
	for _, w := range whitelist {
		if strings.ToLower(w) == lower {
			return true
		}
	}
	return false
}

func sortSteamEmuFirst(paths []string) {
	for i, p := range paths {
		if strings.EqualFold(filepath.Base(p), "steam_emu.ini") && i != 0 {
			paths[0], paths[i] = paths[i], paths[0]
			return
		}
	}
}

// decodeFile attempts UTF-8, then Windows-1252, then Latin-1, returning the
// first successful decode.
func decodeFile(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	if utf8.Valid(raw) {
		return string(raw), true
	}

	for _, enc := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err == nil {
			return string(decoded), true
		}
	}
	return "", false
}

// scanKnownKeys looks up iniKeys across iniSections (and the implicit
// default/no-section context) using an ad hoc line scan rather than a full
// INI parser, since section headers are optional in some games' files.
func scanKnownKeys(text string) (string, bool) {
	currentSection := ""
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.Trim(line, "[]")
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			continue
		}
		if !sectionMatches(currentSection) {
			continue
		}
		for _, k := range iniKeys {
			if strings.EqualFold(key, k) {
				return strings.Trim(value, `"' `), true
			}
		}
	}
	return "", false
}

func sectionMatches(section string) bool {
	for _, s := range iniSections {
		if strings.EqualFold(section, s) {
			return true
		}
	}
	return false
}

func splitKV(line string) (string, string, bool) {
	idx := strings.IndexAny(line, "=:")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// scanFallbackMarkers looks for the literal steam_emu.ini-style markers
// "### Game data is stored at " and "Dir_0=" when no known key matched.
func scanFallbackMarkers(text string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "### Game data is stored at "); ok {
			return strings.TrimSpace(v), true
		}
		if v, ok := strings.CutPrefix(line, "Dir_0="); ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

var percentVarPattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// expandPercentVars expands Windows-style %VAR% references, the form game
// INIs actually use (os.ExpandEnv only understands $VAR/${VAR}).
func expandPercentVars(s string) string {
	return percentVarPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return m
	})
}

// resolveAgainst expands environment variables in raw (both %VAR% and
// $VAR/${VAR} forms) and, if the result is relative, resolves it against
// installDir.
func resolveAgainst(raw, installDir string) string {
	expanded := os.ExpandEnv(expandPercentVars(raw))
	if expanded == "" {
		return ""
	}
	if filepath.IsAbs(expanded) {
		return expanded
	}
	return filepath.Join(installDir, expanded)
}
