package paths

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

// trademarkRunes are stripped outright rather than replaced with '_', matching
// the original game_saver profile-naming behavior of dropping ™/®/© instead
// of leaving a stray underscore in their place.
var trademarkRunes = "™®©"

// reservedWindowsNames mirrors the device names Windows refuses as a
// filename component, checked case-insensitively against the sanitized
// result so archive folder names never collide with them on any OS.
var reservedWindowsNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// SanitizeProfileName strips trademark glyphs, replaces filesystem-hostile
// characters and control characters with '_', collapses whitespace, rejects
// a blank result, and appends '_' to a reserved device-name stem.
//
// Idempotent: SanitizeProfileName(SanitizeProfileName(s)) == SanitizeProfileName(s).
func SanitizeProfileName(s string) (string, error) {
	for _, tm := range trademarkRunes {
		s = strings.ReplaceAll(s, string(tm), "")
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteRune('_')
		case unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	collapsed = strings.TrimSpace(collapsed)

	if collapsed == "" {
		return "", apperr.New(apperr.InvalidProfileName, "profile name is empty after sanitization")
	}

	// A reserved device name stem (with or without an extension, e.g. "CON.txt")
	// is still reserved on Windows. The '_' goes right after the stem
	// ("CON_.txt") so a second pass sees a non-reserved stem.
	stemEnd := strings.IndexByte(collapsed, '.')
	if stemEnd < 0 {
		stemEnd = len(collapsed)
	}
	if _, reserved := reservedWindowsNames[strings.ToUpper(collapsed[:stemEnd])]; reserved {
		collapsed = collapsed[:stemEnd] + "_" + collapsed[stemEnd:]
	}

	return collapsed, nil
}

// Normalize lexically cleans path, making it absolute if it isn't already
// (relative to the current working directory) and applying OS-specific
// separator/case rules via normalizeOS.
func Normalize(p string) string {
	if p == "" {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return normalizeOS(filepath.Clean(p))
}

// IsFilesystemRoot reports whether path equals the root of its volume
// (e.g. "C:\", "/"), after normalization.
func IsFilesystemRoot(path string) bool {
	n := Normalize(path)
	vol := filepath.VolumeName(n)
	rest := strings.TrimPrefix(n, vol)
	return rest == string(filepath.Separator) || rest == ""
}

// ValidateSavePath normalizes p and enforces: non-empty, not a filesystem
// root, and an existing directory. label is used only to make the returned
// error more specific (e.g. a profile name); it may be empty.
func ValidateSavePath(p string, label string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", apperr.New(apperr.InvalidPath, emptyPathMessage(label))
	}

	n := Normalize(p)

	if IsFilesystemRoot(n) {
		return "", apperr.New(apperr.RootNotAllowed, "path is a filesystem root: "+n)
	}

	info, err := statDir(n)
	if err != nil || !info {
		return "", apperr.New(apperr.NotADirectory, "not an existing directory: "+n)
	}

	return n, nil
}

func emptyPathMessage(label string) string {
	if label == "" {
		return "path is empty"
	}
	return "path is empty for " + label
}
