package archive

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

// Extract reads manifest inside archivePath and copies each source_<idx>
// subtree back under the matching entry of destDirs (destDirs[i] receives
// the contents of source_i). Existing files are overwritten; files present
// in destDirs but absent from the archive are left untouched — restore is a
// superimposition, not a mirror.
func Extract(ctx context.Context, archivePath string, destDirs []string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return apperr.Wrap(apperr.ArchiveExtractFailed, "open archive", err)
	}
	defer zr.Close()

	buf := make([]byte, 1024*1024)

	for _, f := range zr.File {
		select {
		case <-ctx.Done():
			return apperr.Wrap(apperr.Cancelled, "restore cancelled", ctx.Err())
		default:
		}

		if f.Name == manifestEntryName {
			continue
		}

		idx, rel, ok := splitSubtree(f.Name)
		if !ok || idx < 0 || idx >= len(destDirs) {
			continue // entry from a source index this restore doesn't cover
		}

		destPath := filepath.Join(destDirs[idx], filepath.FromSlash(rel))
		if err := extractEntry(f, destPath, buf); err != nil {
			return apperr.Wrap(apperr.ArchiveExtractFailed, fmt.Sprintf("extract %s", f.Name), err)
		}
	}

	return nil
}

func extractEntry(f *zip.File, destPath string, buf []byte) error {
	if f.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, f.Mode().Perm()|0o600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.CopyBuffer(out, rc, buf); err != nil {
		return err
	}
	return nil
}

// splitSubtree parses "source_<idx>/<rel...>" back into idx and rel.
func splitSubtree(name string) (int, string, bool) {
	parts := strings.SplitN(name, "/", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	prefix := strings.TrimPrefix(parts[0], "source_")
	if prefix == parts[0] {
		return 0, "", false
	}
	idx, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", false
	}
	return idx, parts[1], true
}

// ReadManifest returns the ordered list of source roots recorded when the
// archive was created, for diagnostics.
func ReadManifest(archivePath string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, apperr.Wrap(apperr.ArchiveExtractFailed, "open archive", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != manifestEntryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, apperr.Wrap(apperr.ArchiveExtractFailed, "open manifest", err)
		}
		defer rc.Close()

		var m manifest
		if err := json.NewDecoder(rc).Decode(&m); err != nil {
			return nil, apperr.Wrap(apperr.ArchiveExtractFailed, "parse manifest", err)
		}
		out := make([]string, len(m.Sources))
		for _, s := range m.Sources {
			if s.Index >= 0 && s.Index < len(out) {
				out[s.Index] = s.Root
			}
		}
		return out, nil
	}

	return nil, apperr.New(apperr.ArchiveExtractFailed, "archive has no manifest entry")
}
