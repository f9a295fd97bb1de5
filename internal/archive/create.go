package archive

import (
	"archive/zip"
	"compress/flate"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
	"github.com/Matteo842/SaveState-sub003/internal/config"
)


// manifest records, for each source directory backed up, its index (its
// entries are written under source_<index>/) and the source directory's
// base name. Extract routes entries by the source_<index>/ prefix.
type manifest struct {
	Sources []manifestSource `json:"sources"`
}

type manifestSource struct {
	Index int    `json:"index"`
	Root  string `json:"root"`
}

// Create walks each of sources, writes every regular file into a new zip
// archive under destDir named per archiveName, and returns the resulting
// Archive. On any failure after the file has been created, the partial file
// is removed before returning.
//
// Directory symlinks are not followed, wherever they point; file symlinks
// are followed and archived as regular files.
func Create(ctx context.Context, sources []string, sanitizedProfile, destDir string, mode config.CompressionMode) (Archive, error) {
	if len(sources) == 0 {
		return Archive{}, apperr.New(apperr.InvalidProfileData, "no source directories to archive")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Archive{}, apperr.Wrap(apperr.ArchiveCreateFailed, "create destination directory", err)
	}

	finalPath, err := archiveName(destDir, sanitizedProfile, time.Now())
	if err != nil {
		return Archive{}, apperr.Wrap(apperr.ArchiveCreateFailed, "choose archive name", err)
	}

	stagingName := finalPath + "." + uuid.NewString() + ".tmp"

	if err := writeZip(ctx, stagingName, sources, mode); err != nil {
		_ = os.Remove(stagingName)
		if ctx.Err() != nil {
			return Archive{}, apperr.Wrap(apperr.Cancelled, "archive creation cancelled", ctx.Err())
		}
		return Archive{}, apperr.Wrap(apperr.ArchiveCreateFailed, "write archive", err)
	}

	if err := os.Rename(stagingName, finalPath); err != nil {
		_ = os.Remove(stagingName)
		return Archive{}, apperr.Wrap(apperr.ArchiveCreateFailed, "commit archive", err)
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return Archive{}, apperr.Wrap(apperr.ArchiveCreateFailed, "stat committed archive", err)
	}

	return Archive{Path: finalPath, ModTime: info.ModTime(), Size: info.Size()}, nil
}

func writeZip(ctx context.Context, stagingPath string, sources []string, mode config.CompressionMode) error {
	f, err := os.Create(stagingPath)
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	level := compressionLevel(mode)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	m := manifest{}
	for i, src := range sources {
		m.Sources = append(m.Sources, manifestSource{Index: i, Root: filepath.Base(src)})
	}
	mb, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: manifestEntryName, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("write manifest entry: %w", err)
	}
	if _, err := mw.Write(mb); err != nil {
		return fmt.Errorf("write manifest body: %w", err)
	}

	buf := make([]byte, 1024*1024)
	for i, src := range sources {
		subtree := fmt.Sprintf("source_%d", i)
		if err := addTree(ctx, zw, src, subtree, mode, buf); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip writer: %w", err)
	}
	return f.Sync()
}

// addTree walks root and writes every regular file (following file symlinks,
// never descending into a symlinked directory) into zw under subtree/.
func addTree(ctx context.Context, zw *zip.Writer, root, subtree string, mode config.CompressionMode, buf []byte) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return fmt.Errorf("relativize %s: %w", path, err)
			}
			if rel == "." {
				return nil
			}
			// Write an explicit directory entry so extraction can recreate
			// empty subdirectories, which have no file entry of their own.
			hdr := &zip.FileHeader{Name: filepath.ToSlash(filepath.Join(subtree, rel)) + "/"}
			hdr.SetMode(fs.ModeDir | 0o755)
			_, err = zw.CreateHeader(hdr)
			if err != nil {
				return fmt.Errorf("create zip directory entry %s: %w", hdr.Name, err)
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return fmt.Errorf("resolve symlink %s: %w", path, err)
			}
			info, err := os.Stat(target)
			if err != nil {
				return fmt.Errorf("stat symlink target %s: %w", target, err)
			}
			if info.IsDir() {
				// Do not follow directory symlinks out of the source tree.
				return nil
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}

		method := zip.Deflate
		if mode == config.CompressionStored {
			method = zip.Store
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("build header for %s: %w", path, err)
		}
		hdr.Name = filepath.ToSlash(filepath.Join(subtree, rel))
		hdr.Method = method

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", hdr.Name, err)
		}

		src, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer src.Close()

		if _, err := io.CopyBuffer(w, src, buf); err != nil {
			return fmt.Errorf("copy %s: %w", path, err)
		}
		return nil
	})
}
