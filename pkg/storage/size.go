// Package storage measures downloaded chapters on disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/nwaples/rardecode/v2"
)

var (
	zipExtensions = []string{".zip", ".cbz", ".epub"}
	rarExtensions = []string{".rar", ".cbr"}
)

// ArchiveExtensions lists the chapter archive formats whose size is measured
// by their entries instead of their length on disk.
func ArchiveExtensions() []string {
	return append(append([]string{}, zipExtensions...), rarExtensions...)
}

// IsArchive reports whether name has a chapter archive extension.
func IsArchive(name string) bool {
	return isZip(name) || isRar(name)
}

func isZip(name string) bool {
	return hasExtension(name, zipExtensions)
}

func isRar(name string) bool {
	return hasExtension(name, rarExtensions)
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// FolderSize returns the number of bytes held under path. Missing paths are
// 0, archives count the uncompressed size of their entries and directories
// are summed recursively. Anything unreadable contributes 0 and is logged.
// When ctx is cancelled the walk stops and the partial sum is returned.
// A symlinked path is measured through its target; links inside a directory
// are skipped.
func FolderSize(ctx context.Context, path string) int64 {
	root, err := filepath.EvalSymlinks(path)
	if err == nil {
		var info fs.FileInfo
		info, err = os.Stat(root)
		if err == nil && !info.IsDir() {
			return fileSize(path, info)
		}
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Cannot stat download path", "path", path, "error", err)
		}
		return 0
	}

	var total int64
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			slog.Warn("Skipping unreadable path", "path", p, "error", err)
			return nil
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			slog.Warn("Skipping unreadable file", "path", p, "error", err)
			return nil
		}
		total += fileSize(p, info)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("Folder walk stopped early", "path", path, "error", err)
	}
	return total
}

func fileSize(path string, info fs.FileInfo) int64 {
	if !info.Mode().IsRegular() {
		return 0
	}
	if !IsArchive(path) {
		return info.Size()
	}
	size, err := ArchiveSize(path)
	if err != nil {
		slog.Warn("Skipping unreadable archive", "path", path, "error", err)
		return 0
	}
	return size
}

// ArchiveSize sums the uncompressed sizes of the entries of a zip or rar family archive.
func ArchiveSize(path string) (int64, error) {
	switch {
	case isZip(path):
		return zipSize(path)
	case isRar(path):
		return rarSize(path)
	default:
		return 0, fmt.Errorf("unsupported archive format: %s", path)
	}
}

func zipSize(path string) (int64, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer r.Close()

	var total int64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		total += int64(f.UncompressedSize64)
	}
	return total, nil
}

func rarSize(path string) (int64, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open rar archive: %w", err)
	}
	defer r.Close()

	var total int64
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read rar header: %w", err)
		}
		if header.IsDir || header.UnKnownSize {
			continue
		}
		total += header.UnPackedSize
	}
	return total, nil
}
