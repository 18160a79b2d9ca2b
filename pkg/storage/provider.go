package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kerbaras/mangastats/pkg/sources"
)

// tmpSuffix marks a chapter that is still being downloaded.
const tmpSuffix = "_tmp"

// placeholderName stands in for titles that sanitize to nothing.
const placeholderName = "_"

// Provider maps library manga to their download directories:
// <root>/<source name>/<manga title>/<chapter>.
type Provider struct {
	root string
}

func NewProvider(root string) *Provider {
	return &Provider{root: root}
}

func (p *Provider) Root() string {
	return p.root
}

func (p *Provider) SourceDir(source sources.Source) string {
	return filepath.Join(p.root, SanitizeFilename(source.Name()))
}

func (p *Provider) MangaDir(title string, source sources.Source) string {
	return filepath.Join(p.SourceDir(source), SanitizeFilename(title))
}

// FindMangaDir returns the manga directory only if it exists and lies
// strictly inside its source directory.
func (p *Provider) FindMangaDir(title string, source sources.Source) (string, bool) {
	dir := p.MangaDir(title, source)
	if !isBelow(p.SourceDir(source), dir) || !isBelow(p.root, p.SourceDir(source)) {
		return "", false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// ChapterCount counts finished chapters directly under dir: chapter
// directories and chapter archives.
func (p *Provider) ChapterCount(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	count := 0
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, tmpSuffix) || strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() || IsArchive(name) {
			count++
		}
	}
	return count
}

func isBelow(parent, dir string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// SanitizeFilename replaces characters that are invalid in file names. Names
// with nothing left become placeholderName.
func SanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	result = strings.TrimSpace(result)
	if result == "" {
		return placeholderName
	}
	return result
}
