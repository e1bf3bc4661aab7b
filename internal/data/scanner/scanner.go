package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-inbox-csv/internal/util"
)

// FolderScanner enumerates conversation folders under an inbox directory.
// Listings are sorted by name, so conversation numbering is stable across runs.
type FolderScanner struct {
	baseDir string
}

// NewFolderScanner creates a new FolderScanner instance
func NewFolderScanner(baseDir string) *FolderScanner {
	return &FolderScanner{baseDir: baseDir}
}

// BaseDir returns the scanned directory
func (s *FolderScanner) BaseDir() string {
	return s.baseDir
}

// Folders returns the paths of the immediate subdirectories of the base
// directory. Symlinks to directories count as folders.
func (s *FolderScanner) Folders() ([]string, error) {
	start := time.Now()
	util.LogDebugf("Start scanning directory: %s", s.baseDir)

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.baseDir, err)
	}

	var folders []string
	for _, entry := range entries {
		path := filepath.Join(s.baseDir, entry.Name())
		if isDir(entry, path) {
			folders = append(folders, path)
		}
	}

	util.LogDebugf("Folder scan completed: duration %v, %d entries, %d folders",
		time.Since(start), len(entries), len(folders))
	return folders, nil
}

// Files returns the regular files in dir whose extension matches ext, ignoring case
func Files(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if isDir(entry, path) {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			files = append(files, path)
		}
	}
	return files, nil
}

func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		util.LogDebugf("Skip broken symlink: %s - %v", path, err)
		return false
	}
	return info.IsDir()
}
