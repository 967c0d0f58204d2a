package scan

import (
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"
)

type Options struct {
	// Extensions lists the image extensions to include, with or
	// without leading dot, case-insensitive.
	Extensions []string
}

func DefaultOptions() Options {
	return Options{
		Extensions: []string{".jpg", ".jpeg", ".tif", ".tiff"},
	}
}

// Record describes one image file found in a roll directory.
type Record struct {
	Path          string    `json:"path"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	ModTime       time.Time `json:"mod_time"`
}

// EZController exports each order into a directory named with the
// order number zero-padded to 8 characters.
var reRollDir = regexp.MustCompile(`^\d{8}$`)

// IsRollDir reports whether a directory name looks like an
// EZController order directory.
func IsRollDir(name string) bool {
	return reRollDir.MatchString(name)
}

// FindRollDirs walks root and returns the paths (relative to fsys) of
// all directories named like an order number, sorted. root itself is
// included first when its name matches.
func FindRollDirs(fsys fs.FS, root string) ([]string, error) {
	var dirs []string

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == root {
			return nil
		}
		if IsRollDir(path.Base(p)) {
			dirs = append(dirs, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(dirs)
	if IsRollDir(path.Base(root)) {
		dirs = append([]string{root}, dirs...)
	}
	return dirs, nil
}

// ListImages returns the image files directly inside dir, sorted by
// ascending modification time. Files with equal modification times
// keep their directory enumeration order. Dotfiles, subdirectories
// and non-image extensions are skipped.
func ListImages(fsys fs.FS, dir string, opts Options) ([]Record, error) {
	exts := normalizeExts(opts.Extensions)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !exts[strings.ToLower(path.Ext(name))] {
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			return nil, infoErr
		}

		records = append(records, Record{
			Path:          path.Join(dir, name),
			FileSizeBytes: info.Size(),
			ModTime:       info.ModTime(),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ModTime.Before(records[j].ModTime)
	})
	return records, nil
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}
