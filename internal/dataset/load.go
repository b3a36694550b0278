package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrLoad marks a dataset that could not be read or decoded. Loading is
// all-or-nothing: callers render a full-screen error with retry instead of
// attempting a partial graph.
var ErrLoad = errors.New("dataset load failed")

// Load reads a dataset JSON file from disk.
func Load(p string) (*Dataset, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrLoad, p, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a dataset from r. Nil maps are replaced with empty ones so
// callers never need to nil-check.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", ErrLoad, err)
	}
	if ds.Files == nil {
		ds.Files = make(map[string]*FileRecord)
	}
	if ds.Dirs == nil {
		ds.Dirs = make(map[string]*DirectoryRecord)
	}
	return &ds, nil
}

// CleanPath normalizes a collaborator path to the canonical key form:
// forward slashes, no leading "./", "." for the root.
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

// ParentDir returns the directory key containing p, or "." when p has no
// separator.
func ParentDir(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "."
	}
	return p[:i]
}

// Normalize rewrites all map keys and record paths to canonical form and
// drops files excluded by the given glob patterns. Include patterns, when
// non-empty, act as an allow-list. The receiver is modified in place.
func (ds *Dataset) Normalize(include, exclude []string) {
	files := make(map[string]*FileRecord, len(ds.Files))
	for key, rec := range ds.Files {
		p := CleanPath(key)
		if rec.Path != "" {
			p = CleanPath(rec.Path)
		}
		if !matchesAny(p, include, true) || matchesAny(p, exclude, false) {
			continue
		}
		rec.Path = p
		if rec.Name == "" {
			rec.Name = path.Base(p)
		}
		for i, ub := range rec.UsedBy {
			rec.UsedBy[i] = CleanPath(ub)
		}
		files[p] = rec
	}
	ds.Files = files

	dirs := make(map[string]*DirectoryRecord, len(ds.Dirs))
	for key, rec := range ds.Dirs {
		p := CleanPath(key)
		rec.Path = p
		for i, f := range rec.Files {
			rec.Files[i] = CleanPath(f)
		}
		for i, d := range rec.Dirs {
			rec.Dirs[i] = CleanPath(d)
		}
		dirs[p] = rec
	}
	ds.Dirs = dirs

	ds.Stats.TotalFiles = len(ds.Files)
	ds.Stats.TotalDirs = len(ds.Dirs)
}

// Languages returns the sorted set of language tags present in the dataset.
func (ds *Dataset) Languages() []string {
	seen := make(map[string]bool)
	for _, rec := range ds.Files {
		if rec.Lang != "" {
			seen[rec.Lang] = true
		}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// matchesAny checks relPath against glob patterns, using doublestar for **
// support. emptyResult is returned when patterns is empty.
func matchesAny(relPath string, patterns []string, emptyResult bool) bool {
	if len(patterns) == 0 {
		return emptyResult
	}
	for _, pattern := range patterns {
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, path.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}
