// Package walk scans a directory subtree and produces the flat stream of
// entries the tree builder consumes. Filtering (hidden files, gitignore
// patterns, maximum depth) happens here; entries that cannot be read are
// dropped from the stream.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Entry is one filesystem entry below the walk root.
type Entry struct {
	Path  string // absolute path
	Rel   string // path relative to the walk root
	Depth int    // 1 for direct children of the root
	IsDir bool
	Info  fs.FileInfo // nil unless metadata was requested; nil on stat failure
}

// Name returns the base name of the entry.
func (e Entry) Name() string {
	return filepath.Base(e.Rel)
}

// Options controls which entries Walk yields.
type Options struct {
	All       bool // include hidden (dot) entries
	Gitignore bool // respect .gitignore patterns
	MaxDepth  int  // 0 means unlimited
	Metadata  bool // stat each entry and attach fs.FileInfo
}

// Walk traverses the tree rooted at root and returns its entries in
// depth-first order, parents before children. The root itself is not an
// entry. Unreadable entries (and their subtrees, for directories) are
// silently skipped.
func Walk(root string, opts Options) ([]Entry, error) {
	var matcher gitignore.Matcher
	if opts.Gitignore {
		patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read gitignore patterns: %w", err)
		}
		matcher = gitignore.NewMatcher(patterns)
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Per-entry failures drop the entry from the stream.
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		isDir := d.IsDir()
		name := d.Name()

		if isDir && name == ".git" {
			return filepath.SkipDir
		}
		if !opts.All && strings.HasPrefix(name, ".") {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if matcher != nil && matcher.Match(strings.Split(rel, string(os.PathSeparator)), isDir) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		depth := strings.Count(rel, string(os.PathSeparator)) + 1
		if opts.MaxDepth > 0 && depth > opts.MaxDepth {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		var info fs.FileInfo
		if opts.Metadata {
			// Stat failure leaves Info nil; optional columns stay unset.
			info, _ = d.Info()
		}

		entries = append(entries, Entry{
			Path:  path,
			Rel:   rel,
			Depth: depth,
			IsDir: isDir,
			Info:  info,
		})
		return nil
	})
	return entries, err
}
