// Package gitstatus reads the git worktree status for a directory and
// exposes it as a path lookup, so tree entries can be annotated with a
// one-character status glyph.
package gitstatus

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	git "github.com/go-git/go-git/v5"
)

// Status is a simplified representation of a file's git status.
type Status int

const (
	StatusNone Status = iota
	StatusModified
	StatusNew
	StatusDeleted
	StatusRenamed
	StatusTypeChanged
	StatusUntracked
	StatusConflicted
)

// Rune returns the one-character symbol for the status.
func (s Status) Rune() rune {
	switch s {
	case StatusModified:
		return 'M'
	case StatusNew:
		return 'A'
	case StatusDeleted:
		return 'D'
	case StatusRenamed:
		return 'R'
	case StatusTypeChanged:
		return 'T'
	case StatusUntracked:
		return '?'
	case StatusConflicted:
		return 'C'
	default:
		return ' '
	}
}

// Color returns the display color for the status glyph.
func (s Status) Color() lipgloss.Color {
	switch s {
	case StatusNew, StatusRenamed:
		return lipgloss.Color("2") // green
	case StatusModified, StatusTypeChanged:
		return lipgloss.Color("3") // yellow
	case StatusDeleted:
		return lipgloss.Color("1") // red
	case StatusConflicted:
		return lipgloss.Color("9") // bright red
	case StatusUntracked:
		return lipgloss.Color("5") // magenta
	default:
		return lipgloss.Color("")
	}
}

// Result holds the worktree root and the status of every notable path,
// keyed by slash-separated path relative to the root.
type Result struct {
	Root     string
	statuses map[string]Status
}

// Load discovers the repository containing start and reads its worktree
// status. It returns (nil, nil) when start is not inside a git repository.
func Load(start string) (*Result, error) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository: nothing to annotate.
		return nil, nil
	}

	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	statuses := make(map[string]Status, len(st))
	for path, fst := range st {
		s := convert(*fst)
		if s == StatusNone {
			continue
		}
		statuses[path] = s
	}

	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return &Result{Root: root, statuses: statuses}, nil
}

// Lookup returns the status recorded for the given absolute path, or
// StatusNone. A nil receiver is a valid "no status tracking" result.
func (r *Result) Lookup(absPath string) Status {
	if r == nil {
		return StatusNone
	}
	rel, err := filepath.Rel(r.Root, absPath)
	if err != nil {
		return StatusNone
	}
	return r.statuses[filepath.ToSlash(rel)]
}

// convert collapses go-git's two-sided (staging, worktree) status codes
// into a single Status. Index states take precedence over worktree states.
func convert(fst git.FileStatus) Status {
	if fst.Staging == git.UpdatedButUnmerged || fst.Worktree == git.UpdatedButUnmerged {
		return StatusConflicted
	}
	switch fst.Staging {
	case git.Added:
		return StatusNew
	case git.Modified:
		return StatusModified
	case git.Deleted:
		return StatusDeleted
	case git.Renamed, git.Copied:
		return StatusRenamed
	}
	if fst.Worktree == git.Untracked {
		return StatusUntracked
	}
	switch fst.Worktree {
	case git.Modified:
		return StatusModified
	case git.Deleted:
		return StatusDeleted
	case git.Renamed:
		return StatusRenamed
	}
	return StatusNone
}
