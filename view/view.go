// Package view renders the directory tree as a static, colorized
// listing: one scan, one sorted master sequence, one line per node.
package view

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/hayeah/lstree/gitstatus"
	"github.com/hayeah/lstree/icons"
	"github.com/hayeah/lstree/tree"
	"github.com/hayeah/lstree/walk"
)

// ColorMode controls when output is colorized.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses the --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (expected always, auto or never)", s)
	}
}

// Options configures the static listing.
type Options struct {
	Color       ColorMode
	Level       int // 0 means unlimited
	DirsOnly    bool
	Size        bool
	Permissions bool
	All         bool
	Gitignore   bool
	GitStatus   bool
	Icons       bool
	Hyperlinks  bool
	Sort        tree.SortOptions
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	dirStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Run scans the directory at path and writes the tree listing to w.
// A path that is not a directory is a setup failure: the error is
// returned before anything is written.
func Run(w io.Writer, path string, opts Options) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("'%s' is not a directory", path)
	}

	switch opts.Color {
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	var status *gitstatus.Result
	if opts.GitStatus {
		if status, err = gitstatus.Load(root); err != nil {
			return err
		}
	}

	needMeta := opts.Size || opts.Permissions ||
		opts.Sort.Key == tree.SortSize || opts.Sort.Key == tree.SortModified
	entries, err := walk.Walk(root, walk.Options{
		All:       opts.All,
		Gitignore: opts.Gitignore,
		MaxDepth:  opts.Level,
		Metadata:  needMeta,
	})
	if err != nil {
		return err
	}

	nodes := tree.Build(entries, tree.BuildOptions{
		Sort:      opts.Sort,
		WithSize:  opts.Size,
		WithPerms: opts.Permissions,
		Status:    status,
	})

	fmt.Fprintln(w, headerStyle.Render(path))

	dirs, files := 0, 0
	for i := range nodes {
		n := &nodes[i]
		if opts.DirsOnly && !n.IsDir {
			continue
		}
		if n.IsDir {
			dirs++
		} else {
			files++
		}
		fmt.Fprintln(w, renderLine(n, opts))
	}

	fmt.Fprintf(w, "\n%d directories, %d files\n", dirs, files)
	return nil
}

func renderLine(n *tree.Node, opts Options) string {
	var b strings.Builder

	if opts.GitStatus {
		if n.Status != gitstatus.StatusNone {
			glyph := lipgloss.NewStyle().Foreground(n.Status.Color()).Render(string(n.Status.Rune()))
			b.WriteString(glyph + " ")
		} else {
			b.WriteString("  ")
		}
	}
	if opts.Permissions {
		perm := n.Perm
		if perm == "" {
			perm = "----------"
		}
		b.WriteString(dimStyle.Render(perm) + " ")
	}

	b.WriteString(strings.Repeat("    ", n.Depth-1))
	b.WriteString("└── ")

	if opts.Icons {
		icon, color := icons.ForPath(n.Path, n.IsDir)
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(icon) + " ")
	}

	name := n.Name
	if n.IsDir {
		name = dirStyle.Render(name)
	}
	if opts.Hyperlinks && !n.IsDir {
		name = hyperlink(n.Path, name)
	}
	b.WriteString(name)

	if opts.Size && n.HasSize {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", humanize.IBytes(uint64(n.Size)))))
	}

	return b.String()
}

// hyperlink wraps styled in an OSC 8 file:// hyperlink for abs.
func hyperlink(abs, styled string) string {
	u := url.URL{Scheme: "file", Path: abs}
	return "\x1b]8;;" + u.String() + "\a" + styled + "\x1b]8;;\a"
}
