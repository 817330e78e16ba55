package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/alexflint/go-arg"

	"github.com/hayeah/lstree/gitstatus"
	"github.com/hayeah/lstree/tree"
	"github.com/hayeah/lstree/tui"
	"github.com/hayeah/lstree/view"
	"github.com/hayeah/lstree/walk"
)

// SortFlags are the sorting options shared by both subcommands.
type SortFlags struct {
	Sort          string `arg:"--sort" default:"name" help:"Sort by: name, size, modified, extension"`
	DirsFirst     bool   `arg:"--dirs-first" help:"Sort directories before files"`
	DotfilesFirst bool   `arg:"--dotfiles-first" help:"Sort dotfiles and dotfolders first"`
	CaseSensitive bool   `arg:"--case-sensitive" help:"Use case-sensitive sorting"`
	NaturalSort   bool   `arg:"--natural-sort" help:"Use natural/version sorting (file1 < file10)"`
	Reverse       bool   `arg:"-r,--reverse" help:"Reverse the sort order"`
}

// SortOptions converts the flags into the tree comparator configuration.
func (f SortFlags) SortOptions() (tree.SortOptions, error) {
	opts := tree.SortOptions{
		DirsFirst:     f.DirsFirst,
		DotfilesFirst: f.DotfilesFirst,
		CaseSensitive: f.CaseSensitive,
		NaturalSort:   f.NaturalSort,
		Reverse:       f.Reverse,
	}
	switch f.Sort {
	case "name", "":
		opts.Key = tree.SortName
	case "size":
		opts.Key = tree.SortSize
	case "modified":
		opts.Key = tree.SortModified
	case "extension":
		opts.Key = tree.SortExtension
	default:
		return opts, fmt.Errorf("invalid sort key %q (expected name, size, modified or extension)", f.Sort)
	}
	return opts, nil
}

// ViewCmd defines the arguments for the static tree view.
type ViewCmd struct {
	Path        string `arg:"positional" default:"." help:"Directory to display"`
	Color       string `arg:"--color" default:"auto" placeholder:"WHEN" help:"Colorize output: always, auto or never"`
	Level       int    `arg:"-L,--level" help:"Maximum depth to descend"`
	DirsOnly    bool   `arg:"-d,--dirs-only" help:"Display directories only"`
	Size        bool   `arg:"-s,--size" help:"Display the size of files"`
	Permissions bool   `arg:"-p,--permissions" help:"Display file permissions"`
	All         bool   `arg:"-a,--all" help:"Show all files, including hidden ones"`
	Gitignore   bool   `arg:"-g,--gitignore" help:"Respect .gitignore and other standard ignore files"`
	GitStatus   bool   `arg:"-G,--git-status" help:"Show git status for files and directories"`
	Icons       bool   `arg:"--icons" help:"Display file-specific icons (requires a Nerd Font)"`
	Hyperlinks  bool   `arg:"--hyperlinks" help:"Render file paths as clickable hyperlinks"`
	SortFlags
}

// InteractiveCmd defines the arguments for the interactive explorer.
type InteractiveCmd struct {
	Path        string `arg:"positional" default:"." help:"Directory to explore"`
	All         bool   `arg:"-a,--all" help:"Show all files, including hidden ones"`
	Gitignore   bool   `arg:"-g,--gitignore" help:"Respect .gitignore and other standard ignore files"`
	GitStatus   bool   `arg:"-G,--git-status" help:"Show git status for files and directories"`
	Icons       bool   `arg:"--icons" help:"Display file-specific icons (requires a Nerd Font)"`
	Size        bool   `arg:"-s,--size" help:"Display the size of files"`
	Permissions bool   `arg:"-p,--permissions" help:"Display file permissions"`
	ExpandLevel int    `arg:"--expand-level" placeholder:"LEVEL" help:"Initial depth to expand the directory tree"`
	SortFlags
}

// Args defines the command-line arguments with subcommands.
type Args struct {
	View        *ViewCmd        `arg:"subcommand:view" help:"Print the directory tree (default)"`
	Interactive *InteractiveCmd `arg:"subcommand:interactive|i" help:"Explore the directory tree interactively"`
}

func (Args) Description() string {
	return "lstree: a minimalist directory tree viewer."
}

func main() {
	var args Args
	arg.MustParse(&args)

	var err error
	switch {
	case args.Interactive != nil:
		err = runInteractive(args.Interactive)
	case args.View != nil:
		err = runView(args.View)
	default:
		// Bare invocation: view the current directory with defaults.
		err = runView(&ViewCmd{Path: ".", Color: "auto"})
	}
	if err != nil {
		log.Fatalf("lstree: %v", err)
	}
}

func runView(cmd *ViewCmd) error {
	sortOpts, err := cmd.SortOptions()
	if err != nil {
		return err
	}
	color, err := view.ParseColorMode(cmd.Color)
	if err != nil {
		return err
	}
	return view.Run(os.Stdout, cmd.Path, view.Options{
		Color:       color,
		Level:       cmd.Level,
		DirsOnly:    cmd.DirsOnly,
		Size:        cmd.Size,
		Permissions: cmd.Permissions,
		All:         cmd.All,
		Gitignore:   cmd.Gitignore,
		GitStatus:   cmd.GitStatus,
		Icons:       cmd.Icons,
		Hyperlinks:  cmd.Hyperlinks,
		Sort:        sortOpts,
	})
}

func runInteractive(cmd *InteractiveCmd) error {
	sortOpts, err := cmd.SortOptions()
	if err != nil {
		return err
	}

	info, err := os.Stat(cmd.Path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("'%s' is not a directory", cmd.Path)
	}
	root, err := canonicalize(cmd.Path)
	if err != nil {
		return err
	}

	var status *gitstatus.Result
	if cmd.GitStatus {
		if status, err = gitstatus.Load(root); err != nil {
			return err
		}
	}

	needMeta := cmd.Size || cmd.Permissions ||
		sortOpts.Key == tree.SortSize || sortOpts.Key == tree.SortModified
	entries, err := walk.Walk(root, walk.Options{
		All:       cmd.All,
		Gitignore: cmd.Gitignore,
		Metadata:  needMeta,
	})
	if err != nil {
		return err
	}

	nodes := tree.Build(entries, tree.BuildOptions{
		Sort:      sortOpts,
		WithSize:  cmd.Size,
		WithPerms: cmd.Permissions,
		Status:    status,
	})
	nav := tree.NewNav(nodes, cmd.ExpandLevel)

	outcome, err := tui.Run(nav, tui.Options{
		GitStatus:   cmd.GitStatus,
		Permissions: cmd.Permissions,
		Size:        cmd.Size,
		Icons:       cmd.Icons,
	})
	if err != nil {
		return err
	}

	switch outcome.Action {
	case tui.ActionOpen:
		return openInEditor(outcome.Path)
	case tui.ActionPrint:
		fmt.Println(outcome.Path)
	}
	return nil
}

// canonicalize resolves path to an absolute, symlink-free form so node
// paths relativize cleanly against the git worktree root.
func canonicalize(path string) (string, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root, nil
}

// openInEditor launches $EDITOR (falling back to a platform default) on
// the chosen file, attached to the terminal.
func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		if runtime.GOOS == "windows" {
			editor = "notepad"
		} else {
			editor = "vim"
		}
	}
	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
