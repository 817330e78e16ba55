package tree

import (
	"path/filepath"
	"sort"

	"github.com/hayeah/lstree/gitstatus"
	"github.com/hayeah/lstree/walk"
)

// BuildOptions configures how walk entries become nodes.
type BuildOptions struct {
	Sort      SortOptions
	WithSize  bool
	WithPerms bool
	Status    *gitstatus.Result // nil when status tracking is off
}

// Build converts the walk stream into the master sequence: every sibling
// group sorted by the comparator, subtrees emitted pre-order so each
// directory immediately precedes its descendants.
//
// Grouping children per parent before sorting keeps the comparator
// strictly within sibling groups; entries from different directories are
// never compared, so cross-level order is pre-order by construction.
func Build(entries []walk.Entry, opts BuildOptions) []Node {
	children := make(map[string][]walk.Entry)
	for _, e := range entries {
		parent := filepath.Dir(e.Rel)
		children[parent] = append(children[parent], e)
	}

	nodes := make([]Node, 0, len(entries))
	var emit func(parent string)
	emit = func(parent string) {
		group := children[parent]
		sort.SliceStable(group, func(i, j int) bool {
			return Compare(group[i], group[j], opts.Sort) < 0
		})
		for _, e := range group {
			nodes = append(nodes, newNode(e, opts))
			if e.IsDir {
				emit(e.Rel)
			}
		}
	}
	emit(".")
	return nodes
}

func newNode(e walk.Entry, opts BuildOptions) Node {
	n := Node{
		Path:  e.Path,
		Rel:   e.Rel,
		Name:  e.Name(),
		Depth: e.Depth,
		IsDir: e.IsDir,
	}
	if opts.WithSize && !e.IsDir && e.Info != nil {
		n.Size = e.Info.Size()
		n.HasSize = true
	}
	if opts.WithPerms && e.Info != nil {
		n.Perm = e.Info.Mode().String()
	}
	if opts.Status != nil {
		n.Status = opts.Status.Lookup(e.Path)
	}
	return n
}
