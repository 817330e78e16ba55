package tree

// Nav owns the master sequence, the expansion state and the current
// selection. All operations are total: on an empty tree every one of
// them is a no-op and there is no selection.
//
// The selection is an index into the visible sequence, but its identity
// across visibility changes is the selected node's position in the
// master sequence, which never reorders and therefore identifies the
// same path for the life of the session.
type Nav struct {
	nodes   []Node
	visible []int // indices into nodes
	cursor  int   // index into visible; -1 when the tree is empty
}

// NewNav wraps a master sequence. Directories with depth strictly less
// than expandLevels start out expanded; everything else starts collapsed.
func NewNav(nodes []Node, expandLevels int) *Nav {
	for i := range nodes {
		if nodes[i].IsDir && nodes[i].Depth < expandLevels {
			nodes[i].Expanded = true
		}
	}
	n := &Nav{nodes: nodes, cursor: -1}
	n.visible = Visible(n.nodes)
	if len(n.visible) > 0 {
		n.cursor = 0
	}
	return n
}

// Len returns the length of the visible sequence.
func (n *Nav) Len() int { return len(n.visible) }

// Cursor returns the selection index into the visible sequence, or -1.
func (n *Nav) Cursor() int { return n.cursor }

// Node returns the node at the given visible index.
func (n *Nav) Node(visIdx int) *Node { return &n.nodes[n.visible[visIdx]] }

// Master returns the master sequence. Callers must treat it as read-only.
func (n *Nav) Master() []Node { return n.nodes }

// Selected returns the selected node, or nil when the tree is empty.
func (n *Nav) Selected() *Node {
	if n.cursor < 0 {
		return nil
	}
	return &n.nodes[n.visible[n.cursor]]
}

// Next advances the selection by one, wrapping past the end.
func (n *Nav) Next() {
	if len(n.visible) == 0 {
		return
	}
	n.cursor = (n.cursor + 1) % len(n.visible)
}

// Prev retreats the selection by one, wrapping past the start.
func (n *Nav) Prev() {
	if len(n.visible) == 0 {
		return
	}
	n.cursor--
	if n.cursor < 0 {
		n.cursor = len(n.visible) - 1
	}
}

// ToggleSelected flips expansion of the selected directory. Selecting a
// file is a no-op.
func (n *Nav) ToggleSelected() {
	if sel := n.Selected(); sel != nil {
		n.TogglePath(sel.Path)
	}
}

// TogglePath flips the expansion flag of the directory with the given
// path, recomputes the visible sequence and re-resolves the selection.
func (n *Nav) TogglePath(path string) {
	for i := range n.nodes {
		if n.nodes[i].Path == path {
			if !n.nodes[i].IsDir {
				return
			}
			n.nodes[i].Expanded = !n.nodes[i].Expanded
			n.refresh()
			return
		}
	}
}

// Reveal expands every ancestor of the node with the given path and
// moves the selection to it. It reports whether the path was found.
func (n *Nav) Reveal(path string) bool {
	target := -1
	for i := range n.nodes {
		if n.nodes[i].Path == path {
			target = i
			break
		}
	}
	if target < 0 {
		return false
	}
	// Ancestors are the nearest preceding nodes of each shallower depth.
	need := n.nodes[target].Depth - 1
	for i := target - 1; i >= 0 && need > 0; i-- {
		if n.nodes[i].Depth == need {
			n.nodes[i].Expanded = true
			need--
		}
	}
	n.visible = Visible(n.nodes)
	for vi, mi := range n.visible {
		if mi == target {
			n.cursor = vi
			return true
		}
	}
	return false
}

// refresh recomputes the visible sequence and re-resolves the selection:
// the previously selected node if it is still visible, else its nearest
// still-visible predecessor, else the last visible node, else none.
func (n *Nav) refresh() {
	selMaster := -1
	if n.cursor >= 0 {
		selMaster = n.visible[n.cursor]
	}
	n.visible = Visible(n.nodes)
	if len(n.visible) == 0 {
		n.cursor = -1
		return
	}
	if selMaster < 0 {
		n.cursor = 0
		return
	}
	best := -1
	for vi, mi := range n.visible {
		if mi == selMaster {
			n.cursor = vi
			return
		}
		if mi > selMaster {
			break
		}
		best = vi
	}
	if best >= 0 {
		n.cursor = best
		return
	}
	n.cursor = len(n.visible) - 1
}
