package tree

// Visible projects the master sequence to the indices of the currently
// displayed nodes: a node is visible iff every ancestor directory is
// expanded. Depth-1 nodes are always visible.
//
// The projection walks the sequence once with a stack of expansion flags
// keyed by depth: frames belonging to exited subtrees are popped before
// each node is tested, and every directory pushes its own flag for its
// descendants to consult. It is a pure function of the sequence and the
// Expanded flags.
func Visible(nodes []Node) []int {
	visible := make([]int, 0, len(nodes))
	stack := make([]bool, 0, 16)
	for i := range nodes {
		n := &nodes[i]
		for len(stack) >= n.Depth {
			stack = stack[:len(stack)-1]
		}
		show := true
		for _, expanded := range stack {
			if !expanded {
				show = false
				break
			}
		}
		if show {
			visible = append(visible, i)
		}
		if n.IsDir {
			stack = append(stack, n.Expanded)
		}
	}
	return visible
}
