// Package tree holds the hierarchical tree state model: the sorted
// pre-order master sequence of scanned entries, the visibility projection
// driven by per-directory expansion flags, and the navigation state
// (cursor plus expand/collapse operations) built on top of them.
package tree

import "github.com/hayeah/lstree/gitstatus"

// Node is one entry of the master sequence.
//
// The master sequence is built once per scan and never reordered;
// Expanded is the only field mutated afterwards. A node's parent
// directory immediately precedes it and all of its siblings in the
// sequence (pre-order, contiguous subtrees).
type Node struct {
	Path     string // absolute path
	Rel      string // path relative to the scan root
	Name     string // base name
	Depth    int    // 1 for direct children of the scan root
	IsDir    bool
	Expanded bool // meaningful only for directories

	Size    int64 // valid only when HasSize
	HasSize bool
	Perm    string           // e.g. "-rw-r--r--"; empty when not requested or stat failed
	Status  gitstatus.Status // StatusNone when status tracking is off
}
