package tree

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hayeah/lstree/walk"
)

func rels(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Rel
	}
	return out
}

func TestBuildPreOrderWithSortedSiblings(t *testing.T) {
	assert := assert.New(t)

	// Walk order: parents before children, siblings unsorted.
	entries := []walk.Entry{
		entry("zeta.txt", false),
		entry("src", true),
		entry("src/main.go", false),
		entry("src/lib", true),
		entry("src/lib/util.go", false),
		entry("alpha.txt", false),
	}

	nodes := Build(entries, BuildOptions{Sort: SortOptions{DirsFirst: true}})

	assert.Equal([]string{
		"src",
		"src/lib",
		"src/lib/util.go",
		"src/main.go",
		"alpha.txt",
		"zeta.txt",
	}, rels(nodes))

	// Pre-order depth invariant: each node's parent directory
	// immediately precedes its contiguous subtree.
	for i := 1; i < len(nodes); i++ {
		assert.LessOrEqual(nodes[i].Depth, nodes[i-1].Depth+1)
	}
}

func TestBuildSiblingGroupsSortIndependently(t *testing.T) {
	assert := assert.New(t)

	// Name order in one directory must not bleed into another.
	entries := []walk.Entry{
		entry("b", true),
		entry("b/z.txt", false),
		entry("b/a.txt", false),
		entry("a", true),
		entry("a/y.txt", false),
		entry("a/x.txt", false),
	}
	nodes := Build(entries, BuildOptions{})
	assert.Equal([]string{
		"a", "a/x.txt", "a/y.txt",
		"b", "b/a.txt", "b/z.txt",
	}, rels(nodes))
}

func TestBuildMetadataAttachment(t *testing.T) {
	assert := assert.New(t)

	file := entry("main.go", false)
	file.Info = fakeInfo{size: 1024, mod: time.Now(), mode: 0644}
	dir := entry("src", true)
	dir.Info = fakeInfo{mode: fs.ModeDir | 0755}

	nodes := Build([]walk.Entry{file, dir}, BuildOptions{WithSize: true, WithPerms: true})

	byRel := map[string]Node{}
	for _, n := range nodes {
		byRel[n.Rel] = n
	}

	assert.True(byRel["main.go"].HasSize)
	assert.EqualValues(1024, byRel["main.go"].Size)
	assert.Equal("-rw-r--r--", byRel["main.go"].Perm)

	// Directories never carry a size, even with size display on.
	assert.False(byRel["src"].HasSize)
	assert.Equal("drwxr-xr-x", byRel["src"].Perm)
}

func TestBuildWithoutDisplayFlagsLeavesFieldsUnset(t *testing.T) {
	assert := assert.New(t)

	file := entry("main.go", false)
	file.Info = fakeInfo{size: 1024, mode: 0644}

	nodes := Build([]walk.Entry{file}, BuildOptions{})
	assert.False(nodes[0].HasSize)
	assert.Empty(nodes[0].Perm)
}

func TestBuildStatFailureLeavesFieldsUnset(t *testing.T) {
	assert := assert.New(t)

	// Metadata requested but stat failed upstream: Info is nil.
	nodes := Build([]walk.Entry{entry("main.go", false)}, BuildOptions{WithSize: true, WithPerms: true})
	assert.False(nodes[0].HasSize)
	assert.Empty(nodes[0].Perm)
}

func TestBuildEmptyStream(t *testing.T) {
	assert := assert.New(t)
	assert.Empty(Build(nil, BuildOptions{}))
}
