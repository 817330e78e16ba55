package tree

import (
	"cmp"
	"strings"

	"github.com/hayeah/lstree/walk"
)

// SortKey selects the primary sorting strategy.
type SortKey int

const (
	SortName SortKey = iota
	SortSize
	SortModified
	SortExtension
)

// SortOptions configures the sibling comparator.
type SortOptions struct {
	Key           SortKey
	DirsFirst     bool // directories before files
	DotfilesFirst bool // dot-dirs, dirs, dot-files, files; supersedes DirsFirst
	CaseSensitive bool
	NaturalSort   bool // embedded digit runs compare numerically
	Reverse       bool // applied last, inverts the whole comparison
}

// Compare is a total order over two entries of the same sibling group.
// It must only ever be applied to entries sharing the same parent
// directory; the builder guarantees that by sorting one sibling group at
// a time. The sort using it must be stable so fully-equal entries keep
// their walk order.
func Compare(a, b walk.Entry, opts SortOptions) int {
	r := compare(a, b, opts)
	if opts.Reverse {
		r = -r
	}
	return r
}

func compare(a, b walk.Entry, opts SortOptions) int {
	aName, bName := a.Name(), b.Name()

	if opts.DotfilesFirst {
		if r := cmp.Compare(bucket(aName, a.IsDir), bucket(bName, b.IsDir)); r != 0 {
			return r
		}
	} else if opts.DirsFirst && a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}

	switch opts.Key {
	case SortSize:
		return cmp.Compare(entrySize(a), entrySize(b))
	case SortModified:
		return compareModified(a, b)
	case SortExtension:
		return compareExtension(aName, bName, opts)
	default:
		return compareNames(aName, bName, opts)
	}
}

// bucket is the four-way priority used by DotfilesFirst:
// dot-directories, directories, dot-files, files.
func bucket(name string, isDir bool) int {
	dot := strings.HasPrefix(name, ".")
	switch {
	case dot && isDir:
		return 0
	case isDir:
		return 1
	case dot:
		return 2
	default:
		return 3
	}
}

// entrySize treats directories and entries without metadata as size 0.
func entrySize(e walk.Entry) int64 {
	if e.IsDir || e.Info == nil {
		return 0
	}
	return e.Info.Size()
}

// compareModified orders by modification time. An entry with unreadable
// metadata sorts before any entry with a known time; two unreadable
// entries compare equal.
func compareModified(a, b walk.Entry) int {
	switch {
	case a.Info == nil && b.Info == nil:
		return 0
	case a.Info == nil:
		return -1
	case b.Info == nil:
		return 1
	}
	at, bt := a.Info.ModTime(), b.Info.ModTime()
	switch {
	case at.Before(bt):
		return -1
	case bt.Before(at):
		return 1
	default:
		return 0
	}
}

// compareExtension orders by file extension, falling back to the name
// comparator when the extensions are equal.
func compareExtension(aName, bName string, opts SortOptions) int {
	extA, extB := extensionOf(aName), extensionOf(bName)
	var r int
	if opts.CaseSensitive {
		r = strings.Compare(extA, extB)
	} else {
		r = strings.Compare(strings.ToLower(extA), strings.ToLower(extB))
	}
	if r == 0 {
		return compareNames(aName, bName, opts)
	}
	return r
}

// extensionOf returns the extension without the dot. A leading dot does
// not start an extension, so ".gitignore" has none.
func extensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

func compareNames(a, b string, opts SortOptions) int {
	if opts.NaturalSort {
		if !opts.CaseSensitive {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		return compareNatural(a, b)
	}
	if opts.CaseSensitive {
		return compareDefaultOrder(a, b)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareDefaultOrder is the case-sensitive name order: characters are
// ranked digits < uppercase < lowercase < everything else, compared
// position by position, with length breaking a full prefix match. This
// is intentionally not plain lexicographic order.
func compareDefaultOrder(a, b string) int {
	ar, br := []rune(a), []rune(b)
	n := min(len(ar), len(br))
	for i := 0; i < n; i++ {
		ca, cb := ar[i], br[i]
		if r := cmp.Compare(charClass(ca), charClass(cb)); r != 0 {
			return r
		}
		if r := cmp.Compare(ca, cb); r != 0 {
			return r
		}
	}
	return cmp.Compare(len(ar), len(br))
}

func charClass(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return 0
	case r >= 'A' && r <= 'Z':
		return 1
	case r >= 'a' && r <= 'z':
		return 2
	default:
		return 3
	}
}

// compareNatural compares names treating embedded digit runs as numbers,
// so "file2" sorts before "file10".
func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if r := cmp.Compare(len(na), len(nb)); r != 0 {
				return r
			}
			if r := strings.Compare(na, nb); r != 0 {
				return r
			}
			continue
		}
		if r := cmp.Compare(ca, cb); r != 0 {
			return r
		}
		i++
		j++
	}
	return cmp.Compare(len(a)-i, len(b)-j)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
