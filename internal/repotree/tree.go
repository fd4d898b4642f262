// Package repotree builds a hierarchical file tree from the flat path list
// the backend returns, and applies immutable expand/collapse updates to it.
package repotree

import (
	"strings"

	"github.com/lotas/testwerk/internal/types"
)

// Kind distinguishes directory and file nodes.
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

// Node is one entry in the tree. Directory nodes are synthesized from path
// prefixes and deduplicated per parent; file nodes correspond one-to-one to
// the input entries, duplicates included. Path is always the '/'-joined
// chain of ancestor names down to Name.
type Node struct {
	Kind     Kind
	Name     string
	Path     string
	Size     int64   // files only
	Expanded bool    // directories only
	Children []*Node // directories only, insertion order
}

// Build constructs a root forest from flat entries. Entries are processed in
// input order; directories are created on first occurrence of a prefix and
// shared afterwards. Paths are not validated here: an empty segment becomes
// an empty-named node. The gateway decoder rejects such paths before they
// reach this package.
func Build(entries []types.FileEntry) []*Node {
	var roots []*Node
	for _, e := range entries {
		roots = insert(roots, e)
	}
	return roots
}

func insert(siblings []*Node, e types.FileEntry) []*Node {
	segments := strings.Split(e.Path, "/")

	level := &siblings
	prefix := ""
	for _, seg := range segments[:len(segments)-1] {
		if prefix == "" {
			prefix = seg
		} else {
			prefix = prefix + "/" + seg
		}
		dir := findDir(*level, seg)
		if dir == nil {
			dir = &Node{
				Kind:     KindDir,
				Name:     seg,
				Path:     prefix,
				Expanded: true,
			}
			*level = append(*level, dir)
		}
		level = &dir.Children
	}

	name := segments[len(segments)-1]
	*level = append(*level, &Node{
		Kind: KindFile,
		Name: name,
		Path: e.Path,
		Size: e.Size,
	})
	return siblings
}

func findDir(siblings []*Node, name string) *Node {
	for _, n := range siblings {
		if n.Kind == KindDir && n.Name == name {
			return n
		}
	}
	return nil
}

// Toggle returns a forest with the directory at targetPath flipped between
// expanded and collapsed. Nodes on the path from a root to the target are
// copied; every other node keeps its identity, so callers can diff previous
// and next versions cheaply. An unknown path returns the forest unchanged.
func Toggle(forest []*Node, targetPath string) []*Node {
	next, changed := toggleIn(forest, targetPath)
	if !changed {
		return forest
	}
	return next
}

func toggleIn(siblings []*Node, targetPath string) ([]*Node, bool) {
	for i, n := range siblings {
		if n.Kind != KindDir {
			continue
		}
		if n.Path == targetPath {
			flipped := *n
			flipped.Expanded = !n.Expanded
			return replaceAt(siblings, i, &flipped), true
		}
		if !isAncestorPath(n.Path, targetPath) {
			continue
		}
		children, changed := toggleIn(n.Children, targetPath)
		if changed {
			copied := *n
			copied.Children = children
			return replaceAt(siblings, i, &copied), true
		}
	}
	return siblings, false
}

// isAncestorPath reports whether target lies beneath dir. Nodes with empty
// names produce paths where the prefix check alone would misfire, so the
// separator is required.
func isAncestorPath(dir, target string) bool {
	return strings.HasPrefix(target, dir+"/")
}

func replaceAt(siblings []*Node, i int, n *Node) []*Node {
	next := make([]*Node, len(siblings))
	copy(next, siblings)
	next[i] = n
	return next
}

// Walk visits every node in depth-first insertion order.
func Walk(forest []*Node, visit func(n *Node, depth int)) {
	var rec func(nodes []*Node, depth int)
	rec = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			visit(n, depth)
			if n.Kind == KindDir {
				rec(n.Children, depth+1)
			}
		}
	}
	rec(forest, 0)
}

// FileCount returns the number of file nodes in the forest.
func FileCount(forest []*Node) int {
	count := 0
	Walk(forest, func(n *Node, _ int) {
		if n.Kind == KindFile {
			count++
		}
	})
	return count
}

// FilePaths returns the paths of all file nodes in traversal order.
func FilePaths(forest []*Node) []string {
	var paths []string
	Walk(forest, func(n *Node, _ int) {
		if n.Kind == KindFile {
			paths = append(paths, n.Path)
		}
	})
	return paths
}

// Stats computes aggregate numbers for the navbar.
func Stats(forest []*Node) types.Stats {
	var s types.Stats
	Walk(forest, func(n *Node, _ int) {
		switch n.Kind {
		case KindFile:
			s.TotalFiles++
			s.TotalBytes += n.Size
		case KindDir:
			s.TotalDirs++
		}
	})
	return s
}
