package repotree

import (
	"reflect"
	"testing"

	"github.com/lotas/testwerk/internal/types"
)

func entries(paths ...string) []types.FileEntry {
	var es []types.FileEntry
	for i, p := range paths {
		es = append(es, types.FileEntry{Path: p, Size: int64((i + 1) * 10)})
	}
	return es
}

func TestBuild_SharedDirectory(t *testing.T) {
	forest := Build([]types.FileEntry{
		{Path: "a/b.js", Size: 10},
		{Path: "a/c.js", Size: 20},
	})

	if len(forest) != 1 {
		t.Fatalf("expected 1 root node, got %d", len(forest))
	}
	dir := forest[0]
	if dir.Kind != KindDir || dir.Name != "a" || dir.Path != "a" {
		t.Errorf("unexpected root dir: %+v", dir)
	}
	if !dir.Expanded {
		t.Error("synthesized directory should default to expanded")
	}
	if len(dir.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(dir.Children))
	}
	b, c := dir.Children[0], dir.Children[1]
	if b.Name != "b.js" || b.Size != 10 || b.Path != "a/b.js" {
		t.Errorf("unexpected first child: %+v", b)
	}
	if c.Name != "c.js" || c.Size != 20 || c.Path != "a/c.js" {
		t.Errorf("unexpected second child: %+v", c)
	}
}

func TestBuild_EveryEntryYieldsOneFileNode(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
	}{
		{"empty", nil},
		{"flat", []string{"a.go", "b.go"}},
		{"nested", []string{"src/pkg/a.go", "src/pkg/b.go", "src/c.go", "README.md"}},
		{"deep", []string{"a/b/c/d/e/f.txt"}},
		{"unordered prefixes", []string{"x/y/z.go", "x/a.go", "x/y/w.go"}},
		{"duplicates preserved", []string{"a/f.go", "a/f.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := Build(entries(tt.paths...))
			if got := FileCount(forest); got != len(tt.paths) {
				t.Errorf("expected %d file nodes, got %d", len(tt.paths), got)
			}
			// Each file node's path must equal the join of ancestor names.
			var check func(nodes []*Node, prefix string)
			check = func(nodes []*Node, prefix string) {
				for _, n := range nodes {
					want := n.Name
					if prefix != "" {
						want = prefix + "/" + n.Name
					}
					if n.Path != want {
						t.Errorf("node %q: path %q, want %q", n.Name, n.Path, want)
					}
					check(n.Children, n.Path)
				}
			}
			check(forest, "")
		})
	}
}

func TestBuild_InsertionOrder(t *testing.T) {
	forest := Build(entries("b/x.go", "a.go", "b/y.go", "c/z.go"))

	var names []string
	for _, n := range forest {
		names = append(names, n.Name)
	}
	want := []string{"b", "a.go", "c"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("root order %v, want %v", names, want)
	}
}

func TestBuild_RootLevelFile(t *testing.T) {
	forest := Build(entries("README.md"))
	if len(forest) != 1 || forest[0].Kind != KindFile || forest[0].Path != "README.md" {
		t.Fatalf("unexpected forest: %+v", forest[0])
	}
}

func TestBuild_DirNotMergedWithSameNamedFile(t *testing.T) {
	forest := Build(entries("a", "a/b.go"))
	// "a" the file and "a" the directory are distinct nodes.
	if len(forest) != 2 {
		t.Fatalf("expected 2 root nodes, got %d", len(forest))
	}
	if forest[0].Kind != KindFile || forest[1].Kind != KindDir {
		t.Errorf("expected file then dir, got %v then %v", forest[0].Kind, forest[1].Kind)
	}
}

func TestBuild_EmptySegmentsPreserved(t *testing.T) {
	// Paths with empty segments are not validated here; they produce
	// empty-named nodes. The gateway rejects them before this point.
	forest := Build(entries("/a.go"))
	if len(forest) != 1 || forest[0].Kind != KindDir || forest[0].Name != "" {
		t.Fatalf("expected one empty-named directory, got %+v", forest[0])
	}
	if FileCount(forest) != 1 {
		t.Errorf("expected the file node to survive")
	}
}

func TestToggle_FlipsExpanded(t *testing.T) {
	forest := Build(entries("a/b/c.go"))

	next := Toggle(forest, "a/b")
	if forest[0].Children[0].Expanded != true {
		t.Error("original forest was mutated")
	}
	if next[0].Children[0].Expanded != false {
		t.Error("target directory was not collapsed")
	}
}

func TestToggle_IsItsOwnInverse(t *testing.T) {
	forest := Build(entries("a/b/c.go", "a/d.go", "e/f.go"))
	twice := Toggle(Toggle(forest, "a/b"), "a/b")
	if !reflect.DeepEqual(forest, twice) {
		t.Error("toggling twice should deep-equal the original forest")
	}
}

func TestToggle_PreservesUntouchedBranches(t *testing.T) {
	forest := Build(entries("a/b.go", "c/d.go"))

	next := Toggle(forest, "a")
	if next[0] == forest[0] {
		t.Error("toggled node should be a new copy")
	}
	if next[1] != forest[1] {
		t.Error("sibling branch should keep identity")
	}
	if next[0].Children[0] != forest[0].Children[0] {
		t.Error("children of the toggled node should keep identity")
	}
}

func TestToggle_UnknownPathReturnsForestUnchanged(t *testing.T) {
	forest := Build(entries("a/b.go"))
	next := Toggle(forest, "nope")
	if len(next) != len(forest) || next[0] != forest[0] {
		t.Error("unknown path should return the same forest")
	}
}

func TestFilePaths(t *testing.T) {
	forest := Build(entries("src/a.go", "src/sub/b.go", "c.go"))
	want := []string{"src/a.go", "src/sub/b.go", "c.go"}
	if got := FilePaths(forest); !reflect.DeepEqual(got, want) {
		t.Errorf("FilePaths = %v, want %v", got, want)
	}
}

func TestStats(t *testing.T) {
	forest := Build([]types.FileEntry{
		{Path: "src/a.go", Size: 100},
		{Path: "src/sub/b.go", Size: 200},
		{Path: "c.go", Size: 50},
	})
	s := Stats(forest)
	if s.TotalFiles != 3 || s.TotalDirs != 2 || s.TotalBytes != 350 {
		t.Errorf("unexpected stats: %+v", s)
	}
}
