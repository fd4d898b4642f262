package gateway

import (
	"encoding/json"
	"strings"

	"github.com/lotas/testwerk/internal/types"
)

// rawNode is one node of the backend's nested file tree, accepting the field
// spellings seen across backend versions (`type` vs `file_type`).
type rawNode struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Type     string    `json:"type"`
	FileType string    `json:"file_type"`
	Size     int64     `json:"size"`
	Children []rawNode `json:"children"`
}

func (n rawNode) kind() string {
	if n.Type != "" {
		return n.Type
	}
	return n.FileType
}

// fileTreeResponse is the GET /repos/{owner}/{repo}/files payload. Only the
// files field matters to this client; repository metadata is ignored.
type fileTreeResponse struct {
	Files []rawNode `json:"files"`
}

// flattenTree walks a nested backend tree and returns one FileEntry per file
// node, in traversal order. A node with an unrecognized type and no children
// is a decode error: silently dropping it would make a file invisible with
// no trace.
func flattenTree(nodes []rawNode) ([]types.FileEntry, error) {
	entries := []types.FileEntry{}
	for _, n := range nodes {
		if err := flattenNode(n, &entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func flattenNode(n rawNode, out *[]types.FileEntry) error {
	switch kind := n.kind(); {
	case kind == "file":
		path := n.Path
		if path == "" {
			path = n.Name
		}
		if err := validatePath(path); err != nil {
			return err
		}
		*out = append(*out, types.FileEntry{Path: path, Size: n.Size})
		return nil
	case kind == "dir" || kind == "directory" || len(n.Children) > 0:
		for _, c := range n.Children {
			if err := flattenNode(c, out); err != nil {
				return err
			}
		}
		return nil
	case kind == "symlink" || kind == "submodule":
		// Known backend node kinds that carry no browsable content.
		return nil
	default:
		return decodeErr("unrecognized tree node %q (type %q)", n.Name, kind)
	}
}

// validatePath rejects entries the tree builder would turn into empty-named
// nodes: empty paths and paths with leading, trailing, or doubled slashes.
func validatePath(path string) error {
	if path == "" {
		return decodeErr("file entry with empty path")
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			return decodeErr("file entry %q has an empty path segment", path)
		}
	}
	return nil
}

// decodeInto parses a JSON payload, folding syntax errors into the decode
// error kind.
func decodeInto(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return decodeErr("malformed backend response: %v", err)
	}
	return nil
}
