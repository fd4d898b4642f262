package export

import (
	"encoding/json"
	"time"

	"github.com/lotas/testwerk/internal/repotree"
	"github.com/lotas/testwerk/internal/types"
)

type jsonExport struct {
	Owner      string     `json:"owner"`
	Repo       string     `json:"repo"`
	ExportedAt time.Time  `json:"exported_at"`
	FileCount  int        `json:"file_count"`
	Files      []jsonFile `json:"files"`
}

type jsonFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// JSON formats the file nodes of a forest as a flat JSON document.
func JSON(repo types.Repo, forest []*repotree.Node) (string, error) {
	out := jsonExport{
		Owner:      repo.Owner,
		Repo:       repo.Name,
		ExportedAt: time.Now(),
		Files:      []jsonFile{},
	}

	repotree.Walk(forest, func(n *repotree.Node, _ int) {
		if n.Kind == repotree.KindFile {
			out.Files = append(out.Files, jsonFile{Path: n.Path, Size: n.Size})
		}
	})
	out.FileCount = len(out.Files)

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
