package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/lotas/testwerk/internal/repotree"
	"github.com/lotas/testwerk/internal/types"
)

// Tree formats a repository forest as a markdown outline.
func Tree(repo types.Repo, forest []*repotree.Node) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s/%s\n", repo.Owner, repo.Name)
	fmt.Fprintf(&b, "> Exported %s\n\n", time.Now().Format("2006-01-02 15:04"))

	repotree.Walk(forest, func(n *repotree.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		if n.Kind == repotree.KindDir {
			fmt.Fprintf(&b, "%s- %s/\n", indent, n.Name)
		} else {
			fmt.Fprintf(&b, "%s- %s (%s)\n", indent, n.Name, humanSize(n.Size))
		}
	})

	s := repotree.Stats(forest)
	fmt.Fprintf(&b, "\n%d files, %d directories, %s total\n",
		s.TotalFiles, s.TotalDirs, humanSize(s.TotalBytes))

	return b.String()
}

// Summaries formats AI summaries as a markdown list.
func Summaries(repo types.Repo, framework string, summaries []types.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Test case summaries — %s/%s (%s)\n\n", repo.Owner, repo.Name, framework)
	for _, s := range summaries {
		fmt.Fprintf(&b, "%d. %s\n", s.ID, s.Summary)
	}
	return b.String()
}

func humanSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}
