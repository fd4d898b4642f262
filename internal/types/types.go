package types

// FileEntry is a single repository file: its repo-relative POSIX path and
// byte size. Produced by the gateway from the backend's nested tree response.
type FileEntry struct {
	Path string
	Size int64
}

// FileContent is a fetched file body.
type FileContent struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Summary is one AI-generated test-case summary. The backend guarantees a
// stable ID for list rendering; the text is otherwise opaque.
type Summary struct {
	ID      int    `json:"id"`
	Summary string `json:"summary"`
}

// GeneratedCode is the result of generating test code for a summary.
type GeneratedCode struct {
	Code      string `json:"code"`
	Summary   string `json:"summary"`
	Framework string `json:"framework"`
	FilePath  string `json:"file_path"`
}

// GeneratedTest is the result of the scenario-based generation endpoint.
type GeneratedTest struct {
	Code     string `json:"code"`
	FileName string `json:"file_name"`
	Scenario string `json:"scenario"`
}

// Framework describes a testing framework the backend can target.
type Framework struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

// Stats holds aggregate numbers about a loaded repository tree.
type Stats struct {
	TotalFiles    int
	TotalDirs     int
	SelectedFiles int
	TotalBytes    int64
}
