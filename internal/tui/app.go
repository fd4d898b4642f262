package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lotas/testwerk/internal/applog"
	"github.com/lotas/testwerk/internal/contentcache"
	"github.com/lotas/testwerk/internal/gateway"
	"github.com/lotas/testwerk/internal/repotree"
	"github.com/lotas/testwerk/internal/selection"
	"github.com/lotas/testwerk/internal/types"
)

const healthInterval = 5 * time.Second

// --- Messages ---

type filesLoadedMsg struct {
	repo    types.Repo
	entries []types.FileEntry
	err     error
}

type summariesMsg struct {
	summaries []types.Summary
	err       error
}

type codeMsg struct {
	title string
	code  string
	err   error
}

type healthMsg struct{ ok bool }

type healthTickMsg struct{}

// --- Model ---

type Model struct {
	client    *gateway.Client
	cache     *contentcache.Cache
	framework string

	// Data
	repo      types.Repo
	summaries []types.Summary

	// UI state
	view         ViewType
	form         RepoForm
	tree         TreeView
	sums         SummariesView
	code         CodeView
	spin         spinner.Model
	scenario     textinput.Model
	showScenario bool
	loading      bool
	status       string
	statusErr    bool
	healthy      bool
	width        int
	height       int
}

func NewModel(client *gateway.Client, framework string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))

	scenario := textinput.New()
	scenario.Placeholder = "test scenario, e.g. rejects empty input"
	scenario.CharLimit = 300

	return Model{
		client:    client,
		cache:     contentcache.New(0),
		framework: framework,
		view:      ViewRepo,
		form:      NewRepoForm(),
		spin:      sp,
		scenario:  scenario,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(checkHealth(m.client), scheduleHealthTick())
}

// --- Commands ---

func checkHealth(client *gateway.Client) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{ok: client.CheckHealth(context.Background())}
	}
}

func scheduleHealthTick() tea.Cmd {
	return tea.Tick(healthInterval, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

func loadFiles(client *gateway.Client, repo types.Repo) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.FetchRepoFiles(context.Background(), repo.Owner, repo.Name)
		return filesLoadedMsg{repo: repo, entries: entries, err: err}
	}
}

// summarizeSelection fetches missing file contents (cached ones are reused)
// and requests summaries for the whole selection.
func summarizeSelection(client *gateway.Client, cache *contentcache.Cache, repo types.Repo, sel selection.Map, framework string) tea.Cmd {
	paths := selection.Paths(sel)
	return func() tea.Msg {
		ctx := context.Background()
		cached, missing := cache.Collect(repo.Owner, repo.Name, paths)
		if len(missing) > 0 {
			fetched, err := client.FetchFileContents(ctx, repo.Owner, repo.Name, missing)
			if err != nil {
				return summariesMsg{err: err}
			}
			cache.Put(repo.Owner, repo.Name, fetched)
			cached = append(cached, fetched...)
		}
		summaries, err := client.SummarizeTestsWithContent(ctx, cached, framework)
		return summariesMsg{summaries: summaries, err: err}
	}
}

func generateCode(client *gateway.Client, cache *contentcache.Cache, repo types.Repo, path string, summary types.Summary, framework string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		content, ok := cache.Get(repo.Owner, repo.Name, path)
		if !ok {
			fetched, err := client.FetchFileContents(ctx, repo.Owner, repo.Name, []string{path})
			if err != nil {
				return codeMsg{err: err}
			}
			if len(fetched) == 0 {
				return codeMsg{err: fmt.Errorf("backend returned no content for %s", path)}
			}
			cache.Put(repo.Owner, repo.Name, fetched)
			content = fetched[0]
		}
		result, err := client.GenerateCode(ctx, content, summary.Summary, framework)
		if err != nil {
			return codeMsg{err: err}
		}
		return codeMsg{title: fmt.Sprintf("%s — summary #%d", path, summary.ID), code: result.Code}
	}
}

func generateScenario(client *gateway.Client, cache *contentcache.Cache, repo types.Repo, path, scenario string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		content, ok := cache.Get(repo.Owner, repo.Name, path)
		if !ok {
			fetched, err := client.FetchFileContents(ctx, repo.Owner, repo.Name, []string{path})
			if err != nil {
				return codeMsg{err: err}
			}
			if len(fetched) == 0 {
				return codeMsg{err: fmt.Errorf("backend returned no content for %s", path)}
			}
			cache.Put(repo.Owner, repo.Name, fetched)
			content = fetched[0]
		}
		result, err := client.GenerateTest(ctx, path, content.Content, scenario)
		if err != nil {
			return codeMsg{err: err}
		}
		return codeMsg{title: fmt.Sprintf("%s — %s", path, scenario), code: result.Code}
	}
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := m.height - 3 // navbar + status line + padding
		m.tree.Width = m.width
		m.tree.Height = contentHeight
		m.sums.Width = m.width
		m.sums.Height = contentHeight
		m.code.SetSize(m.width, contentHeight)
		return m, nil

	case healthTickMsg:
		return m, tea.Batch(checkHealth(m.client), scheduleHealthTick())

	case healthMsg:
		m.healthy = msg.ok
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case filesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.repo = msg.repo
		m.tree = NewTreeView(repotree.Build(msg.entries))
		m.tree.Width = m.width
		m.tree.Height = m.height - 3
		m.summaries = nil
		m.sums = SummariesView{Width: m.width, Height: m.height - 3}
		m.view = ViewTree
		s := repotree.Stats(m.tree.Forest)
		m.setStatus(fmt.Sprintf("Loaded %d files in %d directories", s.TotalFiles, s.TotalDirs))
		applog.Info("tree.loaded", "repo", msg.repo.Owner+"/"+msg.repo.Name, "files", s.TotalFiles)
		return m, nil

	case summariesMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.summaries = msg.summaries
		m.sums = SummariesView{Summaries: msg.summaries, Width: m.width, Height: m.height - 3}
		m.view = ViewSummaries
		m.setStatus(fmt.Sprintf("%d test case summaries", len(msg.summaries)))
		return m, nil

	case codeMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.code.SetContent(msg.title, msg.code)
		m.view = ViewCode
		m.setStatus("Generated test code ready")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Scenario prompt swallows all keys until closed.
	if m.showScenario {
		switch msg.String() {
		case "esc":
			m.showScenario = false
			return m, nil
		case "enter":
			row := m.tree.CurrentRow()
			scenario := m.scenario.Value()
			if row == nil || row.Node.Kind != repotree.KindFile || scenario == "" {
				m.showScenario = false
				return m, nil
			}
			m.showScenario = false
			m.loading = true
			m.setStatus("Generating test for scenario...")
			return m, tea.Batch(m.spin.Tick,
				generateScenario(m.client, m.cache, m.repo, row.Node.Path, scenario))
		}
		var cmd tea.Cmd
		m.scenario, cmd = m.scenario.Update(msg)
		return m, cmd
	}

	// The repo form owns typing while visible.
	if m.view == ViewRepo {
		switch msg.String() {
		case "esc":
			return m, tea.Quit
		case "enter":
			if !m.form.Complete() || m.loading {
				return m, nil
			}
			m.loading = true
			repo := m.form.Value()
			m.setStatus(fmt.Sprintf("Loading %s/%s...", repo.Owner, repo.Name))
			return m, tea.Batch(m.spin.Tick, loadFiles(m.client, repo))
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "1":
		m.view = ViewRepo
		return m, nil
	case "2":
		if m.tree.Forest != nil {
			m.view = ViewTree
		}
		return m, nil
	case "3":
		m.view = ViewSummaries
		return m, nil
	case "4":
		m.view = ViewCode
		return m, nil
	case "R":
		// Full reload drops the tree and the selection with it.
		if m.repo.Owner != "" && !m.loading {
			m.loading = true
			m.setStatus("Reloading...")
			return m, tea.Batch(m.spin.Tick, loadFiles(m.client, m.repo))
		}
		return m, nil
	}

	switch m.view {
	case ViewTree:
		return m.handleTreeKey(msg)
	case ViewSummaries:
		return m.handleSummariesKey(msg)
	case ViewCode:
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.tree.MoveUp()
	case "down", "j":
		m.tree.MoveDown()
	case "left", "h":
		m.tree.CollapseOrParent()
	case "right", "l":
		m.tree.ExpandOrEnter()
	case "enter":
		m.tree.Toggle()
	case " ":
		m.tree.ToggleSelect()
	case "s":
		if m.loading {
			return m, nil
		}
		if !selection.Any(m.tree.Selected) {
			m.setStatus("Nothing selected. Mark files with space first.")
			return m, nil
		}
		m.loading = true
		m.setStatus(fmt.Sprintf("Summarizing %d files...", selection.Count(m.tree.Selected)))
		return m, tea.Batch(m.spin.Tick,
			summarizeSelection(m.client, m.cache, m.repo, m.tree.Selected, m.framework))
	case "g":
		row := m.tree.CurrentRow()
		if m.loading || row == nil || row.Node.Kind != repotree.KindFile {
			return m, nil
		}
		m.scenario.SetValue("")
		m.scenario.Focus()
		m.showScenario = true
	}
	return m, nil
}

func (m Model) handleSummariesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.sums.MoveUp()
	case "down", "j":
		m.sums.MoveDown()
	case "enter":
		if m.loading {
			return m, nil
		}
		summary := m.sums.Current()
		paths := selection.Paths(m.tree.Selected)
		if summary == nil || len(paths) == 0 {
			m.setStatus("Pick a summary with a file still selected.")
			return m, nil
		}
		m.loading = true
		m.setStatus("Generating test code...")
		return m, tea.Batch(m.spin.Tick,
			generateCode(m.client, m.cache, m.repo, paths[0], *summary, m.framework))
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	applog.Error("tui.error", err)
}

// --- View ---

func (m Model) View() string {
	repoLabel := ""
	if m.repo.Owner != "" {
		repoLabel = m.repo.Owner + "/" + m.repo.Name
	}

	stats := ""
	if m.tree.Forest != nil {
		s := repotree.Stats(m.tree.Forest)
		stats = fmt.Sprintf("%d files · %d selected", s.TotalFiles, selection.Count(m.tree.Selected))
	}

	nav := renderNavbar(m.view, repoLabel, m.healthy, stats, m.width)

	var body string
	switch m.view {
	case ViewRepo:
		body = m.form.View()
	case ViewTree:
		if m.showScenario {
			body = "Scenario for " + m.currentFileName() + ":\n\n  " + m.scenario.View() +
				"\n\n  enter: generate · esc: cancel"
		} else {
			body = m.tree.View()
		}
	case ViewSummaries:
		body = m.sums.View()
	case ViewCode:
		body = m.code.View()
	}

	status := m.status
	if m.loading {
		status = m.spin.View() + " " + status
	}

	return nav + "\n" + body + "\n" + renderStatusLine(status, m.statusErr, m.width)
}

func (m Model) currentFileName() string {
	if row := m.tree.CurrentRow(); row != nil {
		return row.Node.Name
	}
	return ""
}
