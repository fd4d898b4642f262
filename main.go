package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lotas/testwerk/internal/applog"
	"github.com/lotas/testwerk/internal/config"
	"github.com/lotas/testwerk/internal/export"
	"github.com/lotas/testwerk/internal/gateway"
	"github.com/lotas/testwerk/internal/repotree"
	"github.com/lotas/testwerk/internal/tui"
	"github.com/lotas/testwerk/internal/types"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "files":
			runFiles(os.Args[2:])
			return
		case "summarize":
			runSummarize(os.Args[2:])
			return
		case "generate":
			runGenerate(os.Args[2:])
			return
		case "frameworks":
			runFrameworks(os.Args[2:])
			return
		case "health":
			runHealth(os.Args[2:])
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}

	fs := flag.NewFlagSet("testwerk", flag.ExitOnError)
	backend := fs.String("backend", "", "Backend base URL (env: TESTWERK_BACKEND)")
	framework := fs.String("framework", "", "Testing framework to target (env: TESTWERK_FRAMEWORK, default: pytest)")
	fs.Parse(os.Args[1:])

	cfg := config.Load(*backend, *framework)
	if err := applog.Init(cfg.LogDir); err == nil {
		defer applog.Close()
	}
	applog.Info("start", "backend", cfg.BackendURL, "framework", cfg.Framework)

	client := gateway.New(cfg.BackendURL)
	model := tui.NewModel(client, cfg.Framework)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`testwerk — AI test case generator client

Usage:
  testwerk                                             Start the TUI (default)
    --backend <url>        Backend base URL (env: TESTWERK_BACKEND)
    --framework <name>     Testing framework (env: TESTWERK_FRAMEWORK, default: pytest)

  testwerk files --owner <o> --repo <r>                Print the repository file tree
    --json                 Print as JSON instead of markdown

  testwerk summarize --owner <o> --repo <r> --path <p>[,<p>...]
    --framework <name>     Generate test case summaries for the given files

  testwerk generate --file <name> --content-file <path> --scenario <text>
    --out <file>           Generate test code for a scenario (default: stdout)

  testwerk frameworks                                  List supported frameworks

  testwerk health                                      Check backend health

Environment:
  TESTWERK_BACKEND       Backend base URL (default: http://localhost:8000/api/v1)
  TESTWERK_FRAMEWORK     Default testing framework (default: pytest)
  TESTWERK_LOG_DIR       Log directory (default: ~/.local/share/testwerk)
`)
}

func newClient(flagBackend, flagFramework string) (*gateway.Client, config.Config) {
	cfg := config.Load(flagBackend, flagFramework)
	applog.Init(cfg.LogDir)
	return gateway.New(cfg.BackendURL), cfg
}

func runFiles(args []string) {
	fs := flag.NewFlagSet("files", flag.ExitOnError)
	owner := fs.String("owner", "", "Repository owner")
	repo := fs.String("repo", "", "Repository name")
	backend := fs.String("backend", "", "Backend base URL")
	jsonFlag := fs.Bool("json", false, "Print as JSON instead of markdown")
	fs.Parse(args)

	client, _ := newClient(*backend, "")

	entries, err := client.FetchRepoFiles(context.Background(), *owner, *repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	r := types.Repo{Owner: *owner, Name: *repo}
	forest := repotree.Build(entries)

	if *jsonFlag {
		out, err := export.JSON(r, forest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
		return
	}
	fmt.Print(export.Tree(r, forest))
}

func runSummarize(args []string) {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	owner := fs.String("owner", "", "Repository owner")
	repo := fs.String("repo", "", "Repository name")
	paths := fs.String("path", "", "Comma-separated file paths")
	backend := fs.String("backend", "", "Backend base URL")
	framework := fs.String("framework", "", "Testing framework")
	fs.Parse(args)

	var pathList []string
	for _, p := range strings.Split(*paths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			pathList = append(pathList, p)
		}
	}

	client, cfg := newClient(*backend, *framework)

	summaries, err := client.SummarizeTests(context.Background(), *owner, *repo, pathList, cfg.Framework)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(export.Summaries(types.Repo{Owner: *owner, Name: *repo}, cfg.Framework, summaries))
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	fileName := fs.String("file", "", "Name of the file under test")
	contentFile := fs.String("content-file", "", "Local file holding the source content")
	scenario := fs.String("scenario", "", "Test case scenario")
	outFile := fs.String("out", "", "Output file path (default: stdout)")
	backend := fs.String("backend", "", "Backend base URL")
	fs.Parse(args)

	var content string
	if *contentFile != "" {
		data, err := os.ReadFile(*contentFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *contentFile, err)
			os.Exit(1)
		}
		content = string(data)
	}

	client, _ := newClient(*backend, "")

	result, err := client.GenerateTest(context.Background(), *fileName, content, *scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outFile != "" {
		if err := os.WriteFile(*outFile, []byte(result.Code), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *outFile)
		return
	}
	fmt.Println(result.Code)
}

func runFrameworks(args []string) {
	fs := flag.NewFlagSet("frameworks", flag.ExitOnError)
	backend := fs.String("backend", "", "Backend base URL")
	fs.Parse(args)

	client, _ := newClient(*backend, "")

	frameworks, err := client.SupportedFrameworks(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(frameworks) == 0 {
		fmt.Println("No frameworks reported.")
		return
	}
	fmt.Printf("%-12s %-24s %s\n", "NAME", "LANGUAGE", "DESCRIPTION")
	for _, f := range frameworks {
		fmt.Printf("%-12s %-24s %s\n", f.Name, f.Language, f.Description)
	}
}

func runHealth(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	backend := fs.String("backend", "", "Backend base URL")
	fs.Parse(args)

	client, _ := newClient(*backend, "")

	if client.CheckHealth(context.Background()) {
		fmt.Printf("Backend %s is healthy.\n", client.BaseURL())
		return
	}
	fmt.Fprintf(os.Stderr, "Backend %s is not responding.\n", client.BaseURL())
	os.Exit(1)
}
