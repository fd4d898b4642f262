// Package gateway is the HTTP client for the test-generation backend. It
// owns no state: every method performs one request (the composite summarize
// performs two), validates its arguments before touching the network, and
// returns either the decoded payload or a single normalized *Error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lotas/testwerk/internal/applog"
	"github.com/lotas/testwerk/internal/types"
)

// DefaultBaseURL is used when no backend is configured.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// DefaultFramework is the testing framework assumed when none is given.
const DefaultFramework = "pytest"

// Per-operation deadlines. AI calls are slow; tree listing is not.
const (
	filesTimeout    = 8 * time.Second
	contentsTimeout = 15 * time.Second
	aiTimeout       = 60 * time.Second
	healthTimeout   = 3 * time.Second
)

// Client talks to one backend instance. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the given base URL. An empty baseURL falls back
// to DefaultBaseURL; a trailing slash is tolerated.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// rootURL strips the versioned API prefix off the base URL. The backend
// serves its application-level health endpoint at the server root.
func (c *Client) rootURL() string {
	return strings.TrimSuffix(c.baseURL, "/api/v1")
}

// FetchRepoFiles lists a repository and flattens the backend's nested tree
// into flat file entries.
func (c *Client) FetchRepoFiles(ctx context.Context, owner, repo string) ([]types.FileEntry, error) {
	if owner == "" {
		return nil, validationErr("owner is required")
	}
	if repo == "" {
		return nil, validationErr("repo is required")
	}

	u := fmt.Sprintf("%s/repos/%s/%s/files", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	body, err := c.do(ctx, http.MethodGet, u, nil, filesTimeout)
	if err != nil {
		return nil, err
	}

	var resp fileTreeResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}
	return flattenTree(resp.Files)
}

type fileContentsRequest struct {
	Owner     string   `json:"owner"`
	Repo      string   `json:"repo"`
	FilePaths []string `json:"file_paths"`
}

type fileContentsResponse struct {
	Files []types.FileContent `json:"files"`
}

// FetchFileContents retrieves the decoded contents of the given files.
func (c *Client) FetchFileContents(ctx context.Context, owner, repo string, paths []string) ([]types.FileContent, error) {
	if owner == "" {
		return nil, validationErr("owner is required")
	}
	if repo == "" {
		return nil, validationErr("repo is required")
	}
	if len(paths) == 0 {
		return nil, validationErr("at least one file path is required")
	}

	u := c.baseURL + "/repos/file-contents"
	body, err := c.do(ctx, http.MethodPost, u, fileContentsRequest{Owner: owner, Repo: repo, FilePaths: paths}, contentsTimeout)
	if err != nil {
		return nil, err
	}

	var resp fileContentsResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}
	if resp.Files == nil {
		return []types.FileContent{}, nil
	}
	return resp.Files, nil
}

type summariesResponse struct {
	Summaries []types.Summary `json:"summaries"`
}

// SummarizeTestsWithContent asks the backend for test-case summaries of the
// given file contents. The framework is passed as a query parameter and
// defaults to pytest.
func (c *Client) SummarizeTestsWithContent(ctx context.Context, contents []types.FileContent, framework string) ([]types.Summary, error) {
	if len(contents) == 0 {
		return nil, validationErr("file contents are required")
	}
	if framework == "" {
		framework = DefaultFramework
	}

	u := fmt.Sprintf("%s/ai/summarize-tests-with-content?framework=%s", c.baseURL, url.QueryEscape(framework))
	body, err := c.do(ctx, http.MethodPost, u, contents, aiTimeout)
	if err != nil {
		return nil, err
	}

	var resp summariesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}
	if resp.Summaries == nil {
		return []types.Summary{}, nil
	}
	return resp.Summaries, nil
}

// SummarizeTests fetches file contents, then summarizes them. A failure in
// the content fetch propagates unchanged.
func (c *Client) SummarizeTests(ctx context.Context, owner, repo string, paths []string, framework string) ([]types.Summary, error) {
	contents, err := c.FetchFileContents(ctx, owner, repo, paths)
	if err != nil {
		return nil, err
	}
	return c.SummarizeTestsWithContent(ctx, contents, framework)
}

// GenerateCode asks the backend for test code implementing one summary
// against one file.
func (c *Client) GenerateCode(ctx context.Context, content types.FileContent, summary, framework string) (*types.GeneratedCode, error) {
	if content.Content == "" {
		return nil, validationErr("file content is required")
	}
	if summary == "" {
		return nil, validationErr("summary is required")
	}
	if framework == "" {
		framework = DefaultFramework
	}

	u := fmt.Sprintf("%s/ai/generate-code?summary=%s&framework=%s",
		c.baseURL, url.QueryEscape(summary), url.QueryEscape(framework))
	body, err := c.do(ctx, http.MethodPost, u, content, aiTimeout)
	if err != nil {
		return nil, err
	}

	var resp types.GeneratedCode
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type generateTestRequest struct {
	FileName    string `json:"file_name"`
	FileContent string `json:"file_content"`
	Scenario    string `json:"scenario"`
}

// GenerateTest asks the backend for test code implementing a free-form
// scenario against one file.
func (c *Client) GenerateTest(ctx context.Context, fileName, fileContent, scenario string) (*types.GeneratedTest, error) {
	if fileName == "" {
		return nil, validationErr("file name is required")
	}
	if fileContent == "" {
		return nil, validationErr("file content is required")
	}
	if scenario == "" {
		return nil, validationErr("scenario is required")
	}

	u := c.baseURL + "/ai/generate-test"
	body, err := c.do(ctx, http.MethodPost, u, generateTestRequest{
		FileName:    fileName,
		FileContent: fileContent,
		Scenario:    scenario,
	}, aiTimeout)
	if err != nil {
		return nil, err
	}

	var resp types.GeneratedTest
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type frameworksResponse struct {
	Frameworks []types.Framework `json:"frameworks"`
}

// SupportedFrameworks lists the testing frameworks the backend can target.
func (c *Client) SupportedFrameworks(ctx context.Context) ([]types.Framework, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/ai/supported-frameworks", nil, filesTimeout)
	if err != nil {
		return nil, err
	}

	var resp frameworksResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}
	if resp.Frameworks == nil {
		return []types.Framework{}, nil
	}
	return resp.Frameworks, nil
}

// do performs one JSON request and returns the raw response body on 2xx.
// Failures come back already normalized.
func (c *Client) do(ctx context.Context, method, rawURL string, payload any, timeout time.Duration) ([]byte, error) {
	reqID := uuid.NewString()
	applog.Info("gateway.request", "id", reqID, "method", method, "url", rawURL)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, normalize(fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, normalize(fmt.Errorf("create request: %w", err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		applog.Error("gateway.transport", err, "id", reqID)
		return nil, &Error{Kind: KindTransport, Message: "Network error: backend unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gwErr := backendErr(resp)
		applog.Error("gateway.backend", gwErr, "id", reqID, "status", resp.StatusCode)
		return nil, gwErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		applog.Error("gateway.read", err, "id", reqID)
		return nil, &Error{Kind: KindTransport, Message: "Network error: backend unreachable"}
	}

	applog.Info("gateway.response", "id", reqID, "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}
