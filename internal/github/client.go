package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/raphi011/dracula/internal/log"
	"github.com/raphi011/dracula/internal/repo"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

const (
	userAgent  = "dracula-cli"
	acceptJSON = "application/vnd.github+json"
	acceptRaw  = "application/vnd.github.raw"

	// maxBody caps how much of a README or guide is read.
	maxBody = 4 << 20
)

// Client talks to the GitHub REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithToken authenticates requests, raising the rate limit.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the public API.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is the outcome of a metadata request.
// When Changed is false the server confirmed the caller's validator and
// Metadata is empty.
type Response struct {
	Metadata  repo.Metadata
	Validator string
	Changed   bool
}

type apiRepository struct {
	Stars       *int       `json:"stargazers_count"`
	Forks       *int       `json:"forks_count"`
	Size        *int       `json:"size"`
	Watchers    *int       `json:"watchers_count"`
	OpenIssues  *int       `json:"open_issues_count"`
	Language    *string    `json:"language"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	PushedAt    *time.Time `json:"pushed_at"`
	Description *string    `json:"description"`
	HTMLURL     string     `json:"html_url"`
	License     *struct {
		Name string `json:"name"`
	} `json:"license"`
}

func (r apiRepository) metadata() repo.Metadata {
	m := repo.Metadata{
		Stars:      r.Stars,
		Forks:      r.Forks,
		Size:       r.Size,
		Watchers:   r.Watchers,
		OpenIssues: r.OpenIssues,
		Language:   r.Language,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		PushedAt:   r.PushedAt,
		HTMLURL:    r.HTMLURL,
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.License != nil {
		m.License = r.License.Name
	}
	return m
}

// Repository fetches metadata for "owner/name". A non-empty validator makes
// the request conditional.
func (c *Client) Repository(ctx context.Context, repository, validator string) (Response, error) {
	resp, err := c.get(ctx, "/repos/"+repository, acceptJSON, validator)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return Response{Validator: validator}, nil
	}
	if err := checkStatus(resp); err != nil {
		return Response{}, err
	}

	var out apiRepository
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decode %s: %w", repository, err)
	}

	return Response{
		Metadata:  out.metadata(),
		Validator: resp.Header.Get("ETag"),
		Changed:   true,
	}, nil
}

// Readme returns the raw README of a repository.
func (c *Client) Readme(ctx context.Context, repository string) (string, error) {
	return c.raw(ctx, "/repos/"+repository+"/readme")
}

// InstallGuide returns the raw INSTALL.md of a repository.
func (c *Client) InstallGuide(ctx context.Context, repository string) (string, error) {
	return c.raw(ctx, "/repos/"+repository+"/contents/INSTALL.md")
}

func (c *Client) raw(ctx context.Context, path string) (string, error) {
	resp, err := c.get(ctx, path, acceptRaw, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, path, accept, validator string) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if validator != "" {
		req.Header.Set("If-None-Match", validator)
	}

	done := log.FromContext(ctx).Request(req.Method, url)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		done(0, time.Since(start))
		return nil, err
	}
	done(resp.StatusCode, time.Since(start))
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case isRateLimited(resp):
		return &RateLimitError{Reset: rateLimitReset(resp)}
	}

	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
	return &StatusError{StatusCode: resp.StatusCode, Message: body.Message}
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0"
}

func rateLimitReset(resp *http.Response) time.Time {
	secs, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
