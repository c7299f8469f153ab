package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const githubTimeout = 10 * time.Second

// GitHubClient fetches the public repository listing for one user.
type GitHubClient struct {
	baseURL string
	user    string
	token   string
	client  *http.Client
}

func NewGitHubClient(baseURL, user, token string) *GitHubClient {
	return &GitHubClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		user:    user,
		token:   token,
		client:  &http.Client{Timeout: githubTimeout},
	}
}

func (g *GitHubClient) listURL() string {
	return fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100", g.baseURL, g.user)
}

func (g *GitHubClient) newRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.listURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	return req, nil
}

// ListRepos fetches and decodes the repository listing. Non-2xx statuses and
// non-JSON content types are errors; the raw body is included for
// diagnostics.
func (g *GitHubClient) ListRepos(ctx context.Context) ([]Project, error) {
	req, err := g.newRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("github returned %d: %s", resp.StatusCode, string(body))
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("github returned non-JSON content type %q: %s", ct, string(body))
	}

	var repos []Project
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decoding repository listing: %w", err)
	}
	return repos, nil
}

// githubProxyHandler relays the upstream listing verbatim: same status, same
// body. The bearer credential never leaves the server.
func githubProxyHandler(g *GitHubClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := g.newRequest(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reach GitHub"})
			return
		}

		resp, err := g.client.Do(req)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to reach GitHub"})
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to read GitHub response"})
			return
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/json"
		}
		c.Data(resp.StatusCode, contentType, body)
	}
}
