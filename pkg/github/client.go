package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mkarlovic/gitfolio/pkg/observability"
)

const (
	defaultGraphQLURL = "https://api.github.com/graphql"
	defaultRESTURL    = "https://api.github.com"
	userAgent         = "gitfolio"
	httpTimeout       = 10 * time.Second
	maxRepoPage       = 100
)

// Client fetches GitHub profiles with dual-source fallback.
//
// With a token configured, the GraphQL API is tried first; an authorization
// failure there falls through to the REST API. Without a token the REST API
// is used directly. The client never retries: profile fetch failures are
// authoritative, and retry budgets belong to the durable-store layer.
type Client struct {
	http       *http.Client
	token      string
	graphqlURL string
	restURL    string
	now        func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURLs overrides the upstream endpoints. Intended for tests against
// a local stand-in server.
func WithBaseURLs(graphqlURL, restURL string) Option {
	return func(c *Client) {
		c.graphqlURL = graphqlURL
		c.restURL = restURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithClock replaces the client's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a profile client. Pass an empty token to skip the GraphQL
// path entirely; the token is still attached to REST requests when present,
// for the higher rate limits.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: httpTimeout},
		token:      token,
		graphqlURL: defaultGraphQLURL,
		restURL:    defaultRESTURL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProfile fetches and normalizes the profile for handle. The handle is
// trimmed and a leading "@" stripped before use. On failure the returned
// error is always a *FetchError carrying the taxonomy kind.
func (c *Client) FetchProfile(ctx context.Context, handle string) (*Profile, error) {
	handle = CleanHandle(handle)
	if err := ValidateHandle(handle); err != nil {
		return nil, notFoundError(handle)
	}

	start := c.now()
	profile, source, err := c.fetchProfile(ctx, handle)
	observability.Fetch().OnFetchComplete(ctx, handle, source, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *Client) fetchProfile(ctx context.Context, handle string) (*Profile, string, error) {
	if c.token != "" {
		observability.Fetch().OnFetchStart(ctx, handle, "graphql")
		profile, err := c.fetchGraphQL(ctx, handle)
		if err == nil {
			return profile, "graphql", nil
		}

		// Only credential problems justify the fallback. Not-found and
		// rate-limit answers are authoritative.
		var fe *FetchError
		if !errors.As(err, &fe) || fe.Kind != KindUnauthorized {
			return nil, "graphql", err
		}
	}

	observability.Fetch().OnFetchStart(ctx, handle, "rest")
	profile, err := c.fetchREST(ctx, handle)
	return profile, "rest", err
}

func (c *Client) fetchGraphQL(ctx context.Context, handle string) (*Profile, error) {
	if c.token == "" {
		return nil, unauthorizedError(handle, "GitHub token not configured", 0)
	}

	payload, err := json.Marshal(map[string]any{
		"query":     profileQuery,
		"variables": map[string]string{"username": handle},
	})
	if err != nil {
		return nil, unknownError(handle, err.Error(), 0)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return nil, unknownError(handle, err.Error(), 0)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unknownError(handle, err.Error(), 0)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, unauthorizedError(handle, "invalid GitHub token", resp.StatusCode)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, rateLimitError(handle, resp.StatusCode)
	default:
		return nil, unknownError(handle, "GitHub API error: "+resp.Status, resp.StatusCode)
	}

	var env graphqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, unknownError(handle, err.Error(), 0)
	}

	if len(env.Errors) > 0 {
		for _, e := range env.Errors {
			if strings.Contains(e.Message, "Could not resolve") {
				return nil, notFoundError(handle)
			}
		}
		return nil, unknownError(handle, env.Errors[0].Message, 0)
	}
	if env.Data == nil || env.Data.User == nil {
		return nil, notFoundError(handle)
	}

	return normalizeGraphQL(env.Data.User, c.now()), nil
}

func (c *Client) fetchREST(ctx context.Context, handle string) (*Profile, error) {
	var user restUser
	status, err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.restURL, handle), &user)
	if err != nil {
		return nil, unknownError(handle, err.Error(), 0)
	}
	switch {
	case status == http.StatusOK:
	case status == http.StatusNotFound:
		return nil, notFoundError(handle)
	case status == http.StatusForbidden || status == http.StatusTooManyRequests:
		return nil, rateLimitError(handle, status)
	default:
		return nil, unknownError(handle, fmt.Sprintf("GitHub API error: status %d", status), status)
	}

	// Repository errors are tolerated: a profile with zero repositories is
	// still a profile, while a missing user record is fatal above.
	var repos []restRepo
	url := fmt.Sprintf("%s/users/%s/repos?sort=stars&direction=desc&per_page=%d", c.restURL, handle, maxRepoPage)
	if status, err := c.getJSON(ctx, url, &repos); err != nil || status != http.StatusOK {
		repos = nil
	}

	return normalizeREST(&user, repos, c.now()), nil
}

// getJSON performs an authenticated GET and decodes a 200 response into v.
// Non-200 statuses are returned to the caller for classification.
func (c *Client) getJSON(ctx context.Context, url string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, json.NewDecoder(resp.Body).Decode(v)
}

// RateLimit reports the remaining core API quota and its reset time.
type RateLimit struct {
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// CheckRateLimit queries the provider's quota endpoint.
func (c *Client) CheckRateLimit(ctx context.Context) (*RateLimit, error) {
	var data restRateLimit
	status, err := c.getJSON(ctx, c.restURL+"/rate_limit", &data)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("rate limit check failed: status %d", status)
	}
	return &RateLimit{
		Remaining: data.Resources.Core.Remaining,
		Reset:     time.Unix(data.Resources.Core.Reset, 0),
	}, nil
}
