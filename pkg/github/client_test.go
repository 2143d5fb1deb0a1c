package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const graphqlBody = `{
  "data": {
    "user": {
      "login": "octocat",
      "name": "The Octocat",
      "avatarUrl": "https://example.com/a.png",
      "followers": {"totalCount": 10},
      "following": {"totalCount": 3},
      "createdAt": "2016-09-01T00:00:00Z",
      "updatedAt": "2026-08-01T00:00:00Z",
      "repositories": {
        "totalCount": 2,
        "nodes": [
          {"name": "hello", "url": "https://github.com/octocat/hello", "stargazerCount": 8, "isFork": false},
          {"name": "mirror", "url": "https://github.com/octocat/mirror", "stargazerCount": 2, "isFork": true}
        ]
      },
      "pinnedItems": {"nodes": []},
      "contributionsCollection": {
        "totalCommitContributions": 100,
        "totalPullRequestContributions": 20,
        "contributionCalendar": {"totalContributions": 120, "weeks": []}
      }
    }
  }
}`

const restUserBody = `{
  "login": "octocat",
  "name": "The Octocat",
  "public_repos": 1,
  "followers": 10,
  "following": 3,
  "created_at": "2016-09-01T00:00:00Z",
  "updated_at": "2026-08-01T00:00:00Z"
}`

const restReposBody = `[
  {"name": "hello", "html_url": "https://github.com/octocat/hello", "stargazers_count": 8, "language": "Go"}
]`

// testBackend is a stand-in for both GitHub APIs. Counters record how many
// times each path was hit so tests can assert on the fallback sequence.
type testBackend struct {
	graphqlStatus int
	graphqlBody   string
	userStatus    int
	userBody      string
	reposStatus   int
	reposBody     string

	graphqlHits atomic.Int64
	restHits    atomic.Int64
}

func (b *testBackend) serve(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
		b.graphqlHits.Add(1)
		w.WriteHeader(b.graphqlStatus)
		fmt.Fprint(w, b.graphqlBody)
	})
	mux.HandleFunc("GET /users/{handle}", func(w http.ResponseWriter, r *http.Request) {
		b.restHits.Add(1)
		w.WriteHeader(b.userStatus)
		fmt.Fprint(w, b.userBody)
	})
	mux.HandleFunc("GET /users/{handle}/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(b.reposStatus)
		fmt.Fprint(w, b.reposBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient("test-token",
		WithBaseURLs(srv.URL+"/graphql", srv.URL),
		WithClock(func() time.Time { return testNow }),
	)
}

func okBackend() *testBackend {
	return &testBackend{
		graphqlStatus: http.StatusOK, graphqlBody: graphqlBody,
		userStatus: http.StatusOK, userBody: restUserBody,
		reposStatus: http.StatusOK, reposBody: restReposBody,
	}
}

func TestFetchProfileGraphQLPath(t *testing.T) {
	backend := okBackend()
	client := backend.serve(t)

	profile, err := client.FetchProfile(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if profile.User.Login != "octocat" {
		t.Errorf("login = %q, want octocat", profile.User.Login)
	}
	if profile.Contributions == nil || profile.Contributions.TotalCommits != 100 {
		t.Errorf("contributions missing or wrong: %+v", profile.Contributions)
	}
	if profile.Stats.YearsActive != 10 {
		t.Errorf("YearsActive = %d, want 10", profile.Stats.YearsActive)
	}
	if got := backend.restHits.Load(); got != 0 {
		t.Errorf("REST hit %d times on a successful rich fetch, want 0", got)
	}
}

func TestFetchProfileFallsBackOnBadToken(t *testing.T) {
	backend := okBackend()
	backend.graphqlStatus = http.StatusUnauthorized
	backend.graphqlBody = `{"message": "Bad credentials"}`
	client := backend.serve(t)

	profile, err := client.FetchProfile(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if backend.graphqlHits.Load() != 1 || backend.restHits.Load() != 1 {
		t.Errorf("hits graphql=%d rest=%d, want 1/1", backend.graphqlHits.Load(), backend.restHits.Load())
	}
	// The simple path carries no contribution data.
	if profile.Contributions != nil {
		t.Error("contributions should be nil after the fallback")
	}
	if len(profile.Repositories) != 1 || profile.Repositories[0].Name != "hello" {
		t.Errorf("repositories = %+v", profile.Repositories)
	}
}

func TestFetchProfileNotFoundIsAuthoritative(t *testing.T) {
	backend := okBackend()
	backend.graphqlBody = `{"data": {"user": null}, "errors": [{"message": "Could not resolve to a User with the login of 'nobody'."}]}`
	client := backend.serve(t)

	_, err := client.FetchProfile(context.Background(), "nobody")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindNotFound {
		t.Fatalf("err = %v, want not-found FetchError", err)
	}
	if got := backend.restHits.Load(); got != 0 {
		t.Errorf("REST hit %d times after a definitive not-found, want 0", got)
	}
}

func TestFetchProfileRateLimitedIsAuthoritative(t *testing.T) {
	backend := okBackend()
	backend.graphqlStatus = http.StatusForbidden
	backend.graphqlBody = `{"message": "API rate limit exceeded"}`
	client := backend.serve(t)

	_, err := client.FetchProfile(context.Background(), "octocat")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindRateLimit {
		t.Fatalf("err = %v, want rate-limit FetchError", err)
	}
	if got := backend.restHits.Load(); got != 0 {
		t.Errorf("REST hit %d times while rate limited, want 0", got)
	}
}

func TestFetchProfileWithoutTokenUsesREST(t *testing.T) {
	backend := okBackend()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
		backend.graphqlHits.Add(1)
		http.Error(w, "unexpected", http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /users/{handle}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, restUserBody)
	})
	mux.HandleFunc("GET /users/{handle}/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, restReposBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient("", WithBaseURLs(srv.URL+"/graphql", srv.URL))
	profile, err := client.FetchProfile(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if backend.graphqlHits.Load() != 0 {
		t.Error("GraphQL endpoint hit without a token")
	}
	if profile.User.Login != "octocat" {
		t.Errorf("login = %q, want octocat", profile.User.Login)
	}
}

func TestFetchProfileRESTNotFound(t *testing.T) {
	backend := okBackend()
	backend.graphqlStatus = http.StatusUnauthorized
	backend.userStatus = http.StatusNotFound
	backend.userBody = `{"message": "Not Found"}`
	client := backend.serve(t)

	_, err := client.FetchProfile(context.Background(), "nobody")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindNotFound {
		t.Fatalf("err = %v, want not-found FetchError", err)
	}
	if fe.UserMessage() != `User "nobody" not found on GitHub` {
		t.Errorf("user message = %q", fe.UserMessage())
	}
}

func TestFetchProfileToleratesRepoListFailure(t *testing.T) {
	backend := okBackend()
	backend.graphqlStatus = http.StatusUnauthorized
	backend.reposStatus = http.StatusInternalServerError
	backend.reposBody = `{"message": "boom"}`
	client := backend.serve(t)

	profile, err := client.FetchProfile(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if len(profile.Repositories) != 0 {
		t.Errorf("repositories = %+v, want none when the listing fails", profile.Repositories)
	}
	if profile.User.Login != "octocat" {
		t.Errorf("login = %q, want octocat", profile.User.Login)
	}
}

func TestFetchProfileInvalidHandle(t *testing.T) {
	client := NewClient("token") // no server needed, validation rejects first

	for _, handle := range []string{"", "-leading", "has space", "way-too-long-aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"} {
		_, err := client.FetchProfile(context.Background(), handle)
		var fe *FetchError
		if !errors.As(err, &fe) || fe.Kind != KindNotFound {
			t.Errorf("handle %q: err = %v, want not-found FetchError", handle, err)
		}
	}
}

func TestFetchProfileCleansHandle(t *testing.T) {
	backend := okBackend()
	client := backend.serve(t)

	profile, err := client.FetchProfile(context.Background(), "  @octocat ")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if profile.User.Login != "octocat" {
		t.Errorf("login = %q, want octocat", profile.User.Login)
	}
}

func TestCheckRateLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rate_limit", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resources": {"core": {"limit": 5000, "remaining": 4200, "reset": 1756728000}}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient("", WithBaseURLs(srv.URL+"/graphql", srv.URL))
	rl, err := client.CheckRateLimit(context.Background())
	if err != nil {
		t.Fatalf("CheckRateLimit: %v", err)
	}
	if rl.Remaining != 4200 {
		t.Errorf("Remaining = %d, want 4200", rl.Remaining)
	}
	if rl.Reset.Unix() != 1756728000 {
		t.Errorf("Reset = %v", rl.Reset)
	}
}
