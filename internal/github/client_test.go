package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a configurable stand-in for the GitHub REST API.
type fakeAPI struct {
	profileStatus   int
	reposStatus     int
	eventsStatus    int
	rateLimitStatus int

	repoCount int
	events    []map[string]any

	rateLimit     int
	rateRemaining int

	// requests counts hits per path prefix for assertion.
	repoPages []int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		profileStatus:   http.StatusOK,
		reposStatus:     http.StatusOK,
		eventsStatus:    http.StatusOK,
		rateLimitStatus: http.StatusOK,
		rateLimit:       5000,
		rateRemaining:   4990,
	}
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		if f.profileStatus != http.StatusOK {
			http.Error(w, "boom", f.profileStatus)
			return
		}
		writeJSON(t, w, map[string]any{
			"login":        "octocat",
			"name":         "The Octocat",
			"avatar_url":   "https://example.com/a.png",
			"public_repos": f.repoCount,
			"followers":    7,
		})
	})

	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		if f.reposStatus != http.StatusOK {
			http.Error(w, "boom", f.reposStatus)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		f.repoPages = append(f.repoPages, page)

		start := (page - 1) * reposPerPage
		var repos []map[string]any
		for i := start; i < start+reposPerPage && i < f.repoCount; i++ {
			repos = append(repos, map[string]any{
				"name":             fmt.Sprintf("repo-%d", i),
				"full_name":        fmt.Sprintf("octocat/repo-%d", i),
				"stargazers_count": 42,
				"forks_count":      10,
				"watchers_count":   42,
			})
		}
		if repos == nil {
			repos = []map[string]any{}
		}
		writeJSON(t, w, repos)
	})

	mux.HandleFunc("/users/octocat/events", func(w http.ResponseWriter, r *http.Request) {
		if f.eventsStatus != http.StatusOK {
			http.Error(w, "boom", f.eventsStatus)
			return
		}
		writeJSON(t, w, f.events)
	})

	mux.HandleFunc("/rate_limit", func(w http.ResponseWriter, r *http.Request) {
		if f.rateLimitStatus != http.StatusOK {
			http.Error(w, "boom", f.rateLimitStatus)
			return
		}
		writeJSON(t, w, map[string]any{
			"rate": map[string]any{
				"limit":     f.rateLimit,
				"remaining": f.rateRemaining,
				"reset":     1700000000,
			},
		})
	})

	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	c := NewClient("octocat", "")
	c.baseURL = srv.URL
	return c
}

func TestFetchAllSuccessScenario(t *testing.T) {
	// Profile ok; one repo {42 stars, 10 forks, 42 watchers}; events fail;
	// rate limit ok (5000/4990). Soft event failure must not block Success.
	api := newFakeAPI()
	api.repoCount = 1
	api.eventsStatus = http.StatusInternalServerError

	prev := State{Events: []Event{{ID: "evt_prev"}}}
	state := newTestClient(t, api).FetchAll(context.Background(), prev)

	assert.True(t, state.Status.IsSuccess())
	assert.Equal(t, 42, state.Stats.TotalStars)
	assert.Equal(t, 10, state.Stats.TotalForks)
	assert.Equal(t, 1, state.Stats.TotalRepos)
	assert.Equal(t, 4990, state.RateLimit.Remaining)
	// Events unchanged from input.
	require.Len(t, state.Events, 1)
	assert.Equal(t, "evt_prev", state.Events[0].ID)
	require.NotNil(t, state.LastUpdated)
	require.NotNil(t, state.Profile)
	assert.Equal(t, "octocat", state.Profile.Login)
}

func TestFetchAllProfileFailureIsHard(t *testing.T) {
	api := newFakeAPI()
	api.profileStatus = http.StatusServiceUnavailable

	prev := State{
		Profile: &Profile{Login: "stale"},
		Repos:   []Repo{{Name: "kept"}},
		Events:  []Event{{ID: "kept"}},
	}
	state := newTestClient(t, api).FetchAll(context.Background(), prev)

	require.True(t, state.Status.IsError())
	assert.Contains(t, state.Status.Reason(), "profile fetch failed")
	// Stale-but-valid: everything from prev survives.
	assert.Equal(t, "stale", state.Profile.Login)
	assert.Equal(t, "kept", state.Repos[0].Name)
	assert.Equal(t, "kept", state.Events[0].ID)
	assert.Nil(t, state.LastUpdated)
}

func TestFetchAllReposFailureKeepsFreshProfile(t *testing.T) {
	api := newFakeAPI()
	api.reposStatus = http.StatusBadGateway

	prev := State{Profile: &Profile{Login: "stale"}, Repos: []Repo{{Name: "kept"}}}
	state := newTestClient(t, api).FetchAll(context.Background(), prev)

	require.True(t, state.Status.IsError())
	assert.Contains(t, state.Status.Reason(), "repos fetch failed")
	// Profile was fetched before the failure and is kept.
	assert.Equal(t, "octocat", state.Profile.Login)
	assert.Equal(t, "kept", state.Repos[0].Name)
}

func TestFetchAllRateLimitFailureIsSoft(t *testing.T) {
	api := newFakeAPI()
	api.repoCount = 1
	api.rateLimitStatus = http.StatusForbidden

	prev := State{RateLimit: RateLimit{Limit: 60, Remaining: 33}}
	state := newTestClient(t, api).FetchAll(context.Background(), prev)

	assert.True(t, state.Status.IsSuccess())
	assert.Equal(t, 33, state.RateLimit.Remaining)
}

func TestFetchReposCapsAtMaxRepos(t *testing.T) {
	// 250 available: exactly 200 retained, never crossing the cap.
	api := newFakeAPI()
	api.repoCount = 250

	state := newTestClient(t, api).FetchAll(context.Background(), State{})

	assert.True(t, state.Status.IsSuccess())
	assert.Len(t, state.Repos, maxRepos)
	assert.Equal(t, maxRepos, state.Stats.TotalRepos)
}

func TestFetchReposStopsOnEmptyPage(t *testing.T) {
	api := newFakeAPI()
	api.repoCount = 120

	state := newTestClient(t, api).FetchAll(context.Background(), State{})

	assert.Len(t, state.Repos, 120)
	// Pages 1 and 2 have content; page 2 is short so pagination stops there.
	assert.Equal(t, []int{1, 2}, api.repoPages)
}

func TestFetchEventsIsNewSemantics(t *testing.T) {
	api := newFakeAPI()
	api.repoCount = 1
	api.events = []map[string]any{
		{"id": "evt_1", "type": "PushEvent", "repo": map[string]any{"name": "octocat/hello"}, "created_at": "2026-08-30T12:00:00Z"},
		{"id": "evt_2", "type": "WatchEvent", "repo": map[string]any{"name": "octocat/hello"}, "created_at": "2026-08-30T13:00:00Z"},
	}

	prev := State{Events: []Event{{ID: "evt_1"}}}
	state := newTestClient(t, api).FetchAll(context.Background(), prev)

	require.Len(t, state.Events, 2)
	assert.Equal(t, "evt_1", state.Events[0].ID)
	assert.False(t, state.Events[0].IsNew)
	assert.Equal(t, "evt_2", state.Events[1].ID)
	assert.True(t, state.Events[1].IsNew)
}

func TestFetchEventsSkipsMalformedEntries(t *testing.T) {
	api := newFakeAPI()
	api.repoCount = 1
	api.events = []map[string]any{
		{"id": "", "type": "PushEvent", "repo": map[string]any{"name": "x"}, "created_at": "2026-08-30T12:00:00Z"},
		{"id": "ok", "type": "PushEvent", "repo": map[string]any{"name": "x"}, "created_at": "2026-08-30T12:00:00Z"},
	}

	state := newTestClient(t, api).FetchAll(context.Background(), State{})

	require.Len(t, state.Events, 1)
	assert.Equal(t, "ok", state.Events[0].ID)
}

func TestFetchAllDoesNotMutatePrev(t *testing.T) {
	api := newFakeAPI()
	api.repoCount = 1

	prev := State{Repos: []Repo{{Name: "original"}}, Status: StatusIdle}
	_ = newTestClient(t, api).FetchAll(context.Background(), prev)

	assert.Equal(t, "original", prev.Repos[0].Name)
	assert.Equal(t, StatusIdle, prev.Status)
}

func TestClientSendsAuthHeaderWhenTokenSet(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login":"octocat"}`)
	}))
	defer srv.Close()

	c := NewClient("octocat", "ghp_secret")
	c.baseURL = srv.URL
	_, err := c.fetchProfile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer ghp_secret", gotAuth)
}
