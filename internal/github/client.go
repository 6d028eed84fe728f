package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hubdeck/hubdeck/internal/logger"
)

const (
	defaultBaseURL = "https://api.github.com"

	// Repository pagination limits. Retention stops at exactly
	// maxRepos even mid-page; maxPages bounds the scan regardless.
	reposPerPage = 100
	maxRepos     = 200
	maxPages     = 10

	// eventsPerPage bounds the activity feed fetch.
	eventsPerPage = 50

	requestTimeout = 20 * time.Second
)

// Client performs one fetch cycle against the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	token      string
}

// NewClient creates a client for the given account. An empty token is
// valid; requests are then unauthenticated at the lower rate limit.
func NewClient(username, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		username:   username,
		token:      token,
	}
}

// FetchAll runs one fetch cycle and returns the next state. It never
// returns an error: hard failures (profile, repos) end the cycle with an
// Error status and leave not-yet-overwritten fields from prev intact; soft
// failures (events, rate limit) are logged and keep the previous values.
func (c *Client) FetchAll(ctx context.Context, prev State) State {
	state := prev.Clone()
	state.Status = StatusFetching

	logger.Info().Str("user", c.username).Msg("fetching GitHub data")

	profile, err := c.fetchProfile(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("profile fetch failed")
		state.Status = StatusError(fmt.Sprintf("profile fetch failed: %v", err))
		return state
	}
	state.Profile = profile

	repos, err := c.fetchRepos(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("repos fetch failed")
		state.Status = StatusError(fmt.Sprintf("repos fetch failed: %v", err))
		return state
	}
	state.Repos = repos

	// Soft step: a failed events fetch keeps the previous feed.
	prevIDs := make(map[string]struct{}, len(prev.Events))
	for _, e := range prev.Events {
		prevIDs[e.ID] = struct{}{}
	}
	if events, err := c.fetchEvents(ctx, prevIDs); err != nil {
		logger.Warn().Err(err).Msg("events fetch failed, keeping previous feed")
	} else {
		state.Events = events
	}

	// Soft step: a failed rate-limit fetch keeps the previous snapshot.
	if rateLimit, err := c.fetchRateLimit(ctx); err != nil {
		logger.Warn().Err(err).Msg("rate limit fetch failed")
	} else {
		state.RateLimit = rateLimit
	}

	state.ComputeStats()
	now := time.Now().UTC()
	state.LastUpdated = &now
	state.Status = StatusSuccess

	logger.Info().
		Int("repos", state.Stats.TotalRepos).
		Int("stars", state.Stats.TotalStars).
		Msg("GitHub fetch complete")

	return state
}

func (c *Client) fetchProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	path := fmt.Sprintf("/users/%s", url.PathEscape(c.username))
	if err := c.get(ctx, path, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) fetchRepos(ctx context.Context) ([]Repo, error) {
	var all []Repo
	for page := 1; page <= maxPages; page++ {
		path := fmt.Sprintf("/users/%s/repos?per_page=%d&page=%d",
			url.PathEscape(c.username), reposPerPage, page)

		var repos []Repo
		if err := c.get(ctx, path, &repos); err != nil {
			return nil, err
		}
		if len(repos) == 0 {
			break
		}

		for _, r := range repos {
			all = append(all, r)
			if len(all) >= maxRepos {
				return all, nil
			}
		}
	}
	return all, nil
}

// rawEvent mirrors the /users/{user}/events payload shape.
type rawEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) fetchEvents(ctx context.Context, prevIDs map[string]struct{}) ([]Event, error) {
	path := fmt.Sprintf("/users/%s/events?per_page=%d",
		url.PathEscape(c.username), eventsPerPage)

	var raw []rawEvent
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(raw))
	for _, e := range raw {
		if e.ID == "" || e.Type == "" || e.Repo.Name == "" {
			continue
		}
		_, seen := prevIDs[e.ID]
		events = append(events, Event{
			ID:        e.ID,
			Type:      EventType(e.Type),
			RepoName:  e.Repo.Name,
			CreatedAt: e.CreatedAt,
			IsNew:     !seen,
		})
	}
	return events, nil
}

// rateLimitResponse mirrors the /rate_limit payload's core window.
type rateLimitResponse struct {
	Rate struct {
		Limit     int   `json:"limit"`
		Remaining int   `json:"remaining"`
		Reset     int64 `json:"reset"`
	} `json:"rate"`
}

func (c *Client) fetchRateLimit(ctx context.Context) (RateLimit, error) {
	var resp rateLimitResponse
	if err := c.get(ctx, "/rate_limit", &resp); err != nil {
		return RateLimit{}, err
	}

	reset := time.Unix(resp.Rate.Reset, 0).UTC()
	return RateLimit{
		Limit:     resp.Rate.Limit,
		Remaining: resp.Rate.Remaining,
		ResetAt:   &reset,
	}, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "hubdeck")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("GET %s: %s: %s", path, resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
