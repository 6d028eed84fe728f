// Package github owns the GitHub side of hubdeck: the REST client that
// performs one fetch cycle, the versioned JSON cache, and the background
// poller that is the sole writer of the account state.
package github

import (
	"sort"
	"time"
)

// Profile is the monitored account's user profile.
type Profile struct {
	Login       string     `json:"login"`
	Name        string     `json:"name,omitempty"`
	AvatarURL   string     `json:"avatar_url"`
	Bio         string     `json:"bio,omitempty"`
	PublicRepos int        `json:"public_repos"`
	PublicGists int        `json:"public_gists"`
	Followers   int        `json:"followers"`
	Following   int        `json:"following"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Repo is a single repository record.
type Repo struct {
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Description string     `json:"description,omitempty"`
	HTMLURL     string     `json:"html_url"`
	Stars       int        `json:"stargazers_count"`
	Forks       int        `json:"forks_count"`
	Watchers    int        `json:"watchers_count"`
	Language    string     `json:"language,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	PushedAt    *time.Time `json:"pushed_at,omitempty"`
	OpenIssues  int        `json:"open_issues_count"`
	Fork        bool       `json:"fork"`
}

// EventType is a GitHub activity event type name ("PushEvent" etc.).
// Unrecognized names render with the fallback icon and verb.
type EventType string

// Event types surfaced in the activity feed.
const (
	EventPush              EventType = "PushEvent"
	EventCreate            EventType = "CreateEvent"
	EventDelete            EventType = "DeleteEvent"
	EventIssues            EventType = "IssuesEvent"
	EventIssueComment      EventType = "IssueCommentEvent"
	EventPullRequest       EventType = "PullRequestEvent"
	EventPullRequestReview EventType = "PullRequestReviewEvent"
	EventWatch             EventType = "WatchEvent"
	EventFork              EventType = "ForkEvent"
	EventRelease           EventType = "ReleaseEvent"
	EventPublic            EventType = "PublicEvent"
	EventMember            EventType = "MemberEvent"
	EventGollum            EventType = "GollumEvent"
	EventCommitComment     EventType = "CommitCommentEvent"
)

var eventIcons = map[EventType]string{
	EventPush:              "[^]",
	EventCreate:            "[+]",
	EventDelete:            "[-]",
	EventIssues:            "[!]",
	EventIssueComment:      "[#]",
	EventPullRequest:       "[~]",
	EventPullRequestReview: "[.]",
	EventWatch:             "[*]",
	EventFork:              "[Y]",
	EventRelease:           "[>]",
	EventPublic:            "[@]",
	EventMember:            "[&]",
	EventGollum:            "[W]",
	EventCommitComment:     "[C]",
}

var eventVerbs = map[EventType]string{
	EventPush:              "pushed to",
	EventCreate:            "created",
	EventDelete:            "deleted",
	EventIssues:            "opened issue in",
	EventIssueComment:      "commented on",
	EventPullRequest:       "opened PR in",
	EventPullRequestReview: "reviewed PR in",
	EventWatch:             "starred",
	EventFork:              "forked",
	EventRelease:           "released",
	EventPublic:            "made public",
	EventMember:            "added member to",
	EventGollum:            "updated wiki in",
	EventCommitComment:     "commented on commit in",
}

// Icon returns the two-character feed glyph for the event type.
func (t EventType) Icon() string {
	if icon, ok := eventIcons[t]; ok {
		return icon
	}
	return "[?]"
}

// Verb returns the activity phrase for the event type.
func (t EventType) Verb() string {
	if verb, ok := eventVerbs[t]; ok {
		return verb
	}
	return "did something in"
}

// Event is one entry in the account's activity feed. IsNew marks events not
// seen in the previous successful fetch.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"event_type"`
	RepoName  string    `json:"repo_name"`
	CreatedAt time.Time `json:"created_at"`
	IsNew     bool      `json:"is_new"`
}

// RateLimit is the API rate-limit snapshot. Advisory only: it is displayed
// but never gates a fetch cycle.
type RateLimit struct {
	Limit     int        `json:"limit"`
	Remaining int        `json:"remaining"`
	ResetAt   *time.Time `json:"reset_at,omitempty"`
}

// UsagePercent returns how much of the rate window has been consumed.
func (r RateLimit) UsagePercent() float64 {
	if r.Limit == 0 {
		return 0
	}
	return float64(r.Limit-r.Remaining) / float64(r.Limit) * 100
}

// IsLow reports whether the remaining budget is nearly exhausted.
func (r RateLimit) IsLow() bool {
	return r.Remaining < 10
}

// Stats are aggregates over the current repository collection. They are
// always recomputed from the collection, never mutated incrementally.
type Stats struct {
	TotalStars    int `json:"total_stars"`
	TotalForks    int `json:"total_forks"`
	TotalRepos    int `json:"total_repos"`
	TotalWatchers int `json:"total_watchers"`
}

// statusKind discriminates the Status sum type.
type statusKind int

const (
	statusIdle statusKind = iota
	statusFetching
	statusSuccess
	statusError
)

// Status is the fetch-cycle status tag: Idle, Fetching, Success, or
// Error with a reason.
type Status struct {
	kind   statusKind
	reason string
}

var (
	// StatusIdle is the zero value: no cycle has run.
	StatusIdle = Status{kind: statusIdle}
	// StatusFetching marks a cycle in progress.
	StatusFetching = Status{kind: statusFetching}
	// StatusSuccess marks a cycle whose hard steps both succeeded.
	StatusSuccess = Status{kind: statusSuccess}
)

// StatusError builds an Error status carrying the failure reason.
func StatusError(reason string) Status {
	return Status{kind: statusError, reason: reason}
}

// IsFetching reports whether a cycle is in progress.
func (s Status) IsFetching() bool { return s.kind == statusFetching }

// IsError reports whether the last cycle hard-failed.
func (s Status) IsError() bool { return s.kind == statusError }

// IsSuccess reports whether the last cycle succeeded.
func (s Status) IsSuccess() bool { return s.kind == statusSuccess }

// Reason returns the error reason, or "" for non-error statuses.
func (s Status) Reason() string { return s.reason }

func (s Status) String() string {
	switch s.kind {
	case statusFetching:
		return "fetching"
	case statusSuccess:
		return "success"
	case statusError:
		return "error: " + s.reason
	default:
		return "idle"
	}
}

// State is the complete GitHub account state. Only the Poller mutates it;
// everyone else works from published snapshots.
type State struct {
	Profile     *Profile
	Repos       []Repo
	Events      []Event
	Stats       Stats
	RateLimit   RateLimit
	LastUpdated *time.Time
	Status      Status
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s State) Clone() State {
	out := s
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	out.Repos = append([]Repo(nil), s.Repos...)
	out.Events = append([]Event(nil), s.Events...)
	if s.LastUpdated != nil {
		t := *s.LastUpdated
		out.LastUpdated = &t
	}
	return out
}

// HasData reports whether anything has ever been fetched or loaded.
func (s State) HasData() bool {
	return s.Profile != nil || len(s.Repos) > 0
}

// ComputeStats recomputes the aggregates from the repository collection.
func (s *State) ComputeStats() {
	stats := Stats{TotalRepos: len(s.Repos)}
	for _, r := range s.Repos {
		stats.TotalStars += r.Stars
		stats.TotalForks += r.Forks
		stats.TotalWatchers += r.Watchers
	}
	s.Stats = stats
}

// TopReposByStars returns up to n non-fork repos, most starred first.
func (s State) TopReposByStars(n int) []Repo {
	var repos []Repo
	for _, r := range s.Repos {
		if !r.Fork {
			repos = append(repos, r)
		}
	}
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Stars > repos[j].Stars
	})
	if len(repos) > n {
		repos = repos[:n]
	}
	return repos
}

// RecentlyPushed returns up to n repos ordered by most recent push.
func (s State) RecentlyPushed(n int) []Repo {
	repos := append([]Repo(nil), s.Repos...)
	sort.SliceStable(repos, func(i, j int) bool {
		ti, tj := repos[i].PushedAt, repos[j].PushedAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
	if len(repos) > n {
		repos = repos[:n]
	}
	return repos
}

// NewEventCount returns how many feed events are new since the previous
// successful fetch.
func (s State) NewEventCount() int {
	count := 0
	for _, e := range s.Events {
		if e.IsNew {
			count++
		}
	}
	return count
}
