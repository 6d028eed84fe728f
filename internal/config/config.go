// Package config loads hubdeck's runtime configuration from environment
// variables. There is no config file: the tool is designed to run on an
// appliance-style device where the environment is the contract.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hubdeck/hubdeck/internal/errors"
	"github.com/spf13/viper"
)

const (
	// EnvToken is the GitHub bearer token variable. Optional: absence
	// lowers rate limits but does not fail startup.
	EnvToken = "GITHUB_TOKEN"
	// EnvUser is the GitHub username variable. Required.
	EnvUser = "GITHUB_USER"
	// EnvRefreshSecs overrides the GitHub refresh interval in seconds.
	EnvRefreshSecs = "HUBDECK_REFRESH_SECS"
	// EnvReducedMotion disables animations when set to "true" or "1".
	EnvReducedMotion = "HUBDECK_REDUCED_MOTION"

	// DefaultRefreshSecs is the GitHub refresh interval when unset.
	DefaultRefreshSecs = 60

	// CacheFileName is the cache file name under the config directory.
	CacheFileName = "cache.json"
	// AppDirName is the per-app directory under the user config dir.
	AppDirName = "hubdeck"
	// FallbackCacheFile is used when no user config dir is available.
	FallbackCacheFile = "hubdeck-cache.json"
)

// Config is the resolved runtime configuration.
type Config struct {
	// GithubToken is the optional bearer credential.
	GithubToken string
	// GithubUser is the account whose data is displayed.
	GithubUser string
	// RefreshInterval is the GitHub poller cadence.
	RefreshInterval time.Duration
	// ReducedMotion disables the animation clock's visible effects.
	ReducedMotion bool
	// CachePath is where the GitHub snapshot is persisted.
	CachePath string
}

// Load reads configuration from the environment.
// A missing GITHUB_USER is the only fatal condition.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(EnvRefreshSecs, DefaultRefreshSecs)

	user := v.GetString(EnvUser)
	if user == "" {
		return nil, errors.New(errors.ErrConfig,
			"GITHUB_USER environment variable is required",
			"Set it to the GitHub username to monitor, e.g. export GITHUB_USER=octocat")
	}

	refreshSecs := v.GetInt(EnvRefreshSecs)
	if refreshSecs <= 0 {
		refreshSecs = DefaultRefreshSecs
	}

	return &Config{
		GithubToken:     v.GetString(EnvToken),
		GithubUser:      user,
		RefreshInterval: time.Duration(refreshSecs) * time.Second,
		ReducedMotion:   truthy(v.GetString(EnvReducedMotion)),
		CachePath:       CachePath(),
	}, nil
}

// HasToken reports whether a bearer credential is configured.
func (c *Config) HasToken() bool {
	return c.GithubToken != ""
}

// CachePath returns the platform cache file location, preferring the user
// config directory and falling back to a relative path.
func CachePath() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		appDir := filepath.Join(configDir, AppDirName)
		if err := os.MkdirAll(appDir, 0o755); err == nil {
			return filepath.Join(appDir, CacheFileName)
		}
	}
	return FallbackCacheFile
}

// truthy interprets the reduced-motion flag: "true" and "1" enable it.
func truthy(s string) bool {
	return s == "true" || s == "1"
}
