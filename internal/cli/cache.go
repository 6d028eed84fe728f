package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubdeck/hubdeck/internal/config"
	"github.com/hubdeck/hubdeck/internal/github"
)

// cacheCmd groups snapshot cache maintenance.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the GitHub snapshot cache",
	Long: `Inspect or remove the cached GitHub snapshot.

The cache lets hubdeck show data immediately on startup instead of
waiting for the first fetch. It is refreshed after every fetch cycle.

Examples:
  hubdeck cache
  hubdeck cache clear`,
	RunE: runCacheInfo,
}

// cacheClearCmd removes the snapshot file.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cached snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := github.NewCache(config.CachePath())
		if !cache.Exists() {
			fmt.Println("No cache to clear.")
			return nil
		}
		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", cache.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// runCacheInfo prints where the cache lives and whether it exists.
func runCacheInfo(cmd *cobra.Command, args []string) error {
	cache := github.NewCache(config.CachePath())
	fmt.Printf("Cache file: %s\n", cache.Path())
	if cache.Exists() {
		fmt.Println("Status: present")
	} else {
		fmt.Println("Status: not created yet")
	}
	return nil
}
