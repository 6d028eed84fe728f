package cli

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/hubdeck/hubdeck/internal/config"
	"github.com/hubdeck/hubdeck/internal/dashboard"
	"github.com/hubdeck/hubdeck/internal/errors"
	"github.com/hubdeck/hubdeck/internal/github"
	"github.com/hubdeck/hubdeck/internal/logger"
	"github.com/hubdeck/hubdeck/internal/sysinfo"
)

// systemSampleInterval is the local metrics cadence. Independent of the
// GitHub refresh interval.
const systemSampleInterval = 2 * time.Second

// dashboardCommand wires the pollers to the TUI and runs it until quit.
func dashboardCommand() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTUI,
			"hubdeck needs an interactive terminal",
			"Run it directly in a terminal, not through a pipe or redirect.")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The ring is the only sink while the TUI runs, so info is the floor;
	// otherwise the log page would sit empty.
	ring := logger.NewRing(logger.DefaultRingSize)
	logger.Init(ring, debugFlag, true)

	logger.Info().
		Str("user", cfg.GithubUser).
		Dur("refresh", cfg.RefreshInterval).
		Bool("reduced_motion", cfg.ReducedMotion).
		Msg("starting hubdeck")
	if !cfg.HasToken() {
		logger.Warn().Msg("no GITHUB_TOKEN set, using unauthenticated rate limits")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := github.NewClient(cfg.GithubUser, cfg.GithubToken)
	cache := github.NewCache(cfg.CachePath)
	poller := github.NewPoller(client, cache, cfg.RefreshInterval)

	initial := poller.LoadCachedState()
	githubFeed, commands := poller.Start(ctx, initial)
	systemFeed := sysinfo.Start(ctx, systemSampleInterval)

	model := dashboard.NewModel(githubFeed, systemFeed, commands, ring, cfg.ReducedMotion)
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, runErr := program.Run()

	// Fire and forget; context cancellation ends the loop regardless.
	select {
	case commands <- github.CommandStop:
	default:
	}
	cancel()

	select {
	case <-poller.Done():
	case <-time.After(2 * time.Second):
		logger.Warn().Msg("poller did not stop in time")
	}

	if runErr != nil {
		return errors.WrapWithCode(runErr, errors.ErrTUI,
			"dashboard exited with an error",
			"If the terminal is garbled, run 'reset'.")
	}
	return nil
}
