// Package app provides an application runner wiring all components together.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/randrctl/randrctl/internal/config"
	"github.com/randrctl/randrctl/internal/ctl"
	"github.com/randrctl/randrctl/internal/daemon"
	"github.com/randrctl/randrctl/internal/filewatcher"
	"github.com/randrctl/randrctl/internal/homes"
	"github.com/randrctl/randrctl/internal/hooks"
	"github.com/randrctl/randrctl/internal/matchers"
	"github.com/randrctl/randrctl/internal/notifications"
	"github.com/randrctl/randrctl/internal/pipeline"
	"github.com/randrctl/randrctl/internal/signal"
	"github.com/randrctl/randrctl/internal/store"
	"github.com/randrctl/randrctl/internal/xrandr"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Application struct {
	Ctl   *ctl.RandrCtl
	cfg   *config.Config
	homes []string
}

// New resolves the homes, overlays their configuration, and wires up the
// control surface. An empty candidate list falls back to the defaults.
func New(homeCandidates []string, out io.Writer) (*Application, error) {
	if len(homeCandidates) == 0 {
		homeCandidates = homes.DefaultCandidates()
	}

	validHomes, err := homes.EnsureHomes(homeCandidates)
	if err != nil {
		return nil, fmt.Errorf("cant resolve home directories: %w", err)
	}

	cfg, err := config.Load(homes.ConfigFiles(validHomes))
	if err != nil {
		return nil, fmt.Errorf("cant load configuration: %w", err)
	}

	st := store.New(homes.ProfileDirs(validHomes))
	matcher := matchers.NewMatcher(cfg.Scoring)
	controller := xrandr.New()
	runner := hooks.NewRunner()
	notifier := notifications.NewService(cfg.Notifications)
	pipe := pipeline.New(controller, runner, cfg.Hooks, notifier)

	return &Application{
		Ctl:   ctl.New(st, matcher, pipe, controller, out),
		cfg:   cfg,
		homes: validHomes,
	}, nil
}

// RunDaemon blocks until the context is cancelled, re-running the auto
// switch on home directory changes and on SIGUSR1.
func (a *Application) RunDaemon(ctx context.Context, cancel context.CancelCauseFunc) error {
	watched := append([]string{}, a.homes...)
	watched = append(watched, homes.ProfileDirs(a.homes)...)
	debounce := time.Duration(*a.cfg.Daemon.UpdateDebounceTimerMs) * time.Millisecond

	fswatcher := filewatcher.NewService(watched, debounce)
	svc := daemon.NewService(a.Ctl, fswatcher)
	signalHandler := signal.NewHandler(cancel, svc)

	eg, ctx := errgroup.WithContext(ctx)

	backgroundGoroutines := []struct {
		Fun  func(context.Context) error
		Name string
	}{
		{Fun: signalHandler.Run, Name: "signal handler"},
		{Fun: fswatcher.Run, Name: "filewatcher"},
		{Fun: svc.Run, Name: "daemon service"},
	}
	for _, bg := range backgroundGoroutines {
		bg := bg
		eg.Go(func() error {
			logrus.WithField("name", bg.Name).Debug("Starting")
			if err := bg.Fun(ctx); err != nil {
				return fmt.Errorf("%s failed: %w", bg.Name, err)
			}
			logrus.WithField("name", bg.Name).Debug("Finished")
			return nil
		})
	}

	eg.Go(func() error {
		<-ctx.Done()
		logrus.Debug("Context cancelled, shutting down")
		return context.Cause(ctx)
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("main eg failed: %w", err)
	}

	logrus.Info("Shutdown complete")
	return nil
}
