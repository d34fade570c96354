// Package filewatcher watches the home directories and issues a debounced
// event when profiles or configuration change on disk.
package filewatcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/randrctl/randrctl/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	paths     []string
	debounce  time.Duration
	events    chan interface{}
	debouncer *utils.Debouncer
}

// NewService watches the given directories. Missing paths are skipped with a
// warning instead of failing the watcher.
func NewService(paths []string, debounce time.Duration) *Service {
	return &Service{
		paths:     paths,
		debounce:  debounce,
		events:    make(chan interface{}, 1),
		debouncer: utils.NewDebouncer(),
	}
}

func (s *Service) Listen() <-chan interface{} {
	return s.events
}

func (s *Service) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cant create watcher: %w", err)
	}

	for _, path := range s.paths {
		if _, err := os.Stat(path); err != nil {
			logrus.WithError(err).WithField("path", path).Warn("Not watching missing path")
			continue
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("cant watch %s: %w", path, err)
		}
		logrus.WithField("path", path).Debug("Added watched path")
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return s.debouncer.Run(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()
		s.debouncer.Cancel()
		logrus.Debug("Context cancelled, shutting watcher down")
		if err := watcher.Close(); err != nil {
			logrus.WithError(err).Error("Cant close watcher on exit")
		}
		return context.Cause(ctx)
	})

	eg.Go(func() error {
		if err := s.runServiceLoop(ctx, watcher); err != nil {
			return fmt.Errorf("cant run service loop: %w", err)
		}
		return nil
	})

	return eg.Wait()
}

func (s *Service) runServiceLoop(ctx context.Context, watcher *fsnotify.Watcher) error {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher channel is closed")
			}
			logrus.WithFields(logrus.Fields{
				"name":      event.Name,
				"operation": event.Op,
			}).Debug("Received filewatcher event")
			s.debouncer.Do(ctx, s.debounce, s.sendEvent)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel is closed")
			}
			if err != nil {
				return fmt.Errorf("watcher error received: %w", err)
			}
		case <-ctx.Done():
			logrus.Debug("Context cancelled, shutting fswatcher down")
			return context.Cause(ctx)
		}
	}
}

func (s *Service) sendEvent(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case s.events <- true:
		return nil
	}
}
