// Package daemon runs the long-lived auto-switch loop: it re-evaluates the
// profile match whenever the homes change on disk or SIGUSR1 arrives.
package daemon

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

type Switcher interface {
	SwitchAuto(ctx context.Context) error
}

type Watcher interface {
	Listen() <-chan interface{}
}

type Service struct {
	switcher Switcher
	watcher  Watcher
}

func NewService(switcher Switcher, watcher Watcher) *Service {
	return &Service{switcher: switcher, watcher: watcher}
}

// RunOnce performs a single auto switch. Apply failures are surfaced but do
// not stop the daemon; the signal handler and the event loop both log and
// keep going.
func (s *Service) RunOnce(ctx context.Context) error {
	return s.switcher.SwitchAuto(ctx)
}

func (s *Service) Run(ctx context.Context) error {
	if err := s.RunOnce(ctx); err != nil {
		logrus.WithError(err).Error("Initial auto switch failed")
	}

	events := s.watcher.Listen()
	logrus.Info("Listening for home directory changes...")

	for {
		select {
		case _, ok := <-events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			logrus.Debug("Home directory change received")
			if err := s.RunOnce(ctx); err != nil {
				logrus.WithError(err).Error("Auto switch failed, daemon keeps running")
			}
		case <-ctx.Done():
			logrus.Debug("Context cancelled, shutting daemon down")
			return context.Cause(ctx)
		}
	}
}
