// Package signal provides signal handling functionality.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// ManualTrigger is fired on SIGUSR1 to force a profile re-evaluation.
type ManualTrigger interface {
	RunOnce(context.Context) error
}

type Handler struct {
	sigChan chan os.Signal
	cancel  context.CancelCauseFunc
	trigger ManualTrigger
}

func NewHandler(cancel context.CancelCauseFunc, trigger ManualTrigger) *Handler {
	return &Handler{
		sigChan: make(chan os.Signal, 1),
		cancel:  cancel,
		trigger: trigger,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	signal.Notify(h.sigChan, syscall.SIGUSR1, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(h.sigChan)
	logrus.Debug("Signal notifications registered for SIGUSR1, SIGTERM, SIGINT, SIGHUP")

	for {
		select {
		case sig := <-h.sigChan:
			logrus.WithField("signal", sig).Debug("Signal received")
			switch sig {
			case syscall.SIGUSR1:
				logrus.Info("Received SIGUSR1, triggering manual update")
				if err := h.trigger.RunOnce(ctx); err != nil {
					logrus.WithError(err).Error("Manual update failed, service will keep running")
				}
			case syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP:
				logrus.WithField("signal", sig).Info("Received termination signal, shutting down gracefully")
				h.cancel(context.Canceled)
				return context.Canceled
			}
		case <-ctx.Done():
			logrus.Debug("Signal handler context done, exiting")
			return context.Cause(ctx)
		}
	}
}
