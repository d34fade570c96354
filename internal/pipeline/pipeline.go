// Package pipeline wraps display controller apply calls with the configured
// hook launches.
package pipeline

import (
	"context"
	"fmt"

	"github.com/randrctl/randrctl/internal/config"
	"github.com/randrctl/randrctl/internal/profile"
	"github.com/sirupsen/logrus"
)

type DisplayController interface {
	Apply(ctx context.Context, p *profile.Profile) error
}

type HookRunner interface {
	Run(command, profileName, applyErr string)
}

type Notifier interface {
	NotifyProfileApplied(p *profile.Profile) error
}

type Pipeline struct {
	controller DisplayController
	runner     HookRunner
	hooks      *config.HooksSection
	notifier   Notifier
}

func New(controller DisplayController, runner HookRunner, hooks *config.HooksSection, notifier Notifier) *Pipeline {
	return &Pipeline{
		controller: controller,
		runner:     runner,
		hooks:      hooks,
		notifier:   notifier,
	}
}

// Apply fires the prior hook, invokes the controller, and fires the post or
// post-fail hook depending on the outcome. The controller error is always
// the one returned; hook launches can never mask it.
func (p *Pipeline) Apply(ctx context.Context, prof *profile.Profile) error {
	p.runner.Run(p.hooks.Prior(), prof.Name, "")

	if err := p.controller.Apply(ctx, prof); err != nil {
		p.runner.Run(p.hooks.Fail(), prof.Name, err.Error())
		return fmt.Errorf("cant apply profile %s: %w", prof.Name, err)
	}

	p.runner.Run(p.hooks.Post(), prof.Name, "")

	if p.notifier != nil {
		if err := p.notifier.NotifyProfileApplied(prof); err != nil {
			logrus.WithError(err).Debug("Cant send notification")
		}
	}
	return nil
}
