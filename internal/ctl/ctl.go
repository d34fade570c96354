// Package ctl ties the store, the matcher, and the display pipeline together
// and exposes the operations the CLI runs.
package ctl

import (
	"context"
	"fmt"
	"io"

	"github.com/randrctl/randrctl/internal/matchers"
	"github.com/randrctl/randrctl/internal/profile"
	"github.com/randrctl/randrctl/internal/store"
	"github.com/randrctl/randrctl/internal/xrandr"
	"github.com/sirupsen/logrus"
)

type DisplayController interface {
	GetConnectedOutputs(ctx context.Context) (xrandr.Outputs, error)
}

type Applier interface {
	Apply(ctx context.Context, p *profile.Profile) error
}

type RandrCtl struct {
	store      *store.Store
	matcher    *matchers.Matcher
	pipeline   Applier
	controller DisplayController
	out        io.Writer
}

func New(st *store.Store, matcher *matchers.Matcher, pipeline Applier,
	controller DisplayController, out io.Writer,
) *RandrCtl {
	return &RandrCtl{
		store:      st,
		matcher:    matcher,
		pipeline:   pipeline,
		controller: controller,
		out:        out,
	}
}

// SwitchTo applies the named profile unconditionally.
func (c *RandrCtl) SwitchTo(ctx context.Context, name string) error {
	p, err := c.store.ReadOne(name)
	if err != nil {
		return fmt.Errorf("cant load profile %s: %w", name, err)
	}
	return c.pipeline.Apply(ctx, p)
}

// SwitchAuto finds the best matching profile for the connected outputs and
// applies it. Finding nothing is not an error: a warning is logged and no
// display mutation is attempted.
func (c *RandrCtl) SwitchAuto(ctx context.Context) error {
	profiles, err := c.store.ReadAll()
	if err != nil {
		return fmt.Errorf("cant load profiles: %w", err)
	}
	connected, err := c.controller.GetConnectedOutputs(ctx)
	if err != nil {
		return fmt.Errorf("cant query connected outputs: %w", err)
	}

	best := c.matcher.FindBest(profiles, connected)
	if best == nil {
		logrus.Warn("No matching profile found")
		return nil
	}

	logrus.WithField("profile", best.Name).Info("Matched profile")
	return c.pipeline.Apply(ctx, best)
}

type DumpOptions struct {
	ToFile               bool
	IncludeEdidRule      bool
	IncludeSupportsRule  bool
	IncludePreferredRule bool
	IncludeRefreshRate   bool
	Priority             int
	JSON                 bool
}

// DumpCurrent captures the live output state as a named profile and either
// writes it to the preferred home or prints it.
func (c *RandrCtl) DumpCurrent(ctx context.Context, name string, opts DumpOptions) error {
	connected, err := c.controller.GetConnectedOutputs(ctx)
	if err != nil {
		return fmt.Errorf("cant query connected outputs: %w", err)
	}

	p := store.FromConnected(connected, name)
	if opts.Priority != 0 {
		p.Priority = opts.Priority
	}
	stripRules(p, opts)
	if !opts.IncludeRefreshRate {
		for _, output := range p.Outputs {
			output.Rate = nil
		}
	}

	if opts.ToFile {
		return c.store.Write(p)
	}
	return c.store.Encode(c.out, p, opts.JSON)
}

func stripRules(p *profile.Profile, opts DumpOptions) {
	if !opts.IncludeEdidRule && !opts.IncludeSupportsRule && !opts.IncludePreferredRule {
		p.Rules = nil
		return
	}
	for _, rule := range p.Rules {
		if !opts.IncludeEdidRule {
			rule.EDID = nil
		}
		if !opts.IncludeSupportsRule {
			rule.Supports = nil
		}
		if !opts.IncludePreferredRule {
			rule.Prefers = nil
		}
	}
}

// Print writes the named profile to the configured output.
func (c *RandrCtl) Print(name string, jsonOut bool) error {
	p, err := c.store.ReadOne(name)
	if err != nil {
		return fmt.Errorf("cant load profile %s: %w", name, err)
	}
	return c.store.Encode(c.out, p, jsonOut)
}

// ListAll prints the known profile names.
func (c *RandrCtl) ListAll() error {
	profiles, err := c.store.ReadAll()
	if err != nil {
		return fmt.Errorf("cant load profiles: %w", err)
	}
	for _, p := range profiles {
		if _, err := fmt.Fprintln(c.out, p.Name); err != nil {
			return fmt.Errorf("cant write listing: %w", err)
		}
	}
	return nil
}

// ListAllLong prints profile names along with their output specs.
func (c *RandrCtl) ListAllLong() error {
	profiles, err := c.store.ReadAll()
	if err != nil {
		return fmt.Errorf("cant load profiles: %w", err)
	}
	for _, p := range profiles {
		if _, err := fmt.Fprintln(c.out, p.Name); err != nil {
			return fmt.Errorf("cant write listing: %w", err)
		}
		for _, output := range p.Outputs {
			if _, err := fmt.Fprintf(c.out, "  %s\n", output); err != nil {
				return fmt.Errorf("cant write listing: %w", err)
			}
		}
	}
	return nil
}

// ListAllScored prints eligible profiles with their scores against the
// currently connected outputs, best first.
func (c *RandrCtl) ListAllScored(ctx context.Context) error {
	profiles, err := c.store.ReadAll()
	if err != nil {
		return fmt.Errorf("cant load profiles: %w", err)
	}
	connected, err := c.controller.GetConnectedOutputs(ctx)
	if err != nil {
		return fmt.Errorf("cant query connected outputs: %w", err)
	}

	for _, result := range c.matcher.Match(profiles, connected) {
		if _, err := fmt.Fprintf(c.out, "%s %d\n", result.Profile.Name, result.Score); err != nil {
			return fmt.Errorf("cant write listing: %w", err)
		}
	}
	return nil
}
