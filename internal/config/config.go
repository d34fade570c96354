// Package config handles loading and overlaying of TOML configuration files
// from the resolved home directories.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/randrctl/randrctl/internal/utils"
	"github.com/sirupsen/logrus"
)

// Default matching weights. The relative order EDID > supports > prefers >
// name-only is what matters; the values are tunable via the scoring section.
const (
	DefaultEdidWeight     = 100
	DefaultSupportsWeight = 50
	DefaultPrefersWeight  = 25
	DefaultNameWeight     = 1

	DefaultNotificationTimeoutMs = 3000
	DefaultUpdateDebounceTimerMs = 500
)

type Config struct {
	Hooks         *HooksSection         `toml:"hooks"`
	Scoring       *ScoringSection       `toml:"scoring"`
	Notifications *NotificationsSection `toml:"notifications"`
	Daemon        *DaemonSection        `toml:"daemon"`
}

type HooksSection struct {
	PriorSwitch *string `toml:"prior_switch"`
	PostSwitch  *string `toml:"post_switch"`
	PostFail    *string `toml:"post_fail"`
}

type ScoringSection struct {
	EdidMatch     *int `toml:"edid_match"`
	SupportsMatch *int `toml:"supports_match"`
	PrefersMatch  *int `toml:"prefers_match"`
	NameMatch     *int `toml:"name_match"`
}

type NotificationsSection struct {
	Disabled  *bool  `toml:"disabled"`
	TimeoutMs *int32 `toml:"timeout_ms"`
}

type DaemonSection struct {
	UpdateDebounceTimerMs *int `toml:"update_debounce_timer_ms"`
}

// Load reads every given config file and overlays them with a shallow
// top-level merge: files come in preference order, and a section defined by a
// more preferred file replaces the whole section from any less preferred one.
// A file that fails to parse is logged and skipped.
func Load(configFiles []string) (*Config, error) {
	merged := &Config{}

	// iterate least preferred first so preferred sections win
	for i := len(configFiles) - 1; i >= 0; i-- {
		path := configFiles[i]
		var cfg Config
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Error("Error reading configuration file, skipping")
			continue
		}
		merged.overlay(&cfg, md)
		logrus.WithField("path", path).Debug("Read configuration")
	}

	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return merged, nil
}

// overlay replaces whole sections, never individual fields. toml.MetaData
// tells defined sections apart from absent ones.
func (c *Config) overlay(other *Config, md toml.MetaData) {
	if md.IsDefined("hooks") {
		c.Hooks = other.Hooks
	}
	if md.IsDefined("scoring") {
		c.Scoring = other.Scoring
	}
	if md.IsDefined("notifications") {
		c.Notifications = other.Notifications
	}
	if md.IsDefined("daemon") {
		c.Daemon = other.Daemon
	}
}

func (c *Config) Validate() error {
	if c.Hooks == nil {
		c.Hooks = &HooksSection{}
	}

	if c.Scoring == nil {
		c.Scoring = &ScoringSection{}
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring section validation failed: %w", err)
	}

	if c.Notifications == nil {
		c.Notifications = &NotificationsSection{}
	}
	c.Notifications.Validate()

	if c.Daemon == nil {
		c.Daemon = &DaemonSection{}
	}
	c.Daemon.Validate()

	return nil
}

func (s *ScoringSection) Validate() error {
	if s.EdidMatch == nil {
		s.EdidMatch = utils.IntPtr(DefaultEdidWeight)
	}
	if s.SupportsMatch == nil {
		s.SupportsMatch = utils.IntPtr(DefaultSupportsWeight)
	}
	if s.PrefersMatch == nil {
		s.PrefersMatch = utils.IntPtr(DefaultPrefersWeight)
	}
	if s.NameMatch == nil {
		s.NameMatch = utils.IntPtr(DefaultNameWeight)
	}

	for _, weight := range []int{*s.EdidMatch, *s.SupportsMatch, *s.PrefersMatch, *s.NameMatch} {
		if weight < 1 {
			return errors.New("scoring section validation failed, weights need to be >= 1")
		}
	}
	return nil
}

func (n *NotificationsSection) Validate() {
	if n.Disabled == nil {
		n.Disabled = utils.BoolPtr(false)
	}
	if n.TimeoutMs == nil {
		n.TimeoutMs = utils.JustPtr(int32(DefaultNotificationTimeoutMs))
	}
}

func (d *DaemonSection) Validate() {
	if d.UpdateDebounceTimerMs == nil {
		d.UpdateDebounceTimerMs = utils.IntPtr(DefaultUpdateDebounceTimerMs)
	}
}

// Prior returns the prior-switch hook command, empty when unset.
func (h *HooksSection) Prior() string {
	if h == nil || h.PriorSwitch == nil {
		return ""
	}
	return *h.PriorSwitch
}

// Post returns the post-switch hook command, empty when unset.
func (h *HooksSection) Post() string {
	if h == nil || h.PostSwitch == nil {
		return ""
	}
	return *h.PostSwitch
}

// Fail returns the post-fail hook command, empty when unset.
func (h *HooksSection) Fail() string {
	if h == nil || h.PostFail == nil {
		return ""
	}
	return *h.PostFail
}
