// Package notifications provides desktop notifications through dbus
package notifications

import (
	"fmt"

	"github.com/TheCreeper/go-notify"
	"github.com/randrctl/randrctl/internal/config"
	"github.com/randrctl/randrctl/internal/profile"
	"github.com/sirupsen/logrus"
)

type Service struct {
	config *config.NotificationsSection
	hints  map[string]interface{}
}

func NewService(cfg *config.NotificationsSection) *Service {
	return &Service{
		config: cfg,
		hints: map[string]interface{}{
			"synchronous":       "randrctl",
			"x-dunst-stack-tag": "randrctl",
		},
	}
}

func (s *Service) NotifyProfileApplied(p *profile.Profile) error {
	if *s.config.Disabled {
		logrus.Debug("notifications are not enabled, not sending")
		return nil
	}

	summary := "Display profile `" + p.Name + "` applied"
	body := fmt.Sprintf("%d output(s) configured", len(p.Outputs))
	ntf := notify.NewNotification(summary, body)
	ntf.Timeout = *s.config.TimeoutMs
	ntf.Hints = s.hints

	if _, err := ntf.Show(); err != nil {
		return fmt.Errorf("cant send notification for %s: %w", p.Name, err)
	}
	return nil
}
