// Package xrandr drives the xrandr binary to query and mutate display state.
package xrandr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/randrctl/randrctl/internal/profile"
	"github.com/randrctl/randrctl/internal/utils"
	"github.com/sirupsen/logrus"
)

type Xrandr struct {
	executable string
}

func New() *Xrandr {
	return &Xrandr{executable: "xrandr"}
}

// GetConnectedOutputs queries the live state of all connected connectors.
// There is no timeout here: a hung X server blocks the whole invocation.
func (x *Xrandr) GetConnectedOutputs(ctx context.Context) (Outputs, error) {
	raw, err := utils.RunCmd(ctx, x.executable, "--query", "--verbose")
	if err != nil {
		return nil, fmt.Errorf("cant query xrandr: %w", err)
	}
	outputs, err := parseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("cant parse xrandr query: %w", err)
	}
	return outputs.Connected(), nil
}

// Apply composes a single xrandr invocation for the whole profile. Connected
// outputs the profile does not mention are switched off.
func (x *Xrandr) Apply(ctx context.Context, p *profile.Profile) error {
	connected, err := x.GetConnectedOutputs(ctx)
	if err != nil {
		return fmt.Errorf("cant list outputs before apply: %w", err)
	}

	args := composeArgs(p, connected)
	logrus.WithFields(logrus.Fields{
		"profile": p.Name,
		"args":    strings.Join(args, " "),
	}).Debug("Invoking xrandr")

	if _, err := utils.RunCmd(ctx, x.executable, args...); err != nil {
		return fmt.Errorf("xrandr apply failed: %w", err)
	}
	return nil
}

func composeArgs(p *profile.Profile, connected Outputs) []string {
	args := []string{}
	inProfile := map[string]bool{}

	for _, spec := range p.Outputs {
		inProfile[spec.Name] = true
		args = append(args, "--output", spec.Name)
		if spec.Mode != "" {
			args = append(args, "--mode", spec.Mode)
		}
		if spec.Position != "" {
			args = append(args, "--pos", spec.Position)
		}
		if spec.Rotation != "" {
			args = append(args, "--rotate", spec.Rotation)
		}
		if spec.Rate != nil {
			args = append(args, "--rate", strconv.FormatFloat(*spec.Rate, 'f', -1, 64))
		}
		if spec.Primary {
			args = append(args, "--primary")
		}
	}

	for _, output := range connected {
		if inProfile[output.Name] {
			continue
		}
		args = append(args, "--output", output.Name, "--off")
	}

	return args
}
