// Package profile defines the on-disk display profile model.
package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultPriority is assigned to profiles that do not set one explicitly.
// Priority only breaks ties between equally scored profiles.
const DefaultPriority = 100

type Profile struct {
	// Name is the profile file name, never serialized into the file itself.
	Name     string                `yaml:"-" json:"-"`
	Priority int                   `yaml:"priority,omitempty" json:"priority,omitempty"`
	Outputs  []*OutputSpec         `yaml:"outputs" json:"outputs"`
	Rules    map[string]*MatchRule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

type OutputSpec struct {
	Name     string   `yaml:"name" json:"name"`
	Mode     string   `yaml:"mode,omitempty" json:"mode,omitempty"`
	Position string   `yaml:"pos,omitempty" json:"pos,omitempty"`
	Rotation string   `yaml:"rotate,omitempty" json:"rotate,omitempty"`
	Rate     *float64 `yaml:"rate,omitempty" json:"rate,omitempty"`
	Primary  bool     `yaml:"primary,omitempty" json:"primary,omitempty"`
}

// MatchRule holds optional matching hints for a single output. An absent
// field means that signal is not consulted at all.
type MatchRule struct {
	EDID     *string  `yaml:"edid,omitempty" json:"edid,omitempty"`
	Supports []string `yaml:"supports,omitempty" json:"supports,omitempty"`
	Prefers  *string  `yaml:"prefers,omitempty" json:"prefers,omitempty"`
}

func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("profile name cant be empty")
	}
	if p.Priority == 0 {
		p.Priority = DefaultPriority
	}

	seen := map[string]bool{}
	for i, output := range p.Outputs {
		if err := output.Validate(); err != nil {
			return fmt.Errorf("output[%d] validation failed: %w", i, err)
		}
		if seen[output.Name] {
			return fmt.Errorf("output %s listed twice", output.Name)
		}
		seen[output.Name] = true
	}

	for name := range p.Rules {
		if !seen[name] {
			return fmt.Errorf("rule references unknown output %s", name)
		}
	}

	return nil
}

// Rule returns the matching rule for an output name, nil when none is set.
func (p *Profile) Rule(outputName string) *MatchRule {
	if p.Rules == nil {
		return nil
	}
	return p.Rules[outputName]
}

func (o *OutputSpec) Validate() error {
	if o.Name == "" {
		return errors.New("output name cant be empty")
	}
	return nil
}

func (o *OutputSpec) String() string {
	parts := []string{o.Name}
	if o.Mode != "" {
		parts = append(parts, o.Mode)
	}
	if o.Position != "" {
		parts = append(parts, "+"+o.Position)
	}
	if o.Rotation != "" && o.Rotation != "normal" {
		parts = append(parts, o.Rotation)
	}
	if o.Rate != nil {
		parts = append(parts, fmt.Sprintf("%gHz", *o.Rate))
	}
	if o.Primary {
		parts = append(parts, "primary")
	}
	return strings.Join(parts, " ")
}

func (r *MatchRule) IsEmpty() bool {
	return r == nil || (r.EDID == nil && len(r.Supports) == 0 && r.Prefers == nil)
}

func (r *MatchRule) MatchEDID(edid string) bool {
	return r != nil && r.EDID != nil && *r.EDID == edid
}

// MatchSupports reports whether the output's mode set covers every mode the
// rule requires.
func (r *MatchRule) MatchSupports(supportedModes []string) bool {
	if r == nil || len(r.Supports) == 0 {
		return false
	}
	for _, mode := range r.Supports {
		if !slices.Contains(supportedModes, mode) {
			return false
		}
	}
	return true
}

func (r *MatchRule) MatchPrefers(preferredMode string) bool {
	return r != nil && r.Prefers != nil && preferredMode != "" && *r.Prefers == preferredMode
}
