// Package store loads and persists profiles from the resolved home
// directories. Profiles are YAML files named after the profile itself.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/randrctl/randrctl/internal/errs"
	"github.com/randrctl/randrctl/internal/profile"
	"github.com/randrctl/randrctl/internal/utils"
	"github.com/randrctl/randrctl/internal/xrandr"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Store struct {
	// profile directories in preference order, the first one is preferred
	profileDirs []string
}

func New(profileDirs []string) *Store {
	return &Store{profileDirs: profileDirs}
}

// ReadAll loads every profile from every directory. On a name collision the
// more preferred directory wins. Unreadable files are skipped with a warning.
func (s *Store) ReadAll() ([]*profile.Profile, error) {
	byName := map[string]*profile.Profile{}

	for i := len(s.profileDirs) - 1; i >= 0; i-- {
		dir := s.profileDirs[i]
		entries, err := os.ReadDir(dir)
		if err != nil {
			logrus.WithError(err).WithField("dir", dir).Warn("Cant list profile directory")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			p, err := s.readFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				logrus.WithError(err).WithField("profile", entry.Name()).Warn("Skipping unreadable profile")
				continue
			}
			byName[p.Name] = p
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	slices.Sort(names)
	profiles := make([]*profile.Profile, 0, len(byName))
	for _, name := range names {
		profiles = append(profiles, byName[name])
	}
	return profiles, nil
}

// ReadOne returns the named profile from the most preferred directory that
// has it.
func (s *Store) ReadOne(name string) (*profile.Profile, error) {
	for _, dir := range s.profileDirs {
		path := filepath.Join(dir, name)
		if fi, err := os.Stat(path); err != nil || fi.IsDir() {
			continue
		}
		p, err := s.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("cant read profile %s: %w", name, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", errs.ErrProfileNotFound, name)
}

func (s *Store) readFile(path string) (*profile.Profile, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("cant read %s: %w", path, err)
	}

	var p profile.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("cant unmarshal %s: %w", path, err)
	}
	p.Name = filepath.Base(path)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", p.Name, err)
	}
	return &p, nil
}

// Write persists a profile into the preferred directory, overwriting any
// existing file with the same name.
func (s *Store) Write(p *profile.Profile) error {
	if len(s.profileDirs) == 0 {
		return fmt.Errorf("no profile directory to write %s to", p.Name)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("cant marshal profile %s: %w", p.Name, err)
	}

	path := filepath.Join(s.profileDirs[0], p.Name)
	if err := utils.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("cant write profile %s: %w", p.Name, err)
	}
	logrus.WithField("path", path).Info("Profile written")
	return nil
}

// Encode renders a profile as YAML, or as indented JSON when jsonOut is set.
func (s *Store) Encode(w io.Writer, p *profile.Profile, jsonOut bool) error {
	if jsonOut {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("cant marshal profile %s to json: %w", p.Name, err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return fmt.Errorf("cant write profile %s: %w", p.Name, err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("cant encode profile %s: %w", p.Name, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("cant flush profile %s: %w", p.Name, err)
	}
	return nil
}

// FromConnected captures the live output state as a new profile, rules
// included. Callers strip the parts they do not want.
func FromConnected(outputs xrandr.Outputs, name string) *profile.Profile {
	p := &profile.Profile{
		Name:     name,
		Priority: profile.DefaultPriority,
		Rules:    map[string]*profile.MatchRule{},
	}

	for _, output := range outputs {
		spec := &profile.OutputSpec{
			Name:     output.Name,
			Mode:     output.CurrentMode,
			Position: output.Position,
			Rotation: output.Rotation,
			Primary:  output.Primary,
		}
		if output.Rate != 0 {
			spec.Rate = utils.Float64Ptr(output.Rate)
		}
		p.Outputs = append(p.Outputs, spec)

		rule := &profile.MatchRule{
			Supports: slices.Clone(output.SupportedModes),
		}
		if output.EDID != "" {
			rule.EDID = utils.StringPtr(output.EDID)
		}
		if output.PreferredMode != "" {
			rule.Prefers = utils.StringPtr(output.PreferredMode)
		}
		p.Rules[output.Name] = rule
	}

	return p
}
