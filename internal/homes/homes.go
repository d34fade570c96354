// Package homes discovers and validates randrctl home directories.
package homes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

const (
	AppDirName     = "randrctl"
	ProfileDirName = "profiles"
	ConfigFileName = "config.toml"

	SystemHome = "/etc/randrctl"
)

// DefaultCandidates lists home candidates in preference order, the user
// config dir first.
func DefaultCandidates() []string {
	return []string{filepath.Join(xdg.ConfigHome, AppDirName), SystemHome}
}

// EnsureHomes filters candidates down to valid homes, preserving order. When
// none is valid the preferred (first) candidate is bootstrapped and returned
// alone. A home is valid iff its profiles subdirectory exists.
func EnsureHomes(candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, errors.New("no home candidates given")
	}

	valid := []string{}
	for _, candidate := range candidates {
		if IsValid(candidate) {
			valid = append(valid, candidate)
		}
	}

	if len(valid) == 0 {
		logrus.WithField("candidates", candidates).Warn("No home directories found")
		if err := Bootstrap(candidates[0]); err != nil {
			return nil, fmt.Errorf("cant bootstrap home %s: %w", candidates[0], err)
		}
		return []string{candidates[0]}, nil
	}

	if !slices.Contains(valid, candidates[0]) {
		logrus.WithField("preferred", candidates[0]).Warn("No home directory found under preferred location")
	}

	logrus.WithField("homes", valid).Info("Using home directories")
	return valid, nil
}

func IsValid(home string) bool {
	fi, err := os.Stat(filepath.Join(home, ProfileDirName))
	return err == nil && fi.IsDir()
}

func Bootstrap(home string) error {
	logrus.WithField("home", home).Warn("Creating home")
	if err := os.MkdirAll(filepath.Join(home, ProfileDirName), 0o750); err != nil {
		return fmt.Errorf("cant create profiles directory: %w", err)
	}
	return nil
}

// ProfileDirs maps validated homes to their profiles directories, preference
// order preserved.
func ProfileDirs(validHomes []string) []string {
	dirs := make([]string, 0, len(validHomes))
	for _, home := range validHomes {
		dirs = append(dirs, filepath.Join(home, ProfileDirName))
	}
	return dirs
}

// ConfigFiles returns the existing config files of the given homes,
// preference order preserved.
func ConfigFiles(validHomes []string) []string {
	files := []string{}
	for _, home := range validHomes {
		path := filepath.Join(home, ConfigFileName)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			files = append(files, path)
		}
	}
	return files
}
