package homes_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/randrctl/randrctl/internal/homes"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, homes.ProfileDirName), 0o750))
	return home
}

func TestEnsureHomes_AllValid(t *testing.T) {
	a, b := newHome(t), newHome(t)

	valid, err := homes.EnsureHomes([]string{a, b})

	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, valid, "order must be preserved")
}

func TestEnsureHomes_PreferredInvalid(t *testing.T) {
	logHook := logrustest.NewGlobal()
	defer logHook.Reset()

	invalid := t.TempDir() // no profiles subdirectory
	valid := newHome(t)

	result, err := homes.EnsureHomes([]string{invalid, valid})

	require.NoError(t, err)
	assert.Equal(t, []string{valid}, result, "invalid preferred home is dropped")

	warned := false
	for _, entry := range logHook.AllEntries() {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "preferred") {
			warned = true
		}
	}
	assert.True(t, warned, "a preferred-home warning must be logged")
}

func TestEnsureHomes_BootstrapsWhenNoneValid(t *testing.T) {
	first := filepath.Join(t.TempDir(), "randrctl")
	second := filepath.Join(t.TempDir(), "randrctl")

	result, err := homes.EnsureHomes([]string{first, second})

	require.NoError(t, err)
	assert.Equal(t, []string{first}, result)
	assert.DirExists(t, filepath.Join(first, homes.ProfileDirName))
	assert.NoDirExists(t, filepath.Join(second, homes.ProfileDirName), "only the preferred home is bootstrapped")
}

func TestEnsureHomes_NoCandidates(t *testing.T) {
	_, err := homes.EnsureHomes(nil)
	assert.Error(t, err)
}

func TestConfigFiles_OnlyExisting(t *testing.T) {
	withConfig := newHome(t)
	withoutConfig := newHome(t)
	path := filepath.Join(withConfig, homes.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[hooks]\n"), 0o644))

	files := homes.ConfigFiles([]string{withConfig, withoutConfig})

	assert.Equal(t, []string{path}, files)
}

func TestProfileDirs(t *testing.T) {
	a, b := newHome(t), newHome(t)
	dirs := homes.ProfileDirs([]string{a, b})
	assert.Equal(t, []string{
		filepath.Join(a, homes.ProfileDirName),
		filepath.Join(b, homes.ProfileDirName),
	}, dirs)
}
