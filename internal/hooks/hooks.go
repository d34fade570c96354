// Package hooks launches user-defined shell commands around profile
// switches.
package hooks

import (
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	ProfileEnvVar = "randr_profile"
	ErrorEnvVar   = "randr_error"

	shell = "/bin/sh"
)

type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// Run launches the command through a shell and does not wait for it. Only a
// failure to start is observed; whatever the hook does afterwards is
// invisible to the caller. Blank commands are skipped.
func (r *Runner) Run(command, profileName, applyErr string) {
	if strings.TrimSpace(command) == "" {
		return
	}

	logrus.WithFields(logrus.Fields{"command": command, "profile": profileName}).Debug("Calling hook")
	cmd := exec.Command(shell, "-c", command)
	cmd.Env = environ(profileName, applyErr)

	if err := cmd.Start(); err != nil {
		logrus.WithError(err).WithField("command", command).Warn("Error while executing hook")
		return
	}

	// reap the child when it exits, its outcome stays unobserved
	go func() {
		_ = cmd.Wait()
	}()
}

func environ(profileName, applyErr string) []string {
	env := append(os.Environ(), ProfileEnvVar+"="+profileName)
	if applyErr != "" {
		env = append(env, ErrorEnvVar+"="+applyErr)
	}
	return env
}
