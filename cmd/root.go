// Package cmd provides the entry point for the randrctl application.
// It switches between saved xrandr display profiles based on the connected
// outputs.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/randrctl/randrctl/internal/app"
	"github.com/randrctl/randrctl/internal/errs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Version    = "dev"
	Commit     = "none"
	BuildDate  = "unknown"
	BinaryName = "randrctl"
)

var (
	debug                bool
	verbose              bool
	enableJSONLogsFormat bool
	homeDirs             []string
	rootCmd              = &cobra.Command{
		Use:              BinaryName,
		Short:            "Switch xrandr display profiles automatically",
		Long:             "randrctl saves your multi-monitor layouts as named profiles and applies the right one for the currently connected outputs, matched by EDID and reported capabilities.",
		Version:          fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		PersistentPreRun: setupLogger,
		SilenceErrors:    true,
		SilenceUsage:     true,
	}
)

func Execute() {
	err := rootCmd.Execute()
	if errors.Is(err, context.Canceled) {
		logrus.WithError(err).Info("Context cancelled, exiting")
		return
	}
	if errors.Is(err, errs.ErrProfileNotFound) {
		logrus.WithError(err).Fatal("Unknown profile, see `randrctl list`")
		return
	}
	if err != nil {
		logrus.WithError(err).Fatal("Command failed")
	}
	logrus.Debug("Exiting...")
}

func newApplication() (*app.Application, error) {
	application, err := app.New(homeDirs, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("cant create application: %w", err)
	}
	return application, nil
}

func setupLogger(cmd *cobra.Command, args []string) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if verbose {
		logrus.SetReportCaller(true)
	}

	if enableJSONLogsFormat {
		logrus.SetFormatter(&logrus.JSONFormatter{
			DisableTimestamp: false,
			TimestampFormat:  time.RFC3339Nano,
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: false,
			DisableColors:    false,
			TimestampFormat:  time.RFC3339Nano,
			FullTimestamp:    true,
			ForceQuote:       true,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				fn := filepath.Base(f.Function)
				file := fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
				return fn, file
			},
		})
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringArrayVarP(
		&homeDirs,
		"home",
		"H",
		nil,
		"Home directory candidates in preference order (defaults to $XDG_CONFIG_HOME/randrctl and /etc/randrctl)",
	)
	rootCmd.PersistentFlags().BoolVar(&enableJSONLogsFormat, "enable-json-logs-format", false, "Enable structured logging")
}
