package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the auto-switch service",
	Long:  "Keeps running and re-evaluates the profile match whenever profiles or configuration change on disk. SIGUSR1 forces a re-evaluation, for example from a udev hotplug rule.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancelCause(cmd.Context())
		defer cancel(context.Canceled)

		application, err := newApplication()
		if err != nil {
			return err
		}
		if err := application.RunDaemon(ctx, cancel); err != nil {
			return fmt.Errorf("daemon failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
