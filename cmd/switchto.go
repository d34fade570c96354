package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var switchToCmd = &cobra.Command{
	Use:   "switch-to <profile>",
	Short: "Apply the named profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication()
		if err != nil {
			return err
		}
		if err := application.Ctl.SwitchTo(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("cant switch to %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(switchToCmd)
}
