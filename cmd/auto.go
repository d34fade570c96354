package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Apply the profile that best matches the connected outputs",
	Long:  "Scores every stored profile against the currently connected outputs (EDID first, then supported and preferred modes) and applies the winner. Does nothing when no profile matches.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication()
		if err != nil {
			return err
		}
		if err := application.Ctl.SwitchAuto(cmd.Context()); err != nil {
			return fmt.Errorf("cant switch automatically: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(autoCmd)
}
